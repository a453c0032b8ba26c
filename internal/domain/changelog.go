package domain

import "time"

// ChangeType тип записи в журнале изменений бронирования
type ChangeType string

const (
	ChangeCreated   ChangeType = "created"
	ChangeConfirmed ChangeType = "confirmed"
	ChangeRejected  ChangeType = "rejected"
	ChangeCancelled ChangeType = "cancelled"
	ChangeModified  ChangeType = "modified"
	ChangeCompleted ChangeType = "completed"
)

// ChangeTypeFor возвращает тип записи журнала для перехода в статус to
func ChangeTypeFor(to ReservationStatus) ChangeType {
	switch to {
	case StatusPending:
		return ChangeCreated
	case StatusConfirmed:
		return ChangeConfirmed
	case StatusRejected:
		return ChangeRejected
	case StatusCancelled:
		return ChangeCancelled
	case StatusCompleted:
		return ChangeCompleted
	default:
		return ChangeModified
	}
}

// ChangeLogEntry запись append-only журнала изменений бронирования
// PreviousStatus пуст для записи о создании
type ChangeLogEntry struct {
	ID             int64
	ReservationID  int64
	ChangeType     ChangeType
	ChangedBy      string
	PreviousStatus ReservationStatus
	NewStatus      ReservationStatus
	Reason         string
	CreatedAt      time.Time
}
