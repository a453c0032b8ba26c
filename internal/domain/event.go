package domain

import "time"

// EventType тип события жизненного цикла бронирования
type EventType string

const (
	EventReservationRequest   EventType = "reservation_request"
	EventReservationConfirmed EventType = "reservation_confirmed"
	EventReservationRejected  EventType = "reservation_rejected"
	EventReservationCancelled EventType = "reservation_cancelled"
	EventPTCompleted          EventType = "pt_completed"
	EventReservationReminder  EventType = "reservation_reminder"
)

// RecipientRole кому адресовано событие
type RecipientRole string

const (
	RecipientMember  RecipientRole = "member"
	RecipientTrainer RecipientRole = "trainer"
)

// Event событие для внешнего сервиса уведомлений
// ID уникален и служит ключом идемпотентности на стороне получателя
type Event struct {
	ID            string                 `json:"id"`
	Type          EventType              `json:"type"`
	RecipientRole RecipientRole          `json:"recipientRole"`
	RecipientID   int64                  `json:"recipientId"`
	ReservationID int64                  `json:"reservationId"`
	Payload       map[string]interface{} `json:"payload"`
	OccurredAt    time.Time              `json:"occurredAt"`
}
