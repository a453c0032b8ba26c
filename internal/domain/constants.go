package domain

// Значения по умолчанию
const (
	DefaultSlotMinutes     = 30
	DefaultDurationMinutes = 30

	// DefaultSchedulePeriodDays период блокировок в ответе с расписанием тренера
	DefaultSchedulePeriodDays = 28
)

// Ограничения бизнес-валидации
const (
	MinDurationMinutes = 30
	MaxDurationMinutes = 240 // 4 часа
	MaxNotesLength     = 2000
	MaxReasonLength    = 500
	MaxActorLength     = 100

	// MaxSchedulePeriodDays ограничивает период запроса расписания тренера
	MaxSchedulePeriodDays = 92

	// MaxRepeatDays ограничивает горизонт разворачивания повторяющегося бронирования
	MaxRepeatDays = 366
)

// DateFormat формат даты YYYY-MM-DD
const DateFormat = "2006-01-02"

// Префиксы, которые дописываются в notes при отказе и отмене
const (
	RejectReasonLabel = "Rejection reason"
	CancelReasonLabel = "Cancellation reason"
	NoShowReasonLabel = "No-show"
)

// ActiveStatuses статусы, занимающие время тренера
// Два бронирования с такими статусами не могут пересекаться у одного тренера в один день
var ActiveStatuses = []ReservationStatus{
	StatusPending,
	StatusConfirmed,
}
