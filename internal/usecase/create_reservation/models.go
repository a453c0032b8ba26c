package create_reservation

import (
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

// Request модель запроса на создание бронирования
type Request struct {
	Actor            domain.Actor        // Инициатор, попадает в журнал изменений
	MemberID         int64               // ID члена клуба
	TrainerID        int64               // ID тренера
	PTRegistrationID *int64              // Пакет PT занятий (опционально)
	Date             time.Time           // Дата бронирования (без времени)
	StartTime        types.TimeString    // Время начала (например, "10:00")
	DurationMinutes  int                 // Длительность; 0 = значение по умолчанию
	RepeatPolicy     domain.RepeatPolicy // Политика повторения; пусто = none
	RepeatEndDate    *time.Time          // Последняя дата повторения включительно
	Notes            string              // Заметки
}

// Response модель ответа с созданным бронированием
type Response struct {
	Reservation        *domain.Reservation   // Исходное бронирование
	Occurrences        []*domain.Reservation // Созданные повторения
	OccurrencesCreated int                   // Сколько повторений создано
	OccurrencesSkipped int                   // Сколько дат пропущено из-за конфликтов
}

// Options ограничения длительности бронирования
type Options struct {
	MinDurationMinutes int
	MaxDurationMinutes int
}
