package get_availability

import (
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// Request модель запроса на получение слотов тренера
type Request struct {
	TrainerID     int64     // ID тренера
	Date          time.Time // Дата (без времени)
	OnlyAvailable bool      // Вернуть только свободные слоты
}

// Response модель ответа со списком слотов
type Response struct {
	TrainerID int64         // ID тренера
	Date      time.Time     // Дата, на которую запрашивались слоты
	Slots     []domain.Slot // Слоты в порядке времени начала
}
