package get_availability

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// UseCase use case для получения сетки слотов тренера на дату
type UseCase struct {
	index  AvailabilityIndex
	logger Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(index AvailabilityIndex, logger Logger) *UseCase {
	return &UseCase{
		index:  index,
		logger: logger,
	}
}

// Execute выполняет use case получения слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailability: trainer=%d, date=%s", req.TrainerID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if req.TrainerID <= 0 {
		return nil, fmt.Errorf("%w: trainerId must be positive", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	date := domain.DateOnly(req.Date)

	// 2. Строим сетку слотов
	slots, err := uc.index.AvailableWindows(ctx, req.TrainerID, date)
	if err != nil {
		uc.logger.Error("GetAvailability: failed to build slots for trainer=%d: %v", req.TrainerID, err)
		return nil, fmt.Errorf("%w: failed to build slots: %v", ErrInternal, err)
	}

	// 3. Фильтруем занятые слоты по запросу
	if req.OnlyAvailable {
		free := make([]domain.Slot, 0, len(slots))
		for _, slot := range slots {
			if slot.IsAvailable {
				free = append(free, slot)
			}
		}
		slots = free
	}

	uc.logger.Info("GetAvailability: generated %d slots for trainer=%d, date=%s",
		len(slots), req.TrainerID, date.Format(domain.DateFormat))

	return &Response{
		TrainerID: req.TrainerID,
		Date:      date,
		Slots:     slots,
	}, nil
}
