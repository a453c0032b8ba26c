package ledger

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	registrationRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/ptregistration"
)

var (
	// ErrRegistrationNotFound возвращается, когда пакет PT занятий не найден
	ErrRegistrationNotFound = errors.New("ledger: registration not found")

	// ErrInternal возвращается при внутренних ошибках
	ErrInternal = errors.New("ledger: internal error")
)

// RegistrationRepository хранилище пакетов PT занятий
type RegistrationRepository interface {
	DecrementRemainingSessions(ctx context.Context, id int64) (*domain.PTRegistration, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Ledger списание занятий с пакета PT при завершении тренировки
type Ledger struct {
	repo   RegistrationRepository
	logger Logger
}

// NewLedger создает новый экземпляр Ledger
func NewLedger(repo RegistrationRepository, logger Logger) *Ledger {
	return &Ledger{repo: repo, logger: logger}
}

// DebitSession списывает одно занятие с пакета
// Остаток не опускается ниже нуля, нулевой остаток ошибкой не считается
func (l *Ledger) DebitSession(ctx context.Context, registrationID int64) (*domain.PTRegistration, error) {
	reg, err := l.repo.DecrementRemainingSessions(ctx, registrationID)
	if err != nil {
		if errors.Is(err, registrationRepo.ErrRegistrationNotFound) {
			return nil, ErrRegistrationNotFound
		}
		l.logger.Error("DebitSession: registration id=%d: %v", registrationID, err)
		return nil, fmt.Errorf("%w: DebitSession - decrement: %w", ErrInternal, err)
	}

	l.logger.Info("DebitSession: registration id=%d, remaining=%d/%d", reg.ID, reg.RemainingSessions, reg.TotalSessions)
	return reg, nil
}
