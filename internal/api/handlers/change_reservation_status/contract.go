package change_reservation_status

import (
	"context"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/service/lifecycle"
)

type LifecycleService interface {
	Confirm(ctx context.Context, id int64, actor domain.Actor) (*domain.Reservation, error)
	Reject(ctx context.Context, id int64, actor domain.Actor, reason string) (*domain.Reservation, error)
	Cancel(ctx context.Context, id int64, actor domain.Actor, reason string) (*domain.Reservation, error)
	MarkNoShow(ctx context.Context, id int64, actor domain.Actor, reason string) (*domain.Reservation, error)
	CompleteSession(ctx context.Context, id int64, actor domain.Actor, req lifecycle.CompleteRequest) (*domain.PTRecord, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
