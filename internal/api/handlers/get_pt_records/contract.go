package get_pt_records

import (
	"context"

	"github.com/m04kA/SMC-ReservationService/internal/service/reservations/models"
)

type RecordService interface {
	GetRecord(ctx context.Context, reservationID int64) (*models.PTRecordResponse, error)
	ListRecords(ctx context.Context, req *models.ListRecordsRequest) (*models.PTRecordListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
