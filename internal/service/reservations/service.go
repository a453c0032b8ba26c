package reservations

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	recordRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/ptrecord"
	reservationRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/reservation"
	"github.com/m04kA/SMC-ReservationService/internal/service/reservations/models"
)

// Service сервис чтения бронирований и журнала изменений
type Service struct {
	reservationRepo ReservationRepository
	changeLogRepo   ChangeLogRepository
	recordRepo      RecordRepository
	logger          Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	reservationRepo ReservationRepository,
	changeLogRepo ChangeLogRepository,
	recordRepo RecordRepository,
	logger Logger,
) *Service {
	return &Service{
		reservationRepo: reservationRepo,
		changeLogRepo:   changeLogRepo,
		recordRepo:      recordRepo,
		logger:          logger,
	}
}

// GetByID получает бронирование по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.ReservationResponse, error) {
	s.logger.Info("GetByID: fetching reservation id=%d", id)

	res, err := s.getReservation(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}

	return models.FromDomainReservation(res), nil
}

// ListByMember получает бронирования члена клуба
// Опционально фильтрует по периоду и статусу; сортировка по дате и времени начала
func (s *Service) ListByMember(ctx context.Context, req *models.ListMemberReservationsRequest) (*models.ReservationListResponse, error) {
	logMsg := fmt.Sprintf("ListByMember: fetching reservations for member=%d", req.MemberID)
	if req.StartDate != nil {
		logMsg += fmt.Sprintf(", from=%s", req.StartDate.Format(domain.DateFormat))
	}
	if req.EndDate != nil {
		logMsg += fmt.Sprintf(", to=%s", req.EndDate.Format(domain.DateFormat))
	}
	if req.Status != nil {
		logMsg += fmt.Sprintf(", status=%s", *req.Status)
	}
	s.logger.Info(logMsg)

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("ListByMember: invalid filter for member=%d: %v", req.MemberID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	list, err := s.reservationRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("ListByMember: repository error for member=%d: %v", req.MemberID, err)
		return nil, fmt.Errorf("%w: ListByMember - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListByMember: fetched %d reservations for member=%d", len(list), req.MemberID)
	return models.FromDomainReservationList(list), nil
}

// ListByTrainer получает бронирования тренера
// Опционально фильтрует по дате и статусу
func (s *Service) ListByTrainer(ctx context.Context, req *models.ListTrainerReservationsRequest) (*models.ReservationListResponse, error) {
	s.logger.Info("ListByTrainer: fetching reservations for trainer=%d", req.TrainerID)

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("ListByTrainer: invalid filter for trainer=%d: %v", req.TrainerID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	list, err := s.reservationRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("ListByTrainer: repository error for trainer=%d: %v", req.TrainerID, err)
		return nil, fmt.Errorf("%w: ListByTrainer - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListByTrainer: fetched %d reservations for trainer=%d", len(list), req.TrainerID)
	return models.FromDomainReservationList(list), nil
}

// GetChangeLog получает журнал изменений бронирования, новые записи первыми
func (s *Service) GetChangeLog(ctx context.Context, id int64) (*models.ChangeLogResponse, error) {
	s.logger.Info("GetChangeLog: fetching change log for reservation id=%d", id)

	if _, err := s.getReservation(ctx, "GetChangeLog", id); err != nil {
		return nil, err
	}

	entries, err := s.changeLogRepo.ListByReservation(ctx, id)
	if err != nil {
		s.logger.Error("GetChangeLog: repository error for reservation id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetChangeLog - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainChangeLog(id, entries), nil
}

// GetRecord получает запись о проведённом занятии по ID бронирования
func (s *Service) GetRecord(ctx context.Context, reservationID int64) (*models.PTRecordResponse, error) {
	s.logger.Info("GetRecord: fetching pt record for reservation id=%d", reservationID)

	if _, err := s.getReservation(ctx, "GetRecord", reservationID); err != nil {
		return nil, err
	}

	record, err := s.recordRepo.GetByReservationID(ctx, reservationID)
	if err != nil {
		if errors.Is(err, recordRepo.ErrRecordNotFound) {
			s.logger.Warn("GetRecord: no pt record for reservation id=%d", reservationID)
			return nil, ErrRecordNotFound
		}
		s.logger.Error("GetRecord: repository error for reservation id=%d: %v", reservationID, err)
		return nil, fmt.Errorf("%w: GetRecord - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainPTRecord(record), nil
}

// ListRecords получает записи о занятиях тренера или члена клуба, новые первыми
func (s *Service) ListRecords(ctx context.Context, req *models.ListRecordsRequest) (*models.PTRecordListResponse, error) {
	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("ListRecords: invalid filter: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	records, err := s.recordRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("ListRecords: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListRecords - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListRecords: fetched %d pt records", len(records))
	return models.FromDomainPTRecordList(records), nil
}

func (s *Service) getReservation(ctx context.Context, op string, id int64) (*domain.Reservation, error) {
	res, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("%s: reservation id=%d not found", op, id)
			return nil, ErrReservationNotFound
		}
		s.logger.Error("%s: repository error for reservation id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return res, nil
}
