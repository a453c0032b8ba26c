package change_reservation_status

import (
	"github.com/m04kA/SMC-ReservationService/internal/service/lifecycle"
)

// ReasonRequest тело запросов reject/cancel/no-show; может отсутствовать
type ReasonRequest struct {
	Reason *string `json:"reason,omitempty"`
}

func (r *ReasonRequest) value() string {
	if r.Reason == nil {
		return ""
	}
	return *r.Reason
}

// CompleteRequest HTTP request model завершения занятия
type CompleteRequest struct {
	TrainerID       *int64  `json:"trainerId,omitempty"`
	DurationMinutes *int    `json:"durationMinutes,omitempty"`
	Content         *string `json:"content,omitempty"`
	MemberCondition *string `json:"memberCondition,omitempty"`
	TrainerNotes    *string `json:"trainerNotes,omitempty"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *CompleteRequest) ToServiceRequest() lifecycle.CompleteRequest {
	req := lifecycle.CompleteRequest{TrainerID: r.TrainerID}
	if r.DurationMinutes != nil {
		req.DurationMinutes = *r.DurationMinutes
	}
	if r.Content != nil {
		req.Content = *r.Content
	}
	if r.MemberCondition != nil {
		req.MemberCondition = *r.MemberCondition
	}
	if r.TrainerNotes != nil {
		req.TrainerNotes = *r.TrainerNotes
	}
	return req
}
