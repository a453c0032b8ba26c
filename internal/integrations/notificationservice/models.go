package notificationservice

import "time"

// EventRequest тело запроса POST /internal/events
type EventRequest struct {
	ID            string                 `json:"id"`
	Type          string                 `json:"type"`
	RecipientRole string                 `json:"recipient_role"`
	RecipientID   int64                  `json:"recipient_id"`
	ReservationID int64                  `json:"reservation_id"`
	Payload       map[string]interface{} `json:"payload,omitempty"`
	OccurredAt    time.Time              `json:"occurred_at"`
}

// ErrorResponse модель ошибки от NotificationService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
