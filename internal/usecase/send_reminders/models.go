package send_reminders

import "time"

// Request модель запуска рассылки напоминаний
type Request struct {
	Date *time.Time // Дата занятий; по умолчанию завтрашний день
}

// Response итог рассылки
type Response struct {
	Date         time.Time // Дата, на которую отправлены напоминания
	Reservations int       // Сколько подтверждённых бронирований найдено
	EventsSent   int       // Сколько событий передано в отправку
}
