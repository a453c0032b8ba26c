package lifecycle

// CompleteRequest детали проведённого занятия
type CompleteRequest struct {
	TrainerID       *int64 // фактический тренер; по умолчанию тренер бронирования (замена допускается)
	DurationMinutes int    // фактическая длительность; 0 - длительность бронирования
	Content         string // содержание тренировки
	MemberCondition string // самочувствие клиента
	TrainerNotes    string // заметки тренера
}
