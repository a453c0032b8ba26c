package domain

import "github.com/m04kA/SMC-ReservationService/pkg/types"

// Slot фиксированный интервал расписания тренера с признаком доступности
type Slot struct {
	StartTime   types.TimeString
	EndTime     types.TimeString
	IsAvailable bool
}
