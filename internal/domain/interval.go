package domain

import "github.com/m04kA/SMC-ReservationService/pkg/types"

// Overlaps проверяет пересечение полуинтервалов [aStart, aEnd) и [bStart, bEnd)
// Интервалы, которые только касаются границами, не пересекаются
func Overlaps(aStart, aEnd, bStart, bEnd types.TimeString) bool {
	return aStart.IsBefore(bEnd) && bStart.IsBefore(aEnd)
}
