package get_available_slots

import (
	"time"

	"github.com/autotrack/garage-booking-service/internal/domain"
	"github.com/autotrack/garage-booking-service/pkg/types"
)

// expandWindows разворачивает окна доступности дня в упорядоченную
// последовательность 30-минутных слотов с вместимостью окна.
//
// Слот эмитится, пока его начало строго раньше конца окна: окно 08:00-10:00
// дает слоты 08:00, 08:30, 09:00, 09:30. Пересекающиеся окна не
// дедуплицируются - при некорректных данных возможны дубликаты времени,
// вызывающие обязаны это переживать.
func expandWindows(date time.Time, windows []*domain.GarageAvailability) []domain.AvailableSlot {
	slots := make([]domain.AvailableSlot, 0)

	for _, window := range windows {
		current := window.StartTime

		for current.IsBefore(window.EndTime) {
			slots = append(slots, domain.AvailableSlot{
				Date:           date,
				Time:           current,
				GarageID:       window.GarageID,
				AvailableSpots: window.MaxBookingsPerSlot,
				TotalSpots:     window.MaxBookingsPerSlot,
			})

			next, err := current.AddMinutes(domain.SlotStepMinutes)
			if err != nil {
				// Переход через полночь - окно закончилось
				break
			}
			current = next
		}
	}

	return slots
}

// applyOccupancy вычитает занятые места из каждого слота и отбрасывает
// полностью занятые слоты
func applyOccupancy(slots []domain.AvailableSlot, occupied map[types.TimeString]int) []domain.AvailableSlot {
	available := make([]domain.AvailableSlot, 0, len(slots))

	for _, slot := range slots {
		spots := slot.TotalSpots - occupied[slot.Time]
		if spots <= 0 {
			continue
		}

		slot.AvailableSpots = spots
		available = append(available, slot)
	}

	return available
}
