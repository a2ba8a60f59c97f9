package get_month_grid

import (
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/pkg/timeparse"
)

// monthBounds возвращает локальные первый и последний день месяца
func monthBounds(year int, month time.Month, loc *time.Location) (time.Time, time.Time) {
	monthStart := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	monthEnd := monthStart.AddDate(0, 1, -1)
	return monthStart, monthEnd
}

// gridBounds расширяет границы месяца до полных недель (воскресенье-суббота)
func gridBounds(monthStart, monthEnd time.Time) (time.Time, time.Time) {
	gridStart := monthStart.AddDate(0, 0, -int(monthStart.Weekday()))
	gridEnd := monthEnd.AddDate(0, 0, int(time.Saturday)-int(monthEnd.Weekday()))
	return gridStart, gridEnd
}

// aggregateByLocalDay накапливает метаданные доступности по ЛОКАЛЬНОМУ дню слота
// Группировка идёт по дню слота в таймзоне запроса, а не по дате из UTC:
// около полуночи эти дни расходятся
func aggregateByLocalDay(slots []*domain.AvailableSlot, loc *time.Location) map[string]*domain.DayAvailability {
	byDay := make(map[string]*domain.DayAvailability)

	for _, slot := range slots {
		day := timeparse.LocalDay(slot.StartTime, loc)

		meta, ok := byDay[day]
		if !ok {
			meta = &domain.DayAvailability{}
			byDay[day] = meta
		}

		meta.TotalSlots++
		if slot.IsBookedWithReminder() {
			meta.BookedWithReminder++
		}
		if !slot.IsBooked {
			meta.HasUnbooked = true
		}
	}

	return byDay
}

// buildCells обходит сетку день за днём от gridStart до gridEnd включительно
func buildCells(
	gridStart, gridEnd time.Time,
	month time.Month,
	year int,
	today time.Time,
	byDay map[string]*domain.DayAvailability,
	policy domain.ViewerPolicy,
) []Cell {
	cells := make([]Cell, 0, domain.DaysPerWeek*5)

	for d := gridStart; !d.After(gridEnd); d = d.AddDate(0, 0, 1) {
		date := d.Format(timeparse.DateFormat)

		cell := Cell{
			Date:           date,
			DayOfMonth:     d.Day(),
			IsCurrentMonth: d.Month() == month && d.Year() == year,
			IsPast:         d.Before(today),
		}

		if meta, ok := byDay[date]; ok {
			cell.TotalSlots = meta.TotalSlots
			cell.HasAvailable = meta.HasUnbooked
			cell.IsFullyBooked = policy.IsFullyBooked(*meta)
		}

		cells = append(cells, cell)
	}

	return cells
}

// localToday возвращает локальную полночь сегодняшнего дня в таймзоне запроса
func localToday(now time.Time, loc *time.Location) time.Time {
	local := now.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
}
