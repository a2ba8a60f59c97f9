package slotgen

import (
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-AvailabilityService/pkg/timeparse"
	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

var (
	// ErrInvalidDuration возвращается при неположительной длительности слота
	ErrInvalidDuration = errors.New("slotgen: slot duration must be positive")

	// ErrInvalidBreak возвращается при отрицательном перерыве между слотами
	ErrInvalidBreak = errors.New("slotgen: break duration must not be negative")

	// ErrInvalidWindow возвращается, когда конец рабочего окна не позже начала
	ErrInvalidWindow = errors.New("slotgen: working window end must be after start")
)

// Interval один сгенерированный слот: пара UTC-моментов [StartUTC, EndUTC)
type Interval struct {
	StartUTC time.Time
	EndUTC   time.Time
}

// Generate детерминированно строит расписание слотов на локальный день
//
// fromTime/toTime - настенное время "HH:MM" в таймзоне timezone, date - день
// в каноничном формате YYYY-MM-DD. Слоты нарезаются жадно: следующий слот
// начинается через breakMinutes после конца предыдущего; слот попадает в
// результат, только если его конец СТРОГО раньше конца рабочего окна.
// Окно короче одного слота - это не ошибка, а пустой результат
func Generate(date, fromTime, toTime string, durationMinutes, breakMinutes int, timezone string) ([]Interval, error) {
	if durationMinutes <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidDuration, durationMinutes)
	}
	if breakMinutes < 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidBreak, breakMinutes)
	}

	// Валидируем формат настенного времени до конвертации в UTC
	from, err := types.NewTimeStringFromString(fromTime)
	if err != nil {
		return nil, err
	}
	to, err := types.NewTimeStringFromString(toTime)
	if err != nil {
		return nil, err
	}

	fromUTC, err := timeparse.ToUTC(date, from.String(), timezone)
	if err != nil {
		return nil, err
	}
	toUTC, err := timeparse.ToUTC(date, to.String(), timezone)
	if err != nil {
		return nil, err
	}

	if !toUTC.After(fromUTC) {
		return nil, fmt.Errorf("%w: %s..%s", ErrInvalidWindow, fromTime, toTime)
	}

	duration := time.Duration(durationMinutes) * time.Minute
	pause := time.Duration(breakMinutes) * time.Minute

	// current строго растёт на каждой итерации и ограничен сверху toUTC,
	// поэтому цикл конечен
	slots := make([]Interval, 0)
	current := fromUTC

	for {
		end := current.Add(duration)
		if !end.Before(toUTC) {
			break
		}
		slots = append(slots, Interval{StartUTC: current, EndUTC: end})
		current = end.Add(pause)
	}

	return slots, nil
}
