package timeparse

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DateFormat каноничный формат даты (YYYY-MM-DD)
const DateFormat = "2006-01-02"

// TimeFormat формат времени суток (HH:MM)
const TimeFormat = "15:04"

var (
	// ErrInvalidDateFormat возвращается при нераспознаваемой дате
	ErrInvalidDateFormat = errors.New("timeparse: invalid date format")

	// ErrInvalidLocalDateTime возвращается, когда дата+время не образуют
	// корректный момент в указанной таймзоне
	ErrInvalidLocalDateTime = errors.New("timeparse: invalid local date/time")

	// ErrUnknownTimezone возвращается при неизвестном идентификаторе таймзоны
	ErrUnknownTimezone = errors.New("timeparse: unknown timezone")
)

// NormalizeDate приводит дату к каноничному виду YYYY-MM-DD
// Принимает "YYYY-MM-DD" и "DD/MM/YYYY"; прочие формы пытается распарсить
// стандартным парсером дат
func NormalizeDate(input string) (string, error) {
	input = strings.TrimSpace(input)

	// Формат DD/MM/YYYY пересобираем вручную с нулевым дополнением
	if strings.Contains(input, "/") {
		parts := strings.Split(input, "/")
		if len(parts) != 3 {
			return "", fmt.Errorf("%w: %q", ErrInvalidDateFormat, input)
		}
		day, errD := strconv.Atoi(parts[0])
		month, errM := strconv.Atoi(parts[1])
		year, errY := strconv.Atoi(parts[2])
		if errD != nil || errM != nil || errY != nil {
			return "", fmt.Errorf("%w: %q", ErrInvalidDateFormat, input)
		}
		input = fmt.Sprintf("%04d-%02d-%02d", year, month, day)
	}

	parsed, err := time.Parse(DateFormat, input)
	if err != nil {
		// Последняя попытка - общий RFC3339-парсинг (например "2025-01-02T00:00:00Z")
		parsed, err = time.Parse(time.RFC3339, input)
		if err != nil {
			return "", fmt.Errorf("%w: %q", ErrInvalidDateFormat, input)
		}
	}

	return parsed.Format(DateFormat), nil
}

// LoadLocation загружает IANA-таймзону
func LoadLocation(timezone string) (*time.Location, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTimezone, timezone)
	}
	return loc, nil
}

// ToUTC интерпретирует "{date} {time}" как настенное время в указанной
// таймзоне и возвращает эквивалентный UTC-момент
// date ожидается в каноничном виде YYYY-MM-DD, timeOfDay - HH:MM
func ToUTC(date, timeOfDay, timezone string) (time.Time, error) {
	loc, err := LoadLocation(timezone)
	if err != nil {
		return time.Time{}, err
	}

	composed := date + " " + timeOfDay
	local, err := time.ParseInLocation(DateFormat+" "+TimeFormat, composed, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q in %q", ErrInvalidLocalDateTime, composed, timezone)
	}

	return local.UTC(), nil
}

// LocalDay возвращает локальный календарный день (YYYY-MM-DD), которому
// принадлежит UTC-момент в указанной таймзоне
// Это НЕ дата из UTC-представления: около полуночи они расходятся
func LocalDay(instant time.Time, loc *time.Location) string {
	return instant.In(loc).Format(DateFormat)
}

// LocalMidnight возвращает UTC-момент локальной полуночи указанного дня
func LocalMidnight(date, timezone string) (time.Time, error) {
	return ToUTC(date, "00:00", timezone)
}
