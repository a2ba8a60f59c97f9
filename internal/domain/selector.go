package domain

import "errors"

var (
	// ErrMissingDaySelector возвращается, когда не указан ни dayId, ни дата
	ErrMissingDaySelector = errors.New("domain: day selector requires either a date or a day id")

	// ErrAmbiguousDaySelector возвращается, когда указаны и dayId, и дата одновременно
	ErrAmbiguousDaySelector = errors.New("domain: day selector accepts either a date or a day id, not both")
)

type selectorKind int

const (
	selectorByDate selectorKind = iota + 1
	selectorByID
)

// DaySelector тегированный выбор дня: либо по локальной дате, либо по ID дня
// Конструируется только через NewDaySelector, поэтому состояние "оба" или
// "ни одного" невозможно после успешного создания
type DaySelector struct {
	kind selectorKind
	date string
	id   int64
}

// NewDaySelector создает селектор из опциональных параметров запроса
// Ровно один из параметров должен быть задан
func NewDaySelector(date *string, dayID *int64) (DaySelector, error) {
	switch {
	case date == nil && dayID == nil:
		return DaySelector{}, ErrMissingDaySelector
	case date != nil && dayID != nil:
		return DaySelector{}, ErrAmbiguousDaySelector
	case date != nil:
		return DaySelector{kind: selectorByDate, date: *date}, nil
	default:
		return DaySelector{kind: selectorByID, id: *dayID}, nil
	}
}

// ByDate возвращает дату и признак, что селектор задан датой
func (s DaySelector) ByDate() (string, bool) {
	return s.date, s.kind == selectorByDate
}

// ByID возвращает ID дня и признак, что селектор задан идентификатором
func (s DaySelector) ByID() (int64, bool) {
	return s.id, s.kind == selectorByID
}
