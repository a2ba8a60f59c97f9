package get_day_slots

import (
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

// Request модель запроса слотов одного дня
// День выбирается либо локальной датой, либо идентификатором (DaySelector)
type Request struct {
	OwnerID  int64              // ID владельца календаря
	Selector domain.DaySelector // Выбор дня: дата или dayId
	Role     domain.CallerRole  // Роль вызывающей стороны
	Timezone string             // IANA-таймзона; пустая - дефолт сервиса
}

// Slot модель слота в ответе
type Slot struct {
	ID          int64
	DayID       int64
	StartTime   time.Time // UTC
	EndTime     time.Time // UTC
	IsBooked    bool
	HasReminder bool
	LocalDate   string // Локальный день слота в таймзоне запроса (YYYY-MM-DD)
}

// Response модель ответа со слотами дня, упорядоченными по времени начала
type Response struct {
	OwnerID  int64
	Timezone string
	Slots    []Slot
}
