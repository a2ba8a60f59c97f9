package availability

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AvailabilityService/pkg/psqlbuilder"
)

// pqUniqueViolation код ошибки PostgreSQL при нарушении уникального ограничения
const pqUniqueViolation = "23505"

// Repository репозиторий календаря доступности
// Единственная точка чтения/записи таблиц available_days и available_slots
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// CreateDay создает день доступности
// Уникальность пары (owner_id, date) обеспечивается ограничением БД:
// при конфликте возвращается ErrDuplicateDay
func (r *Repository) CreateDay(ctx context.Context, day *domain.AvailableDay) (*domain.AvailableDay, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("available_days").
		Columns("owner_id", "date").
		Values(day.OwnerID, day.Date).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: CreateDay - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&day.ID, &createdAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == pqUniqueViolation {
			return nil, ErrDuplicateDay
		}
		return nil, fmt.Errorf("%w: CreateDay - execute insert: %v", ErrExecQuery, err)
	}

	day.CreatedAt = createdAt.Time
	return day, nil
}

// GetDayByID получает день по ID
// Внутри транзакции блокирует строку (FOR UPDATE) для сериализации
// конкурентных мутаций одного дня
func (r *Repository) GetDayByID(ctx context.Context, id int64) (*domain.AvailableDay, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select("id", "owner_id", "date", "created_at").
		From("available_days").
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetDayByID - build select query: %v", ErrBuildQuery, err)
	}

	return r.scanDay(executor.QueryRowContext(ctx, query, args...), "GetDayByID")
}

// GetDayByOwnerAndDate получает день по естественному ключу (owner_id, date)
func (r *Repository) GetDayByOwnerAndDate(ctx context.Context, ownerID int64, date time.Time) (*domain.AvailableDay, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select("id", "owner_id", "date", "created_at").
		From("available_days").
		Where(squirrel.Eq{"owner_id": ownerID, "date": date})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetDayByOwnerAndDate - build select query: %v", ErrBuildQuery, err)
	}

	return r.scanDay(executor.QueryRowContext(ctx, query, args...), "GetDayByOwnerAndDate")
}

// DeleteDay удаляет день
// Слоты дня удаляются каскадно на уровне БД (ON DELETE CASCADE),
// но бизнес-проверка на забронированные слоты выполняется на уровне usecase
func (r *Repository) DeleteDay(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("available_days").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: DeleteDay - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: DeleteDay - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: DeleteDay - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrDayNotFound
	}

	return nil
}

// InsertSlots создает пачку слотов одним запросом
// Пустая пачка допустима: день без слотов - валидное состояние
func (r *Repository) InsertSlots(ctx context.Context, slots []*domain.AvailableSlot) error {
	if len(slots) == 0 {
		return nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	insertBuilder := psqlbuilder.Insert("available_slots").
		Columns("available_day_id", "start_time", "end_time", "is_booked", "meeting_reminder_id", "user_timezone")

	for _, slot := range slots {
		insertBuilder = insertBuilder.Values(
			slot.AvailableDayID,
			slot.StartTime,
			slot.EndTime,
			slot.IsBooked,
			slot.MeetingReminderID,
			slot.UserTimezone,
		)
	}

	query, args, err := insertBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: InsertSlots - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: InsertSlots - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// InsertSlot создает один слот и возвращает его с заполненными id/created_at
func (r *Repository) InsertSlot(ctx context.Context, slot *domain.AvailableSlot) (*domain.AvailableSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("available_slots").
		Columns("available_day_id", "start_time", "end_time", "is_booked", "meeting_reminder_id", "user_timezone").
		Values(slot.AvailableDayID, slot.StartTime, slot.EndTime, slot.IsBooked, slot.MeetingReminderID, slot.UserTimezone).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: InsertSlot - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&slot.ID, &createdAt); err != nil {
		return nil, fmt.Errorf("%w: InsertSlot - execute insert: %v", ErrExecQuery, err)
	}

	slot.CreatedAt = createdAt.Time
	return slot, nil
}

// GetSlotByID получает слот по ID
func (r *Repository) GetSlotByID(ctx context.Context, id int64) (*domain.AvailableSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(
		"id", "available_day_id", "start_time", "end_time",
		"is_booked", "meeting_reminder_id", "user_timezone", "created_at",
	).
		From("available_slots").
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetSlotByID - build select query: %v", ErrBuildQuery, err)
	}

	var slot domain.AvailableSlot
	var createdAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&slot.ID,
		&slot.AvailableDayID,
		&slot.StartTime,
		&slot.EndTime,
		&slot.IsBooked,
		&slot.MeetingReminderID,
		&slot.UserTimezone,
		&createdAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrSlotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetSlotByID - scan slot: %v", ErrScanRow, err)
	}

	slot.CreatedAt = createdAt.Time
	return &slot, nil
}

// GetSlotsByDayID получает все слоты дня, упорядоченные по времени начала
// Внутри транзакции слоты блокируются (FOR UPDATE): проверка занятости
// и последующее удаление должны видеть согласованное состояние
func (r *Repository) GetSlotsByDayID(ctx context.Context, dayID int64) ([]*domain.AvailableSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(
		"id", "available_day_id", "start_time", "end_time",
		"is_booked", "meeting_reminder_id", "user_timezone", "created_at",
	).
		From("available_slots").
		Where(squirrel.Eq{"available_day_id": dayID}).
		OrderBy("start_time ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetSlotsByDayID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetSlotsByDayID - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanSlots(rows, "GetSlotsByDayID")
}

// GetSlotsInRange получает слоты владельца, начинающиеся в UTC-окне [from, to)
// Используется календарной сеткой и выборкой слотов дня по дате
func (r *Repository) GetSlotsInRange(ctx context.Context, ownerID int64, from, to time.Time) ([]*domain.AvailableSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"s.id", "s.available_day_id", "s.start_time", "s.end_time",
		"s.is_booked", "s.meeting_reminder_id", "s.user_timezone", "s.created_at",
	).
		From("available_slots s").
		Join("available_days d ON d.id = s.available_day_id").
		Where(squirrel.Eq{"d.owner_id": ownerID}).
		Where(squirrel.GtOrEq{"s.start_time": from}).
		Where(squirrel.Lt{"s.start_time": to}).
		OrderBy("s.start_time ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetSlotsInRange - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetSlotsInRange - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanSlots(rows, "GetSlotsInRange")
}

// CountBookedSlots возвращает количество забронированных слотов дня
func (r *Repository) CountBookedSlots(ctx context.Context, dayID int64) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From("available_slots").
		Where(squirrel.Eq{"available_day_id": dayID, "is_booked": true}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: CountBookedSlots - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountBookedSlots - scan count: %v", ErrScanRow, err)
	}

	return count, nil
}

// DeleteSlotsByDayID удаляет все слоты дня
// Отсутствие слотов не считается ошибкой
func (r *Repository) DeleteSlotsByDayID(ctx context.Context, dayID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("available_slots").
		Where(squirrel.Eq{"available_day_id": dayID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: DeleteSlotsByDayID - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: DeleteSlotsByDayID - execute delete: %v", ErrExecQuery, err)
	}

	return nil
}

// DeleteSlot удаляет один слот
func (r *Repository) DeleteSlot(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("available_slots").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: DeleteSlot - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: DeleteSlot - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: DeleteSlot - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrSlotNotFound
	}

	return nil
}

// scanDay сканирует одну строку дня
func (r *Repository) scanDay(row *sql.Row, method string) (*domain.AvailableDay, error) {
	var day domain.AvailableDay
	var createdAt sql.NullTime

	err := row.Scan(&day.ID, &day.OwnerID, &day.Date, &createdAt)
	if err == sql.ErrNoRows {
		return nil, ErrDayNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan day: %v", ErrScanRow, method, err)
	}

	day.CreatedAt = createdAt.Time
	return &day, nil
}

// scanSlots сканирует результаты запроса в слайс слотов
func (r *Repository) scanSlots(rows *sql.Rows, method string) ([]*domain.AvailableSlot, error) {
	slots := make([]*domain.AvailableSlot, 0)

	for rows.Next() {
		var slot domain.AvailableSlot
		var createdAt sql.NullTime

		err := rows.Scan(
			&slot.ID,
			&slot.AvailableDayID,
			&slot.StartTime,
			&slot.EndTime,
			&slot.IsBooked,
			&slot.MeetingReminderID,
			&slot.UserTimezone,
			&createdAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: %s - scan row: %v", ErrScanRow, method, err)
		}

		slot.CreatedAt = createdAt.Time
		slots = append(slots, &slot)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows error: %v", ErrScanRow, method, err)
	}

	return slots, nil
}
