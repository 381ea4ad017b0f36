package slot

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-ClinicBooking/internal/domain"
	"github.com/m04kA/SMC-ClinicBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-ClinicBooking/pkg/psqlbuilder"
	"github.com/m04kA/SMC-ClinicBooking/pkg/types"
)

const tableAvailability = "availability"

// SQLSTATE нарушений ограничений availability
const (
	checkViolation     = "23514"
	exclusionViolation = "23P01"
)

var slotColumns = []string{
	"provider_id",
	"slot_date",
	"start_time",
	"end_time",
	"location",
	"booked",
}

// Repository хранилище календарей врачей (единственный владелец флага booked)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория слотов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// ListFree возвращает свободные слоты врача на дату, отсортированные по времени начала.
// Пустой календарь - это пустой список, а не ошибка.
func (r *Repository) ListFree(ctx context.Context, providerID string, date time.Time) ([]*domain.BaseSlot, error) {
	return r.list(ctx, "ListFree", squirrel.Eq{
		"provider_id": providerID,
		"slot_date":   domain.NormalizeDate(date),
		"booked":      false,
	})
}

// ListDay возвращает все слоты врача на дату (свободные и занятые)
func (r *Repository) ListDay(ctx context.Context, providerID string, date time.Time) ([]*domain.BaseSlot, error) {
	return r.list(ctx, "ListDay", squirrel.Eq{
		"provider_id": providerID,
		"slot_date":   domain.NormalizeDate(date),
	})
}

func (r *Repository) list(ctx context.Context, op string, where squirrel.Eq) ([]*domain.BaseSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(slotColumns...).
		From(tableAvailability).
		Where(where).
		OrderBy("start_time ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %w", ErrExecQuery, op, err)
	}
	defer rows.Close()

	slots := make([]*domain.BaseSlot, 0)
	for rows.Next() {
		var s domain.BaseSlot
		if err := rows.Scan(&s.ProviderID, &s.Date, &s.StartTime, &s.EndTime, &s.Location, &s.Booked); err != nil {
			return nil, fmt.Errorf("%w: %s - scan slot: %w", ErrScanRow, op, err)
		}
		s.Date = domain.NormalizeDate(s.Date)
		slots = append(slots, &s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows error: %w", ErrScanRow, op, err)
	}

	return slots, nil
}

// TryReserve атомарно переводит все перечисленные слоты в booked.
// Если хотя бы один слот уже занят - не бронирует ни одного и возвращает ErrConflict.
//
// Должен вызываться внутри транзакции (txmanager.DoSerializable): строки блокируются
// через SELECT ... FOR UPDATE только для запрошенных слотов, поэтому бронирования
// непересекающихся слотов не конкурируют друг с другом.
func (r *Repository) TryReserve(ctx context.Context, providerID string, date time.Time, starts []types.TimeString) error {
	if !dbmetrics.IsInTransaction(ctx) {
		return ErrTransaction
	}
	if len(starts) == 0 {
		return fmt.Errorf("%w: TryReserve - empty slot set", ErrSlotNotFound)
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)
	day := domain.NormalizeDate(date)

	startValues := make([]string, len(starts))
	for i, s := range starts {
		startValues[i] = s.String()
	}

	where := squirrel.Eq{
		"provider_id": providerID,
		"slot_date":   day,
		"start_time":  startValues,
	}

	// 1. Блокируем строки запрошенных слотов
	lockQuery, lockArgs, err := psqlbuilder.Select("start_time", "booked").
		From(tableAvailability).
		Where(where).
		OrderBy("start_time ASC").
		Suffix("FOR UPDATE").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: TryReserve - build lock query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, lockQuery, lockArgs...)
	if err != nil {
		if isSerializationFailure(err) {
			return fmt.Errorf("%w: TryReserve - concurrent update: %v", ErrConflict, err)
		}
		return fmt.Errorf("%w: TryReserve - execute lock query: %w", ErrExecQuery, err)
	}

	found := 0
	anyBooked := false
	for rows.Next() {
		var start types.TimeString
		var booked bool
		if err := rows.Scan(&start, &booked); err != nil {
			rows.Close()
			return fmt.Errorf("%w: TryReserve - scan locked slot: %w", ErrScanRow, err)
		}
		found++
		if booked {
			anyBooked = true
		}
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		if isSerializationFailure(err) {
			return fmt.Errorf("%w: TryReserve - concurrent update: %v", ErrConflict, err)
		}
		return fmt.Errorf("%w: TryReserve - rows error: %w", ErrScanRow, err)
	}
	rows.Close()

	// 2. Проверяем, что все слоты существуют и свободны
	if found != len(starts) {
		return fmt.Errorf("%w: TryReserve - requested %d slots, found %d", ErrSlotNotFound, len(starts), found)
	}
	if anyBooked {
		return ErrConflict
	}

	// 3. Переводим слоты в booked условным UPDATE
	updateQuery, updateArgs, err := psqlbuilder.Update(tableAvailability).
		Set("booked", true).
		Where(where).
		Where(squirrel.Eq{"booked": false}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: TryReserve - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, updateQuery, updateArgs...)
	if err != nil {
		if isSerializationFailure(err) {
			return fmt.Errorf("%w: TryReserve - concurrent update: %v", ErrConflict, err)
		}
		return fmt.Errorf("%w: TryReserve - execute update: %w", ErrExecQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: TryReserve - get rows affected: %w", ErrExecQuery, err)
	}

	// Транзакция откатится вызывающим кодом, частичное бронирование не сохранится
	if affected != int64(len(starts)) {
		return ErrConflict
	}

	return nil
}

// CreateSlots добавляет слоты в календарь. Уже существующие слоты не перезаписываются.
// Слот не базовой длины или пересекающийся с другим слотом дня дает ErrInvalidSlot.
// Пересечения при параллельной записи отсекает ограничение availability_no_overlap.
func (r *Repository) CreateSlots(ctx context.Context, slots []*domain.BaseSlot) error {
	if len(slots) == 0 {
		return nil
	}

	type dayKey struct {
		providerID string
		date       string
	}
	byDay := make(map[dayKey][]*domain.BaseSlot)
	keys := make([]dayKey, 0)
	for _, s := range slots {
		k := dayKey{providerID: s.ProviderID, date: domain.NormalizeDate(s.Date).Format(domain.DateFormat)}
		if _, ok := byDay[k]; !ok {
			keys = append(keys, k)
		}
		byDay[k] = append(byDay[k], s)
	}

	toInsert := make([]*domain.BaseSlot, 0, len(slots))
	for _, k := range keys {
		incoming := byDay[k]
		existing, err := r.ListDay(ctx, k.providerID, incoming[0].Date)
		if err != nil {
			return err
		}

		added, err := NewSlotsForDay(existing, incoming)
		if err != nil {
			return fmt.Errorf("%w (provider %s, date %s)", err, k.providerID, k.date)
		}
		toInsert = append(toInsert, added...)
	}

	if len(toInsert) == 0 {
		return nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	insert := psqlbuilder.Insert(tableAvailability).Columns(slotColumns...)
	for _, s := range toInsert {
		insert = insert.Values(
			s.ProviderID,
			domain.NormalizeDate(s.Date),
			s.StartTime,
			s.EndTime,
			s.Location,
			s.Booked,
		)
	}

	query, args, err := insert.
		Suffix("ON CONFLICT (provider_id, slot_date, start_time) DO NOTHING").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: CreateSlots - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && (pqErr.Code == checkViolation || pqErr.Code == exclusionViolation) {
			return fmt.Errorf("%w: CreateSlots - %s: %w", ErrInvalidSlot, pqErr.Constraint, err)
		}
		return fmt.Errorf("%w: CreateSlots - execute insert: %w", ErrExecQuery, err)
	}

	return nil
}

func isSerializationFailure(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "40001" || pqErr.Code == "40P01"
	}
	return false
}
