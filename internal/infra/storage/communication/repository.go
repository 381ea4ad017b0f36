package communication

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-ClinicBooking/internal/domain"
	"github.com/m04kA/SMC-ClinicBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-ClinicBooking/pkg/psqlbuilder"
)

const tableCommunications = "communications_log"

var communicationColumns = []string{
	"communication_id",
	"booking_id",
	"kind",
	"channel",
	"recipient",
	"subject",
	"message",
	"action_required",
	"scheduled_at",
	"dispatched_at",
	"created_at",
}

// Repository журнал коммуникаций по бронированиям
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория коммуникаций
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Append добавляет пачку записей одним запросом
func (r *Repository) Append(ctx context.Context, items []*domain.Communication) error {
	if len(items) == 0 {
		return nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	insert := psqlbuilder.Insert(tableCommunications).Columns(communicationColumns...)
	for _, c := range items {
		insert = insert.Values(
			c.ID,
			c.BookingID,
			c.Kind,
			c.Channel,
			c.Recipient,
			c.Subject,
			c.Message,
			c.ActionRequired,
			c.ScheduledAt,
			c.DispatchedAt,
			c.CreatedAt,
		)
	}

	query, args, err := insert.ToSql()
	if err != nil {
		return fmt.Errorf("%w: Append - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Append - execute insert: %w", ErrExecQuery, err)
	}

	return nil
}

// ListByBooking возвращает записи бронирования, отсортированные по времени отправки
func (r *Repository) ListByBooking(ctx context.Context, bookingID string) ([]*domain.Communication, error) {
	query, args, err := psqlbuilder.Select(communicationColumns...).
		From(tableCommunications).
		Where(squirrel.Eq{"booking_id": bookingID}).
		OrderBy("scheduled_at ASC", "created_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByBooking - build select query: %v", ErrBuildQuery, err)
	}

	return r.query(ctx, "ListByBooking", query, args)
}

// ListDue возвращает неотправленные записи, время которых наступило
func (r *Repository) ListDue(ctx context.Context, now time.Time, limit int) ([]*domain.Communication, error) {
	builder := psqlbuilder.Select(communicationColumns...).
		From(tableCommunications).
		Where(squirrel.Eq{"dispatched_at": nil}).
		Where(squirrel.LtOrEq{"scheduled_at": now}).
		OrderBy("scheduled_at ASC")
	if limit > 0 {
		builder = builder.Limit(uint64(limit))
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListDue - build select query: %v", ErrBuildQuery, err)
	}

	return r.query(ctx, "ListDue", query, args)
}

// MarkDispatched проставляет время отправки. Повторная отметка не меняет запись.
func (r *Repository) MarkDispatched(ctx context.Context, id string, at time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(tableCommunications).
		Set("dispatched_at", at).
		Where(squirrel.Eq{"communication_id": id, "dispatched_at": nil}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: MarkDispatched - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: MarkDispatched - execute update: %w", ErrExecQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: MarkDispatched - get rows affected: %w", ErrExecQuery, err)
	}
	if affected == 0 {
		return ErrCommunicationNotFound
	}

	return nil
}

func (r *Repository) query(ctx context.Context, op, query string, args []interface{}) ([]*domain.Communication, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %w", ErrExecQuery, op, err)
	}
	defer rows.Close()

	items := make([]*domain.Communication, 0)
	for rows.Next() {
		var c domain.Communication
		var dispatchedAt sql.NullTime
		err := rows.Scan(
			&c.ID,
			&c.BookingID,
			&c.Kind,
			&c.Channel,
			&c.Recipient,
			&c.Subject,
			&c.Message,
			&c.ActionRequired,
			&c.ScheduledAt,
			&dispatchedAt,
			&c.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: %s - scan row: %w", ErrScanRow, op, err)
		}
		if dispatchedAt.Valid {
			t := dispatchedAt.Time
			c.DispatchedAt = &t
		}
		items = append(items, &c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows error: %w", ErrScanRow, op, err)
	}

	return items, nil
}
