package provider

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-ClinicBooking/internal/domain"
	"github.com/m04kA/SMC-ClinicBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-ClinicBooking/pkg/psqlbuilder"
)

// Repository справочник врачей
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория врачей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает врача по ID
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Provider, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("provider_id", "name", "specialty", "location").
		From("providers").
		Where(squirrel.Eq{"provider_id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var p domain.Provider
	err = executor.QueryRowContext(ctx, query, args...).Scan(&p.ID, &p.Name, &p.Specialty, &p.Location)
	if err == sql.ErrNoRows {
		return nil, ErrProviderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan provider: %w", ErrScanRow, err)
	}

	return &p, nil
}

// List возвращает всех врачей, отсортированных по имени
func (r *Repository) List(ctx context.Context) ([]*domain.Provider, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("provider_id", "name", "specialty", "location").
		From("providers").
		OrderBy("name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	providers := make([]*domain.Provider, 0)
	for rows.Next() {
		var p domain.Provider
		if err := rows.Scan(&p.ID, &p.Name, &p.Specialty, &p.Location); err != nil {
			return nil, fmt.Errorf("%w: List - scan provider: %w", ErrScanRow, err)
		}
		providers = append(providers, &p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %w", ErrScanRow, err)
	}

	return providers, nil
}

// Save добавляет врача или обновляет его данные
func (r *Repository) Save(ctx context.Context, p *domain.Provider) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("providers").
		Columns("provider_id", "name", "specialty", "location").
		Values(p.ID, p.Name, p.Specialty, p.Location).
		Suffix("ON CONFLICT (provider_id) DO UPDATE SET name = EXCLUDED.name, specialty = EXCLUDED.specialty, location = EXCLUDED.location").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Save - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Save - execute insert: %w", ErrExecQuery, err)
	}

	return nil
}
