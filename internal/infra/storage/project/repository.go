package project

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-StudioScheduler/internal/domain"
	"github.com/m04kA/SMC-StudioScheduler/pkg/dbmetrics"
	"github.com/m04kA/SMC-StudioScheduler/pkg/psqlbuilder"
	"github.com/m04kA/SMC-StudioScheduler/pkg/types"
)

const table = "projects"

// Repository репозиторий для работы с проектами
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория проектов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает проект
// Если в контексте передана активная транзакция, использует её
func (r *Repository) Create(ctx context.Context, p *domain.Project) (*domain.Project, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(table).
		Columns(
			"project_number",
			"client_id",
			"service_id",
			"address",
			"shoot_date",
			"shoot_time",
			"status",
			"scheduling_state",
		).
		Values(
			p.ProjectNumber,
			p.ClientID,
			p.ServiceID,
			p.Address,
			p.ShootDate.Format(domain.DateFormat),
			p.ShootTime,
			p.Status,
			p.SchedulingState,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %w", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&p.ID, &createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	p.CreatedAt = createdAt.Time
	p.UpdatedAt = updatedAt.Time

	return p, nil
}

// GetByID получает проект по ID
// Внутри транзакции строка блокируется (FOR UPDATE)
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Project, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(
		"id",
		"project_number",
		"client_id",
		"service_id",
		"address",
		"shoot_date",
		"shoot_time",
		"status",
		"scheduling_state",
		"created_at",
		"updated_at",
	).
		From(table).
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %w", ErrBuildQuery, err)
	}

	var p domain.Project
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&p.ID,
		&p.ProjectNumber,
		&p.ClientID,
		&p.ServiceID,
		&p.Address,
		&p.ShootDate,
		&p.ShootTime,
		&p.Status,
		&p.SchedulingState,
		&createdAt,
		&updatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrProjectNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan project: %w", ErrScanRow, err)
	}

	p.CreatedAt = createdAt.Time
	p.UpdatedAt = updatedAt.Time

	return &p, nil
}

// UpdateSchedule переносит съемку на новую дату и время и меняет состояние планирования
func (r *Repository) UpdateSchedule(
	ctx context.Context,
	id int64,
	shootDate time.Time,
	shootTime types.TimeString,
	state domain.SchedulingState,
) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("shoot_date", shootDate.Format(domain.DateFormat)).
		Set("shoot_time", shootTime).
		Set("scheduling_state", state).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateSchedule - build update query: %w", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateSchedule - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateSchedule - get rows affected: %w", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return domain.ErrProjectNotFound
	}

	return nil
}

// UpdateSchedulingState меняет только состояние планирования
func (r *Repository) UpdateSchedulingState(ctx context.Context, id int64, state domain.SchedulingState) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("scheduling_state", state).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateSchedulingState - build update query: %w", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateSchedulingState - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateSchedulingState - get rows affected: %w", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return domain.ErrProjectNotFound
	}

	return nil
}

// Delete удаляет проект
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(table).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %w", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %w", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return domain.ErrProjectNotFound
	}

	return nil
}
