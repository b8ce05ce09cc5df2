package commitment

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-StudioScheduler/internal/domain"
	"github.com/m04kA/SMC-StudioScheduler/pkg/dbmetrics"
	"github.com/m04kA/SMC-StudioScheduler/pkg/psqlbuilder"
)

const (
	sessionsTable = "sessions"
	blocksTable   = "blocked_intervals"
)

// Repository собирает занятые интервалы календаря: подтвержденные сессии и явные блокировки
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория занятости
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// ListConfirmed возвращает подтвержденные интервалы, пересекающиеся с [from, to), по возрастанию начала
// Внутри транзакции найденные строки блокируются (FOR UPDATE)
func (r *Repository) ListConfirmed(ctx context.Context, from, to time.Time) ([]domain.Commitment, error) {
	sessions, err := r.listSessions(ctx, from, to)
	if err != nil {
		return nil, err
	}

	blocks, err := r.listBlocks(ctx, from, to)
	if err != nil {
		return nil, err
	}

	commitments := append(sessions, blocks...)
	sort.SliceStable(commitments, func(i, j int) bool {
		return commitments[i].Start.Before(commitments[j].Start)
	})

	return commitments, nil
}

// ListOverlapping возвращает подтвержденные интервалы, пересекающиеся с interval
func (r *Repository) ListOverlapping(ctx context.Context, interval domain.Interval) ([]domain.Commitment, error) {
	return r.ListConfirmed(ctx, interval.Start, interval.End)
}

// sessionsQuery строит выборку подтвержденных сессий, пересекающихся с [from, to)
func sessionsQuery(ctx context.Context, from, to time.Time) (string, []interface{}, error) {
	// Полуоткрытые интервалы: start < to AND end > from
	selectBuilder := psqlbuilder.Select("id", "project_id", "start_datetime", "end_datetime").
		From(sessionsTable).
		Where(squirrel.Eq{"status": domain.SessionStatusConfirmed}).
		Where(squirrel.Lt{"start_datetime": to}).
		Where(squirrel.Gt{"end_datetime": from}).
		OrderBy("start_datetime ASC")

	return lockInTx(ctx, selectBuilder).ToSql()
}

// blocksQuery строит выборку блокировок, пересекающихся с [from, to)
func blocksQuery(ctx context.Context, from, to time.Time) (string, []interface{}, error) {
	selectBuilder := psqlbuilder.Select("id", "start_datetime", "end_datetime", "reason").
		From(blocksTable).
		Where(squirrel.Lt{"start_datetime": to}).
		Where(squirrel.Gt{"end_datetime": from}).
		OrderBy("start_datetime ASC")

	return lockInTx(ctx, selectBuilder).ToSql()
}

// lockInTx добавляет FOR UPDATE, если запрос выполняется в транзакции
func lockInTx(ctx context.Context, b squirrel.SelectBuilder) squirrel.SelectBuilder {
	if dbmetrics.IsInTransaction(ctx) {
		return b.Suffix("FOR UPDATE")
	}
	return b
}

func (r *Repository) listSessions(ctx context.Context, from, to time.Time) ([]domain.Commitment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := sessionsQuery(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("%w: listSessions - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: listSessions - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make([]domain.Commitment, 0)
	for rows.Next() {
		var projectID int64
		c := domain.Commitment{
			Kind:   domain.CommitmentSession,
			Status: domain.CommitmentConfirmed,
		}

		if err := rows.Scan(&c.ID, &projectID, &c.Start, &c.End); err != nil {
			return nil, fmt.Errorf("%w: listSessions - scan row: %w", ErrScanRow, err)
		}
		c.ProjectID = &projectID

		result = append(result, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: listSessions - rows error: %w", ErrScanRow, err)
	}

	return result, nil
}

func (r *Repository) listBlocks(ctx context.Context, from, to time.Time) ([]domain.Commitment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := blocksQuery(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("%w: listBlocks - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: listBlocks - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make([]domain.Commitment, 0)
	for rows.Next() {
		c := domain.Commitment{
			Kind:   domain.CommitmentBlock,
			Status: domain.CommitmentConfirmed,
		}

		if err := rows.Scan(&c.ID, &c.Start, &c.End, &c.Reason); err != nil {
			return nil, fmt.Errorf("%w: listBlocks - scan row: %w", ErrScanRow, err)
		}

		result = append(result, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: listBlocks - rows error: %w", ErrScanRow, err)
	}

	return result, nil
}

// CreateBlock создает явную блокировку интервала
func (r *Repository) CreateBlock(ctx context.Context, block *domain.Commitment) (*domain.Commitment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(blocksTable).
		Columns("start_datetime", "end_datetime", "reason").
		Values(block.Start, block.End, block.Reason).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: CreateBlock - build insert query: %w", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&block.ID); err != nil {
		return nil, fmt.Errorf("%w: CreateBlock - execute insert: %w", ErrExecQuery, err)
	}

	block.Kind = domain.CommitmentBlock
	block.Status = domain.CommitmentConfirmed

	return block, nil
}

// DeleteBlock удаляет явную блокировку интервала
func (r *Repository) DeleteBlock(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(blocksTable).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: DeleteBlock - build delete query: %w", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: DeleteBlock - execute delete: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: DeleteBlock - get rows affected: %w", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrBlockNotFound
	}

	return nil
}
