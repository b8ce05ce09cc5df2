package dependents

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-StudioScheduler/pkg/dbmetrics"
	"github.com/m04kA/SMC-StudioScheduler/pkg/psqlbuilder"
)

// Target таблица, записи которой принадлежат проекту и удаляются вместе с ним
type Target string

const (
	TargetFiles     Target = "project_files"
	TargetInvoices  Target = "invoices"
	TargetDocuments Target = "project_documents"
)

// Targets порядок каскадного удаления
var Targets = []Target{TargetFiles, TargetInvoices, TargetDocuments}

func (t Target) isKnown() bool {
	for _, known := range Targets {
		if known == t {
			return true
		}
	}
	return false
}

// Repository удаляет зависимые записи проекта
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория зависимых записей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// DeleteByProject удаляет записи target, принадлежащие проекту, и возвращает число удаленных строк.
// Внутри транзакции удаление выполняется под SAVEPOINT: ошибка откатывает только этот шаг,
// и транзакция остается пригодной для следующих запросов.
func (r *Repository) DeleteByProject(ctx context.Context, target Target, projectID int64) (int64, error) {
	if !target.isKnown() {
		return 0, fmt.Errorf("%w: %s", ErrUnknownTarget, target)
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(string(target)).
		Where(squirrel.Eq{"project_id": projectID}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteByProject - build delete query: %w", ErrBuildQuery, err)
	}

	if !dbmetrics.IsInTransaction(ctx) {
		return r.exec(ctx, executor, target, query, args)
	}

	savepoint := "cascade_" + string(target)
	if _, err := executor.ExecContext(ctx, "SAVEPOINT "+savepoint); err != nil {
		return 0, fmt.Errorf("%w: DeleteByProject - savepoint %s: %w", ErrExecQuery, savepoint, err)
	}

	deleted, err := r.exec(ctx, executor, target, query, args)
	if err != nil {
		if _, rbErr := executor.ExecContext(ctx, "ROLLBACK TO SAVEPOINT "+savepoint); rbErr != nil {
			return 0, fmt.Errorf("%w: DeleteByProject - rollback to savepoint %s: %w (after: %w)", ErrExecQuery, savepoint, rbErr, err)
		}
		return 0, err
	}

	if _, err := executor.ExecContext(ctx, "RELEASE SAVEPOINT "+savepoint); err != nil {
		return 0, fmt.Errorf("%w: DeleteByProject - release savepoint %s: %w", ErrExecQuery, savepoint, err)
	}

	return deleted, nil
}

func (r *Repository) exec(ctx context.Context, executor DBExecutor, target Target, query string, args []interface{}) (int64, error) {
	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteByProject - delete from %s: %w", ErrExecQuery, target, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteByProject - get rows affected: %w", ErrExecQuery, err)
	}

	return rowsAffected, nil
}
