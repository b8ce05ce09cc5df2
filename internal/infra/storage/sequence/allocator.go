package sequence

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-StudioScheduler/pkg/dbmetrics"
)

// Allocator выдает номера проектов из последовательности PostgreSQL.
// nextval атомарен и не откатывается вместе с транзакцией, поэтому номера могут идти с пропусками.
type Allocator struct {
	db      DBExecutor
	name    string
	timeout time.Duration
}

// NewAllocator создает аллокатор для последовательности name
func NewAllocator(db DBExecutor, name string, timeout time.Duration) *Allocator {
	return &Allocator{
		db:      db,
		name:    name,
		timeout: timeout,
	}
}

// Next возвращает следующий номер проекта
func (a *Allocator) Next(ctx context.Context) (int64, error) {
	if a.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.timeout)
		defer cancel()
	}

	executor := dbmetrics.GetExecutor(ctx, a.db)

	var number int64
	if err := executor.QueryRowContext(ctx, "SELECT nextval($1::regclass)", a.name).Scan(&number); err != nil {
		return 0, fmt.Errorf("%w: Next - nextval(%s): %w", ErrAllocate, a.name, err)
	}

	return number, nil
}
