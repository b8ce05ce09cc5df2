package dependents

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-StudioScheduler/pkg/dbmetrics"
)

// recorder запоминает выполненные запросы; failOn задает ошибку по префиксу запроса
type recorder struct {
	queries []string
	args    [][]interface{}
	failOn  map[string]error
	rows    int64
}

func (r *recorder) ExecContext(_ context.Context, query string, args ...interface{}) (sql.Result, error) {
	r.queries = append(r.queries, query)
	r.args = append(r.args, args)
	for prefix, err := range r.failOn {
		if strings.HasPrefix(query, prefix) {
			return nil, err
		}
	}
	return driver.RowsAffected(r.rows), nil
}

func (r *recorder) QueryContext(context.Context, string, ...interface{}) (*sql.Rows, error) {
	return nil, errors.New("recorder: query not supported")
}

func (r *recorder) QueryRowContext(context.Context, string, ...interface{}) *sql.Row {
	return nil
}

func (r *recorder) Commit() error   { return nil }
func (r *recorder) Rollback() error { return nil }

func TestDeleteByProject_OutsideTransaction(t *testing.T) {
	db := &recorder{rows: 3}
	repo := NewRepository(db)

	n, err := repo.DeleteByProject(context.Background(), TargetFiles, 42)

	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
	assert.Equal(t, []string{"DELETE FROM project_files WHERE project_id = $1"}, db.queries)
	assert.Equal(t, []interface{}{int64(42)}, db.args[0])
}

func TestDeleteByProject_InsideTransactionUsesSavepoint(t *testing.T) {
	db := &recorder{}
	tx := &recorder{rows: 5}
	repo := NewRepository(db)
	ctx := dbmetrics.WithTx(context.Background(), tx)

	n, err := repo.DeleteByProject(ctx, TargetInvoices, 42)

	require.NoError(t, err)
	assert.Equal(t, int64(5), n)
	assert.Empty(t, db.queries, "statements go through the transaction")
	assert.Equal(t, []string{
		"SAVEPOINT cascade_invoices",
		"DELETE FROM invoices WHERE project_id = $1",
		"RELEASE SAVEPOINT cascade_invoices",
	}, tx.queries)
}

func TestDeleteByProject_FailureRollsBackToSavepoint(t *testing.T) {
	tx := &recorder{failOn: map[string]error{"DELETE": errors.New("relation \"invoices\" does not exist")}}
	repo := NewRepository(&recorder{})
	ctx := dbmetrics.WithTx(context.Background(), tx)

	_, err := repo.DeleteByProject(ctx, TargetInvoices, 42)

	require.ErrorIs(t, err, ErrExecQuery)
	assert.Equal(t, []string{
		"SAVEPOINT cascade_invoices",
		"DELETE FROM invoices WHERE project_id = $1",
		"ROLLBACK TO SAVEPOINT cascade_invoices",
	}, tx.queries)
}

func TestDeleteByProject_SavepointFailureSkipsDelete(t *testing.T) {
	tx := &recorder{failOn: map[string]error{"SAVEPOINT": errors.New("current transaction is aborted")}}
	repo := NewRepository(&recorder{})
	ctx := dbmetrics.WithTx(context.Background(), tx)

	_, err := repo.DeleteByProject(ctx, TargetDocuments, 42)

	require.ErrorIs(t, err, ErrExecQuery)
	assert.Equal(t, []string{"SAVEPOINT cascade_project_documents"}, tx.queries)
}

func TestDeleteByProject_UnknownTarget(t *testing.T) {
	db := &recorder{}
	repo := NewRepository(db)

	_, err := repo.DeleteByProject(context.Background(), Target("projects; DROP TABLE projects"), 42)

	assert.ErrorIs(t, err, ErrUnknownTarget)
	assert.Empty(t, db.queries)
}
