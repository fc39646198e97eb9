package store

import (
	"context"
	"encoding/json"
	"testing"

	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shipcube/leads-cli/internal/model"
)

func mockPool(t *testing.T) (pgxmock.PgxPoolIface, *PostgresStore) {
	t.Helper()
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return mock, NewPostgresFromPool(mock)
}

func TestPostgresSaveLead(t *testing.T) {
	mock, s := mockPool(t)

	mock.ExpectExec(`INSERT INTO leads`).
		WithArgs(pgxmock.AnyArg(), "run-1", "acme.com", "Acme Goods", model.StatusPatternGuess,
			8, "jane@acme.com", pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err := s.SaveLead(context.Background(), testLead("run-1", "acme.com", model.StatusPatternGuess))
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresListLeads(t *testing.T) {
	mock, s := mockPool(t)

	lead := testLead("run-1", "acme.com", model.StatusPatternGuess)
	data, err := json.Marshal(lead)
	require.NoError(t, err)

	mock.ExpectQuery(`SELECT data FROM leads WHERE 1=1 AND run_id = \$1 AND status = \$2 ORDER BY created_at LIMIT \$3`).
		WithArgs("run-1", model.StatusPatternGuess, 10).
		WillReturnRows(pgxmock.NewRows([]string{"data"}).AddRow(data))

	leads, err := s.ListLeads(context.Background(), LeadFilter{
		RunID:  "run-1",
		Status: model.StatusPatternGuess,
		Limit:  10,
	})
	require.NoError(t, err)
	require.Len(t, leads, 1)
	assert.Equal(t, "acme.com", leads[0].Domain)
	assert.Equal(t, "Jane", leads[0].Person.FirstName)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresCountLeads(t *testing.T) {
	mock, s := mockPool(t)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM leads WHERE run_id = \$1`).
		WithArgs("run-1").
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(5))

	n, err := s.CountLeads(context.Background(), "run-1")
	require.NoError(t, err)
	assert.Equal(t, 5, n)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresMigrate(t *testing.T) {
	mock, s := mockPool(t)

	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS leads`).
		WillReturnResult(pgxmock.NewResult("CREATE", 0))

	require.NoError(t, s.Migrate(context.Background()))
	require.NoError(t, mock.ExpectationsWereMet())
}
