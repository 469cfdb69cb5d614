package database

import (
	"context"
	"testing"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrate_RunsAllInOrder(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS vault_owner`).
		WillReturnResult(pgxmock.NewResult("CREATE", 0))
	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS credential_vaults`).
		WillReturnResult(pgxmock.NewResult("CREATE", 0))
	mock.ExpectExec(`credential_vaults_records_array`).
		WillReturnResult(pgxmock.NewResult("DO", 0))

	db := &DB{Pool: mock}
	require.NoError(t, db.Migrate(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMigrate_StopsOnFailure(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS vault_owner`).
		WillReturnError(assert.AnError)

	db := &DB{Pool: mock}
	err = db.Migrate(context.Background())

	assert.ErrorContains(t, err, "migration 1 failed")
	assert.NoError(t, mock.ExpectationsWereMet())
}
