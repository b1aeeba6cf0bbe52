package store

import (
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLiteStoreErrors(t *testing.T) {
	tests := []struct {
		name      string
		mockSetup func(sqlmock.Sqlmock)
		run       func(*SQLiteStore) error
		wantErr   string
	}{
		{
			name: "insert fails and rolls back",
			mockSetup: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec("INSERT INTO plans").WillReturnError(errors.New("disk I/O error"))
				mock.ExpectRollback()
			},
			run: func(s *SQLiteStore) error {
				return s.SavePlan(plan("p1", "Delhi", "Goa", time.Now().UTC()))
			},
			wantErr: "insert plan: disk I/O error",
		},
		{
			name: "retention fails and rolls back",
			mockSetup: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec("INSERT INTO plans").WillReturnResult(sqlmock.NewResult(1, 1))
				mock.ExpectExec("DELETE FROM plans").WillReturnError(errors.New("locked"))
				mock.ExpectRollback()
			},
			run: func(s *SQLiteStore) error {
				return s.SavePlan(plan("p1", "Delhi", "Goa", time.Now().UTC()))
			},
			wantErr: "enforce history limit: locked",
		},
		{
			name: "corrupt body",
			mockSetup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("SELECT body FROM plans").
					WithArgs("delhi>goa").
					WillReturnRows(sqlmock.NewRows([]string{"body"}).AddRow("{not json"))
			},
			run: func(s *SQLiteStore) error {
				_, err := s.GetLatest("Delhi", "Goa")
				return err
			},
			wantErr: "decode plan",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			mock.ExpectExec("CREATE TABLE IF NOT EXISTS plans").WillReturnResult(sqlmock.NewResult(0, 0))
			tt.mockSetup(mock)

			s, err := newSQLiteStore(db, 5, 0)
			require.NoError(t, err)

			err = tt.run(s)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestSQLiteSchemaFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("CREATE TABLE").WillReturnError(errors.New("read-only database"))

	_, err = newSQLiteStore(db, 0, 0)
	assert.ErrorContains(t, err, "apply schema")
}
