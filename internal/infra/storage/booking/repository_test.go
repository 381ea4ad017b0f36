package booking

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ClinicBooking/internal/domain"
	"github.com/m04kA/SMC-ClinicBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-ClinicBooking/pkg/txmanager"
)

var insertQuery = regexp.QuoteMeta("INSERT INTO bookings")

func testBooking() *domain.Booking {
	return &domain.Booking{
		ID:          "bk-1",
		PatientID:   domain.NewPatientID,
		PatientName: "Jane Doe",
		ProviderID:  "dr-1",
		Date:        time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		StartTime:   "09:00",
		EndTime:     "09:30",
		Location:    "Main Clinic",
		VisitKind:   domain.VisitNew,
		Status:      domain.StatusConfirmed,
		CreatedAt:   time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestRepository_Append(t *testing.T) {
	tests := []struct {
		name      string
		execErr   error
		wantErr   error
		wantPqErr bool
	}{
		{name: "appended"},
		{
			name:      "duplicate booking id",
			execErr:   &pq.Error{Code: "23505", Constraint: "bookings_pkey"},
			wantErr:   ErrDuplicateID,
			wantPqErr: true,
		},
		{
			name:    "insert fails",
			execErr: errors.New("connection reset"),
			wantErr: ErrExecQuery,
		},
		{
			name:      "serialization failure keeps driver error",
			execErr:   &pq.Error{Code: "40001"},
			wantErr:   ErrExecQuery,
			wantPqErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			exec := mock.ExpectExec(insertQuery)
			if tt.execErr != nil {
				exec.WillReturnError(tt.execErr)
			} else {
				exec.WillReturnResult(sqlmock.NewResult(0, 1))
			}

			err = NewRepository(dbmetrics.Wrap(db)).Append(context.Background(), testBooking())

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			if tt.wantPqErr {
				var pqErr *pq.Error
				assert.True(t, errors.As(err, &pqErr))
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRepository_AppendInSerializableTransaction(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	wrapped := dbmetrics.Wrap(db)
	repo := NewRepository(wrapped)
	tm := txmanager.NewTransactionManager(wrapped)

	mock.ExpectBegin()
	mock.ExpectExec(insertQuery).WillReturnError(&pq.Error{Code: "40001"})
	mock.ExpectRollback()

	err = tm.DoSerializable(context.Background(), func(ctx context.Context) error {
		return repo.Append(ctx, testBooking())
	})

	assert.ErrorIs(t, err, txmanager.ErrSerializationFailure)
	assert.NoError(t, mock.ExpectationsWereMet())
}
