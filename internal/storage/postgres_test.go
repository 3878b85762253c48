package storage

import (
	"context"
	"database/sql/driver"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var inquiryColumns = []string{
	"id", "reference", "name", "email", "phone", "service_interest",
	"preferred_date", "message", "status", "created_at",
}

func newMockStorage(t *testing.T) (*PostgresStorage, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	s := &PostgresStorage{db: sqlx.NewDb(db, "postgres"), logger: zap.NewNop()}
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		_ = s.Close()
	})
	return s, mock
}

func inquiryRow(id int64, ref, status string, created time.Time) []driver.Value {
	return []driver.Value{id, ref, "Jane Citizen", "jane@example.com", "+61412345678",
		"canvas", nil, "Hello", status, created}
}

func TestSaveInquiry(t *testing.T) {
	created := time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)
	inq := Inquiry{
		Reference: "ref-1", Name: "Jane Citizen", Email: "jane@example.com",
		Phone: "+61412345678", ServiceInterest: "canvas", Message: "Hello",
		Status: StatusNew, CreatedAt: created,
	}

	t.Run("returns new id", func(t *testing.T) {
		s, mock := newMockStorage(t)
		mock.ExpectQuery(`INSERT INTO inquiries`).
			WithArgs("ref-1", "Jane Citizen", "jane@example.com", "+61412345678", "canvas",
				sqlmock.AnyArg(), "Hello", StatusNew, created).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(42))

		id, err := s.SaveInquiry(context.Background(), inq)
		require.NoError(t, err)
		assert.Equal(t, int64(42), id)
	})

	t.Run("no id returned", func(t *testing.T) {
		s, mock := newMockStorage(t)
		mock.ExpectQuery(`INSERT INTO inquiries`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		_, err := s.SaveInquiry(context.Background(), inq)
		assert.ErrorContains(t, err, "no id returned")
	})
}

func TestUpdateInquiryStatus(t *testing.T) {
	t.Run("updated", func(t *testing.T) {
		s, mock := newMockStorage(t)
		mock.ExpectExec(`UPDATE inquiries SET status`).
			WithArgs(StatusSent, int64(42)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, s.UpdateInquiryStatus(context.Background(), 42, StatusSent))
	})

	t.Run("no rows affected", func(t *testing.T) {
		s, mock := newMockStorage(t)
		mock.ExpectExec(`UPDATE inquiries SET status`).
			WithArgs(StatusFailed, int64(7)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := s.UpdateInquiryStatus(context.Background(), 7, StatusFailed)
		assert.ErrorIs(t, err, ErrInquiryNotFound)
	})
}

func TestGetInquiry(t *testing.T) {
	created := time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)

	t.Run("found", func(t *testing.T) {
		s, mock := newMockStorage(t)
		mock.ExpectQuery(`SELECT \* FROM inquiries WHERE reference`).
			WithArgs("ref-1").
			WillReturnRows(sqlmock.NewRows(inquiryColumns).AddRow(inquiryRow(42, "ref-1", StatusSent, created)...))

		inq, err := s.GetInquiry(context.Background(), "ref-1")
		require.NoError(t, err)
		assert.Equal(t, int64(42), inq.ID)
		assert.Equal(t, StatusSent, inq.Status)
		assert.Nil(t, inq.PreferredDate)
		assert.Equal(t, created, inq.CreatedAt)
	})

	t.Run("unknown reference", func(t *testing.T) {
		s, mock := newMockStorage(t)
		mock.ExpectQuery(`SELECT \* FROM inquiries WHERE reference`).
			WithArgs("missing").
			WillReturnRows(sqlmock.NewRows(inquiryColumns))

		_, err := s.GetInquiry(context.Background(), "missing")
		assert.ErrorIs(t, err, ErrInquiryNotFound)
	})
}

func TestListInquiries(t *testing.T) {
	s, mock := newMockStorage(t)
	since := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	created := time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT \* FROM inquiries WHERE created_at >= \$1 ORDER BY created_at DESC`).
		WithArgs(since).
		WillReturnRows(sqlmock.NewRows(inquiryColumns).
			AddRow(inquiryRow(2, "ref-2", StatusNew, created)...).
			AddRow(inquiryRow(1, "ref-1", StatusFailed, created.Add(-time.Hour))...))

	inquiries, err := s.ListInquiries(context.Background(), since)
	require.NoError(t, err)
	require.Len(t, inquiries, 2)
	assert.Equal(t, "ref-2", inquiries[0].Reference)
	assert.Equal(t, StatusFailed, inquiries[1].Status)
}

func TestInquiryStatusCounts(t *testing.T) {
	s, mock := newMockStorage(t)
	mock.ExpectQuery(`SELECT status, COUNT\(\*\) FROM inquiries GROUP BY status`).
		WillReturnRows(sqlmock.NewRows([]string{"status", "count"}).
			AddRow(StatusSent, 4).
			AddRow(StatusFailed, 1))

	counts, err := s.InquiryStatusCounts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, map[string]int{StatusSent: 4, StatusFailed: 1}, counts)
}
