package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"bluesphere-studio/internal/config"
	"bluesphere-studio/internal/storage/migrations"

	"github.com/cenkalti/backoff/v4"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
)

const (
	StatusNew    = "new"
	StatusSent   = "sent"
	StatusFailed = "failed"
)

var ErrInquiryNotFound = errors.New("inquiry not found")

type PostgresStorage struct {
	db     *sqlx.DB
	logger *zap.Logger
}

// Inquiry is a contact form submission.
type Inquiry struct {
	ID              int64      `db:"id" json:"id"`
	Reference       string     `db:"reference" json:"reference"`
	Name            string     `db:"name" json:"name"`
	Email           string     `db:"email" json:"email"`
	Phone           string     `db:"phone" json:"phone"`
	ServiceInterest string     `db:"service_interest" json:"service_interest"`
	PreferredDate   *time.Time `db:"preferred_date" json:"preferred_date,omitempty"`
	Message         string     `db:"message" json:"message"`
	Status          string     `db:"status" json:"status"`
	CreatedAt       time.Time  `db:"created_at" json:"created_at"`
}

func NewPostgresStorage(ctx context.Context, cfg config.DatabaseConfig, logger *zap.Logger) (*PostgresStorage, error) {
	const operation = "storage.NewPostgresStorage"

	var db *sqlx.DB
	var err error

	retryPolicy := backoff.NewExponentialBackOff()
	retryPolicy.MaxElapsedTime = 2 * time.Minute
	retryPolicy.MaxInterval = 15 * time.Second

	logger.Info("Connecting to PostgreSQL...",
		zap.String("host", cfg.Host),
		zap.Int("port", cfg.Port),
		zap.String("database", cfg.Name))

	err = backoff.RetryNotify(
		func() error {
			db, err = sqlx.ConnectContext(ctx, "postgres", cfg.DSN())
			if err != nil {
				return fmt.Errorf("connect: %w", err)
			}

			if err = db.PingContext(ctx); err != nil {
				_ = db.Close()
				return fmt.Errorf("ping: %w", err)
			}
			return nil
		},
		backoff.WithContext(retryPolicy, ctx),
		func(err error, duration time.Duration) {
			logger.Warn("PostgreSQL connection failed, retrying...",
				zap.Error(err),
				zap.Duration("next_attempt_in", duration))
		},
	)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to connect after retries: %w", operation, err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	db.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	logger.Info("Successfully connected to PostgreSQL")
	return &PostgresStorage{
		db:     db,
		logger: logger,
	}, nil
}

func (s *PostgresStorage) Migrate(ctx context.Context) error {
	return migrations.Up(ctx, s.db.DB, s.logger)
}

func (s *PostgresStorage) SaveInquiry(ctx context.Context, inq Inquiry) (int64, error) {
	const query = `
        INSERT INTO inquiries (
            reference, name, email, phone, service_interest,
            preferred_date, message, status, created_at
        ) VALUES (
            :reference, :name, :email, :phone, :service_interest,
            :preferred_date, :message, :status, :created_at
        )
        RETURNING id
    `

	rows, err := s.db.NamedQueryContext(ctx, query, inq)
	if err != nil {
		return 0, fmt.Errorf("failed to save inquiry: %w", err)
	}
	defer rows.Close()

	var id int64
	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return 0, fmt.Errorf("failed to save inquiry: %w", err)
		}
		return 0, fmt.Errorf("failed to save inquiry: no id returned")
	}
	if err := rows.Scan(&id); err != nil {
		return 0, fmt.Errorf("failed to scan inquiry id: %w", err)
	}

	return id, nil
}

func (s *PostgresStorage) UpdateInquiryStatus(ctx context.Context, id int64, status string) error {
	const query = `UPDATE inquiries SET status = $1 WHERE id = $2`

	res, err := s.db.ExecContext(ctx, query, status, id)
	if err != nil {
		return fmt.Errorf("failed to update inquiry status: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to update inquiry status: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("inquiry %d: %w", id, ErrInquiryNotFound)
	}
	return nil
}

func (s *PostgresStorage) GetInquiry(ctx context.Context, reference string) (*Inquiry, error) {
	const query = `SELECT * FROM inquiries WHERE reference = $1`

	var inq Inquiry
	if err := s.db.GetContext(ctx, &inq, query, reference); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("inquiry %s: %w", reference, ErrInquiryNotFound)
		}
		return nil, fmt.Errorf("failed to get inquiry: %w", err)
	}
	return &inq, nil
}

// ListInquiries returns inquiries created at or after since, newest first.
func (s *PostgresStorage) ListInquiries(ctx context.Context, since time.Time) ([]Inquiry, error) {
	const query = `SELECT * FROM inquiries WHERE created_at >= $1 ORDER BY created_at DESC`

	var inquiries []Inquiry
	if err := s.db.SelectContext(ctx, &inquiries, query, since); err != nil {
		return nil, fmt.Errorf("failed to list inquiries: %w", err)
	}
	return inquiries, nil
}

func (s *PostgresStorage) InquiryStatusCounts(ctx context.Context) (map[string]int, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT status, COUNT(*) FROM inquiries GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("failed to get status counts: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("failed to scan status count: %w", err)
		}
		counts[status] = count
	}
	return counts, rows.Err()
}

func (s *PostgresStorage) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *PostgresStorage) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}
