package sink

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

const schema = `
CREATE TABLE IF NOT EXISTS purchase_events (
	id BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
	currency_code TEXT NOT NULL,
	price NUMERIC NOT NULL,
	price_formatted TEXT NOT NULL,
	kind TEXT NOT NULL,
	is_sandbox BOOLEAN NOT NULL,
	app_name TEXT NOT NULL,
	store_front TEXT NOT NULL,
	is_trial BOOLEAN NOT NULL,
	trial_period TEXT,
	received_at TIMESTAMPTZ NOT NULL
);
CREATE TABLE IF NOT EXISTS download_events (
	id BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
	user_id TEXT NOT NULL,
	app_name TEXT NOT NULL,
	received_at TIMESTAMPTZ NOT NULL
);`

// PostgresStore persists received events in PostgreSQL.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore connects to databaseURL and ensures the schema exists.
func NewPostgresStore(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	if _, err := pool.Exec(ctx, schema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}
	return &PostgresStore{pool: pool}, nil
}

func (s *PostgresStore) SavePurchase(ctx context.Context, record PurchaseRecord) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO purchase_events (
			currency_code, price, price_formatted, kind, is_sandbox,
			app_name, store_front, is_trial, trial_period, received_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		record.CurrencyCode, string(record.Price), record.PriceFormatted,
		record.Kind, record.IsSandbox, record.AppName, record.StoreFront,
		record.IsTrial, record.TrialPeriod, record.ReceivedAt,
	)
	if err != nil {
		return fmt.Errorf("save purchase event: %w", err)
	}
	return nil
}

func (s *PostgresStore) SaveDownload(ctx context.Context, record DownloadRecord) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO download_events (user_id, app_name, received_at)
		VALUES ($1, $2, $3)`,
		record.UserID, record.AppName, record.ReceivedAt,
	)
	if err != nil {
		return fmt.Errorf("save download event: %w", err)
	}
	return nil
}

func (s *PostgresStore) Purchases(ctx context.Context) ([]PurchaseRecord, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, currency_code, price::TEXT, price_formatted, kind, is_sandbox,
			app_name, store_front, is_trial, trial_period, received_at
		FROM purchase_events ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list purchase events: %w", err)
	}
	defer rows.Close()

	var out []PurchaseRecord
	for rows.Next() {
		var r PurchaseRecord
		var price string
		if err := rows.Scan(&r.ID, &r.CurrencyCode, &price, &r.PriceFormatted,
			&r.Kind, &r.IsSandbox, &r.AppName, &r.StoreFront, &r.IsTrial,
			&r.TrialPeriod, &r.ReceivedAt); err != nil {
			return nil, fmt.Errorf("scan purchase event: %w", err)
		}
		r.Price = json.Number(price)
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *PostgresStore) Downloads(ctx context.Context) ([]DownloadRecord, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, user_id, app_name, received_at
		FROM download_events ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list download events: %w", err)
	}
	defer rows.Close()

	var out []DownloadRecord
	for rows.Next() {
		var r DownloadRecord
		if err := rows.Scan(&r.ID, &r.UserID, &r.AppName, &r.ReceivedAt); err != nil {
			return nil, fmt.Errorf("scan download event: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *PostgresStore) Close() {
	s.pool.Close()
}
