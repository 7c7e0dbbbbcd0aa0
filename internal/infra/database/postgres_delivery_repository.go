package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"homework_status_bot/internal/domain/delivery"

	"github.com/lib/pq"
)

const createDeliveryJournal = `CREATE TABLE IF NOT EXISTS delivery_journal (
	id         BIGSERIAL PRIMARY KEY,
	chat_id    TEXT        NOT NULL,
	message    TEXT        NOT NULL,
	delivered  BOOLEAN     NOT NULL,
	error      TEXT,
	sent_at    TIMESTAMPTZ NOT NULL
)`

type PostgresDeliveryRepository struct {
	db *sql.DB
}

func NewPostgresDeliveryRepository(db *sql.DB) *PostgresDeliveryRepository {
	return &PostgresDeliveryRepository{db: db}
}

// EnsureSchema creates the journal table when it does not exist yet.
func (r *PostgresDeliveryRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createDeliveryJournal); err != nil {
		return fmt.Errorf("error creating delivery journal table: %w", wrapPQ(err))
	}
	return nil
}

func (r *PostgresDeliveryRepository) Save(ctx context.Context, rec *delivery.Record) error {
	query := `INSERT INTO delivery_journal (chat_id, message, delivered, error, sent_at)
               VALUES ($1, $2, $3, $4, $5)
               RETURNING id`
	errText := sql.NullString{String: rec.Error, Valid: rec.Error != ""}
	err := r.db.QueryRowContext(ctx, query, rec.ChatID, rec.Message, rec.Delivered, errText, rec.SentAt).Scan(&rec.ID)
	if err != nil {
		return fmt.Errorf("error saving delivery record: %w", wrapPQ(err))
	}
	return nil
}

// wrapPQ adds the symbolic Postgres error code, e.g. "undefined_table", to driver errors.
func wrapPQ(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return fmt.Errorf("%s: %w", pqErr.Code.Name(), err)
	}
	return err
}
