package delivery

import "context"

// Repository stores delivery attempts for later auditing.
// It is write-only from the bot's point of view; nothing reads the journal back.
type Repository interface {
	Save(ctx context.Context, rec *Record) error
}
