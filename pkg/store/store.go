// Package store keeps the off-chain intent records. The store is advisory
// metadata only; the escrow contract remains the authority on funds, and
// nothing here gates a claim.
package store

import (
	"context"
	"errors"

	"github.com/cashlink-hq/cashlinkd/pkg/models"
)

var (
	// ErrNotFound indicates the store has no record for the intent id
	ErrNotFound = errors.New("intent record not found")

	// ErrAlreadyExists indicates a record with the same id was created before
	ErrAlreadyExists = errors.New("intent record already exists")
)

// Store persists intent records. MarkClaimed is idempotent and marking an
// absent id is a no-op; status only ever moves pending to claimed.
type Store interface {
	SaveIntent(ctx context.Context, intent models.Intent) error
	GetIntent(ctx context.Context, id string) (models.Intent, error)
	MarkClaimed(ctx context.Context, id string) error
	Close() error
}
