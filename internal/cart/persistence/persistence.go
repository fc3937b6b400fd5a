package persistence

import (
	"context"
	"errors"

	"github.com/Deneth0077/CSH-MainFront/internal/domain"
)

// CartPersister stores the single cart record so it survives restarts.
type CartPersister interface {
	Load(ctx context.Context) (domain.CartState, error)
	Save(ctx context.Context, state domain.CartState) error
}

// ErrNotFound means no cart has been persisted yet.
var ErrNotFound = errors.New("no persisted cart")
