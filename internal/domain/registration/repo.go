package registration

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrEmailTaken is returned when an account with the same email exists.
var ErrEmailTaken = errors.New("email already exists")

type AccountRepository interface {
	Create(ctx context.Context, a *Account) error
	GetByID(ctx context.Context, id uuid.UUID) (*Account, error)
	GetByEmail(ctx context.Context, email string) (*Account, error)
	List(ctx context.Context, limit, offset int) ([]*Account, int, error)
	ListByRole(ctx context.Context, role Role, limit, offset int) ([]*Account, int, error)
}
