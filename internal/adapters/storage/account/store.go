package account

import (
	"context"

	domain "gymdesk/internal/domain/account"
)

// Store persists front-desk logins. Accounts are never removed through the
// desk, so there is no Delete.
type Store interface {
	GetByID(ctx context.Context, id string) (domain.Account, error)
	GetByUsername(ctx context.Context, username string) (domain.Account, error)
	Save(ctx context.Context, value domain.Account) error
	Count(ctx context.Context) (int, error)
}
