package pgadmin

import "context"

// Admin manages the coordinator's role and database on the local instance.
// Existence checks are read-only so callers can use them as idempotency
// guards before the corresponding create.
type Admin interface {
	RoleExists(ctx context.Context, name string) (bool, error)
	DatabaseExists(ctx context.Context, name string) (bool, error)
	CreateRole(ctx context.Context, name, password string) error
	CreateDatabase(ctx context.Context, name, owner string) error
	Close(ctx context.Context) error
}
