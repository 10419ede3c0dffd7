package store

import (
	"context"

	"github.com/easytech/webapi/internal/docstore"
	"github.com/easytech/webapi/types"
)

// UserRepository handles persistence for users.
type UserRepository struct {
	records[types.User]
}

func newUserRepository(coll docstore.Collection, clock clockFunc) *UserRepository {
	return &UserRepository{records[types.User]{
		coll:  coll,
		clock: clock,
		prepare: func(u *types.User, id int, createdAt string) {
			u.ID = id
			u.CreatedAt = createdAt
		},
	}}
}

// GetByUsername looks a user up by exact, case-sensitive username.
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (types.User, error) {
	return r.findOne(ctx, docstore.Filter{"username": username})
}
