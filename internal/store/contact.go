package store

import (
	"github.com/easytech/webapi/internal/docstore"
	"github.com/easytech/webapi/types"
)

type ContactRepository struct {
	records[types.ContactSubmission]
}

func newContactRepository(coll docstore.Collection, clock clockFunc) *ContactRepository {
	return &ContactRepository{records[types.ContactSubmission]{
		coll:  coll,
		clock: clock,
		prepare: func(c *types.ContactSubmission, id int, createdAt string) {
			c.ID = id
			c.CreatedAt = createdAt
		},
	}}
}
