package store

import (
	"github.com/easytech/webapi/internal/docstore"
	"github.com/easytech/webapi/types"
)

// ServiceRepository handles persistence for service offerings.
type ServiceRepository struct {
	records[types.Service]
}

func newServiceRepository(coll docstore.Collection, clock clockFunc) *ServiceRepository {
	return &ServiceRepository{records[types.Service]{
		coll:  coll,
		clock: clock,
		prepare: func(s *types.Service, id int, createdAt string) {
			s.ID = id
			s.CreatedAt = createdAt
			if s.Features == nil {
				s.Features = []string{}
			}
		},
	}}
}
