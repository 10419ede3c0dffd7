package store

import (
	"github.com/easytech/webapi/internal/docstore"
	"github.com/easytech/webapi/types"
)

type TestimonialRepository struct {
	records[types.Testimonial]
}

func newTestimonialRepository(coll docstore.Collection, clock clockFunc) *TestimonialRepository {
	return &TestimonialRepository{records[types.Testimonial]{
		coll:  coll,
		clock: clock,
		prepare: func(t *types.Testimonial, id int, createdAt string) {
			t.ID = id
			t.CreatedAt = createdAt
		},
	}}
}
