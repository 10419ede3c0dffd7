package types

type Testimonial struct {
	ID        int    `json:"id" bson:"id"`
	Name      string `json:"name" bson:"name"`
	Position  string `json:"position" bson:"position"`
	Content   string `json:"content" bson:"content"`
	Rating    int    `json:"rating" bson:"rating"`
	Initials  string `json:"initials" bson:"initials"`
	CreatedAt string `json:"createdAt" bson:"createdAt"`
}

type CreateTestimonialRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Position string `json:"position" validate:"required,max=100"`
	Content  string `json:"content" validate:"required,min=10"`
	Rating   int    `json:"rating" validate:"min=1,max=5"`
	Initials string `json:"initials" validate:"required,max=5"`
}

func (r CreateTestimonialRequest) Testimonial() Testimonial {
	return Testimonial{
		Name:     r.Name,
		Position: r.Position,
		Content:  r.Content,
		Rating:   r.Rating,
		Initials: r.Initials,
	}
}
