package types

// ContactSubmission is a message left through the contact form. The API
// never reads submissions back.
type ContactSubmission struct {
	ID        int    `json:"id" bson:"id"`
	Name      string `json:"name" bson:"name"`
	Email     string `json:"email" bson:"email"`
	Phone     string `json:"phone,omitempty" bson:"phone,omitempty"`
	Service   string `json:"service" bson:"service"`
	Message   string `json:"message" bson:"message"`
	CreatedAt string `json:"createdAt" bson:"createdAt"`
}

type ContactRequest struct {
	Name    string `json:"name" validate:"required,min=2,max=100"`
	Email   string `json:"email" validate:"required,email"`
	Phone   string `json:"phone"`
	Service string `json:"service" validate:"required"`
	Message string `json:"message" validate:"required,min=10"`
}

func (r ContactRequest) Submission() ContactSubmission {
	return ContactSubmission{
		Name:    r.Name,
		Email:   r.Email,
		Phone:   r.Phone,
		Service: r.Service,
		Message: r.Message,
	}
}
