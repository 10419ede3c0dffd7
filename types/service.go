package types

// Service is an offering shown on the public site.
type Service struct {
	ID          int      `json:"id" bson:"id"`
	Title       string   `json:"title" bson:"title"`
	Description string   `json:"description" bson:"description"`
	PriceFrom   float64  `json:"priceFrom" bson:"priceFrom"`
	PriceUnit   string   `json:"priceUnit" bson:"priceUnit"`
	ImageURL    string   `json:"imageUrl" bson:"imageUrl"`
	Features    []string `json:"features" bson:"features"`
	CreatedAt   string   `json:"createdAt" bson:"createdAt"`
}

type CreateServiceRequest struct {
	Title       string   `json:"title" validate:"required,min=3,max=100"`
	Description string   `json:"description" validate:"required,min=10"`
	PriceFrom   float64  `json:"priceFrom" validate:"gt=0"`
	PriceUnit   string   `json:"priceUnit" validate:"required"`
	ImageURL    string   `json:"imageUrl" validate:"required,url"`
	Features    []string `json:"features"`
}

func (r CreateServiceRequest) Service() Service {
	return Service{
		Title:       r.Title,
		Description: r.Description,
		PriceFrom:   r.PriceFrom,
		PriceUnit:   r.PriceUnit,
		ImageURL:    r.ImageURL,
		Features:    r.Features,
	}
}
