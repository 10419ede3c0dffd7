package types

// NewsletterSubscription records an email address on the mailing list.
// Inactive subscriptions are reactivated instead of duplicated.
type NewsletterSubscription struct {
	ID        int    `json:"id" bson:"id"`
	Email     string `json:"email" bson:"email"`
	Active    bool   `json:"active" bson:"active"`
	CreatedAt string `json:"createdAt" bson:"createdAt"`
}

type NewsletterRequest struct {
	Email string `json:"email" validate:"required,email"`
}
