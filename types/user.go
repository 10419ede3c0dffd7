package types

// User represents a site account.
type User struct {
	// ID is the integer identifier assigned by the store.
	ID int `json:"id" bson:"id"`

	// Username is the unique, case-sensitive login name.
	Username string `json:"username" bson:"username"`

	// Email is optional contact information.
	Email string `json:"email,omitempty" bson:"email,omitempty"`

	// PasswordHash stores the bcrypt hash of the user's password.
	// This field is never exposed in API responses.
	PasswordHash string `json:"-" bson:"passwordHash"`

	// CreatedAt is the ISO-8601 timestamp set when the account was stored.
	CreatedAt string `json:"createdAt" bson:"createdAt"`
}

// RegisterRequest is the payload accepted by POST /api/register.
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Password string `json:"password" validate:"required,min=6,max=100,maxbytes=72"`
	Email    string `json:"email" validate:"omitempty,email"`
}

// LoginRequest carries the credentials checked on POST /api/login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}
