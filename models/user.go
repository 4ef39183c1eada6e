package models

// Image describes a stored image: its public URL and pixel dimensions.
type Image struct {
	Image  string `dynamodbav:"image" json:"image"`
	Width  int    `dynamodbav:"width" json:"width"`
	Height int    `dynamodbav:"height" json:"height"`
}

// User defines the structure for registered accounts. Password holds the
// PBKDF2 hash, never the plaintext; Salt is the per-user salt it was
// derived with.
type User struct {
	Username  string `dynamodbav:"username" json:"username"`
	Name      string `dynamodbav:"name" json:"name"`
	Email     string `dynamodbav:"email" json:"email"`
	Profile   Image  `dynamodbav:"profile" json:"profile"`
	Password  string `dynamodbav:"password" json:"-"`
	Salt      string `dynamodbav:"salt" json:"-"`
	CreatedAt int64  `dynamodbav:"createdAt" json:"createdAt"`
}

// UserUpdate enumerates the fields a profile edit may change. Nil fields
// are left untouched; credentials are never updatable through this path.
type UserUpdate struct {
	Name    *string `json:"name,omitempty"`
	Email   *string `json:"email,omitempty"`
	Profile *Image  `json:"profile,omitempty"`
}
