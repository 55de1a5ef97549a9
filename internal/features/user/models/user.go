package models

// User is the display projection served by the identity directory. The
// engine only reads it to enrich winner lists; profile management lives
// elsewhere.
type User struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	AvatarURL string `json:"avatar_url,omitempty"`
}
