package models

// User is the identity supplied by the external identity provider.
// It is never persisted; workspaces only store the owner ID.
type User struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	ImageURL string `json:"imageUrl,omitempty"`
}

// DisplayName falls back to the email when the provider has no name
func (u *User) DisplayName() string {
	if u == nil {
		return ""
	}
	if u.Name != "" {
		return u.Name
	}
	return u.Email
}
