package domain

import "time"

// User is a forum member. Identity is asserted by username only; there is no
// credential attached to the record.
type User struct {
	// ID is the unique identifier of the user.
	ID UserID `json:"id"`
	// Username is globally unique and immutable after registration.
	Username string `json:"username"`
	// FullName is the display name.
	FullName string `json:"fullName"`
	// Image is an optional avatar URL; empty means none.
	Image string `json:"image,omitempty"`
	// LastLogin is stamped on register and on every successful login.
	LastLogin time.Time `json:"lastLogin"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Profile is the public view of a user returned by auth operations.
type Profile struct {
	ID        UserID    `json:"id"`
	Username  string    `json:"username"`
	FullName  string    `json:"fullName"`
	Image     string    `json:"image,omitempty"`
	LastLogin time.Time `json:"lastLogin"`
}

// Profile projects the user onto its public view.
func (u User) Profile() Profile {
	return Profile{
		ID:        u.ID,
		Username:  u.Username,
		FullName:  u.FullName,
		Image:     u.Image,
		LastLogin: u.LastLogin,
	}
}

// AuthorSummary is the author block nested into post and comment read models.
type AuthorSummary struct {
	ID       UserID `json:"id"`
	Username string `json:"username"`
	FullName string `json:"fullName"`
	Image    string `json:"image,omitempty"`
}
