package domain

// User is a profile record persisted at users/{id} in the document store.
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Identity is an authenticated principal as returned by the identity
// service. The same shape is embedded in tasks as the creator snapshot.
type Identity struct {
	UID         string `json:"uid"`
	DisplayName string `json:"displayName"`
	Email       string `json:"email"`
}

// Profile converts an identity into the profile record written at sign-up.
func (i Identity) Profile() User {
	return User{
		ID:       i.UID,
		Username: i.DisplayName,
		Email:    i.Email,
	}
}
