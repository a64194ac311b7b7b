package user

import "time"

// User is the persisted record. Password holds the bcrypt digest, never the
// plaintext; it stays in the stored document and must not leave the service,
// which is why responses are built from View instead.
type User struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Password  string    `json:"password"`
	CreatedAt time.Time `json:"createdAt"`
}

// View is the public projection of a User: every field except the password
// digest. All handler responses use this type.
type View struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

// Public projects the user into its response view.
func (u User) Public() View {
	return View{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
	}
}
