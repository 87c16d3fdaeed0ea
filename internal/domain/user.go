package domain

const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

// User is one of the mocked storefront accounts. Accounts are seeded at
// startup; there is no registration flow.
type User struct {
	ID    string `db:"id" json:"id"`
	Email string `db:"email" json:"email"`
	Name  string `db:"name" json:"name"`
	Hash  string `db:"password_hash" json:"-"`
	Role  string `db:"role" json:"role"`
}

func (u *User) Capability() Capability {
	if u == nil {
		return Capability{}
	}
	return Capability{IsAdmin: u.Role == RoleAdmin}
}
