package domain

const RoleAdmin = "admin"

// User is the authenticated admin identity carried by a session token.
type User struct {
	Email string `json:"email"`
	Role  string `json:"role"`
}

// AdminCredential is the single configured admin identity. Exactly one of
// Password or PasswordHash is expected to be set.
type AdminCredential struct {
	Email        string
	Password     string
	PasswordHash string
}

// Configured reports whether the credential can be used for authentication.
func (c AdminCredential) Configured() bool {
	return c.Email != "" && (c.Password != "" || c.PasswordHash != "")
}
