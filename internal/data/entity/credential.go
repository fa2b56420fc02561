package entity

// Credential is the single admin account. Username is fixed at startup; the
// password can be changed and the new value replaces the old one entirely.
type Credential struct {
	Username string
	Password string
}
