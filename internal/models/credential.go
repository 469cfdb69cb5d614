package models

// Credential is a single named login kept in a caller's vault.
type Credential struct {
	Name     string `json:"name"`
	Username string `json:"username"`
	Password string `json:"password"`
	Note     string `json:"note"`
}
