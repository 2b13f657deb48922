package models

// User is a Timesketch account. Admin grants access to the management
// endpoints, Active gates sign-in.
type User struct {
	ID           int    `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"` // don't expose hash
	Admin        bool   `json:"admin"`
	Active       bool   `json:"active"`
}

// Group is a named collection of users used for shared sketch access.
type Group struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}
