package models

// LoginRequest is the credentials payload the terminal forwards to the store
// backend. Credentials are never stored locally.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResult is the backend's answer to POST /login. Role is either "admin"
// or "cashier".
type LoginResult struct {
	Success bool   `json:"success"`
	Role    string `json:"role,omitempty"`
	Message string `json:"message,omitempty"`
}

// LoginSession is an established terminal session: the locally minted token
// plus the identity it encodes.
type LoginSession struct {
	Token     string `json:"token"`
	Role      string `json:"role"`
	Username  string `json:"username"`
	SessionID string `json:"session_id"`
}
