package models

import "time"

// ColumnInfo describes one column of a table as reported by the store.
type ColumnInfo struct {
	Name         string  `json:"name"`
	Type         string  `json:"type"`
	NotNull      bool    `json:"notnull"`
	DefaultValue *string `json:"default_value"`
	PrimaryKey   bool    `json:"primary_key"`
}

// TableSchema is the full description of a single table: ordered column
// metadata plus a bounded sample of rows. Recomputed per request, never cached.
type TableSchema struct {
	Name       string                   `json:"name"`
	Columns    []ColumnInfo             `json:"columns"`
	SampleData []map[string]interface{} `json:"sample_data"`
}

// TableListResponse is the response body for the table listing endpoint.
type TableListResponse struct {
	Tables []string `json:"tables"`
}

// User is the public profile of a registered account.
type User struct {
	UserID    string    `json:"user_id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name"`
	CreatedAt time.Time `json:"created_at"`
	IsActive  bool      `json:"is_active"`
}

// UserRecord is a stored account including the password hash. Never leaves
// the auth layer.
type UserRecord struct {
	User
	HashedPassword string
}

// SignupRequest is the request body for account registration.
type SignupRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
	Email    string `json:"email,omitempty"`
}

// SignupResponse confirms account creation.
type SignupResponse struct {
	Message string `json:"message"`
	User    User   `json:"user"`
}

// LoginRequest is the request body for authentication.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse carries the issued bearer token.
type LoginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	Username    string `json:"username"`
	FullName    string `json:"full_name"`
}

// HealthResponse is the health check response body.
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Version   string `json:"version"`
}
