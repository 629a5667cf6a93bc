package model

// Admin is the single privileged identity allowed to manage feedback.
type Admin struct {
	ID           string `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"`
	CreatedAt    string `json:"created_at"`
}

// AdminLoginRequest is the login payload.
type AdminLoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AdminLoginResponse is returned on a successful login.
type AdminLoginResponse struct {
	Token string    `json:"token"`
	User  AdminUser `json:"user"`
}

// AdminUser is the principal as exposed to the dashboard.
type AdminUser struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}
