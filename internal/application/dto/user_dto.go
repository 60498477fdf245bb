package dto

// LoginRequest entrada para POST /api/auth/login/.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// TokenPair respuesta del login.
type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// RefreshRequest entrada para /api/auth/refresh/ y /api/auth/logout/.
type RefreshRequest struct {
	Refresh string `json:"refresh"`
}

// AccessResponse respuesta del refresh: solo el nuevo access token.
type AccessResponse struct {
	Access string `json:"access"`
}
