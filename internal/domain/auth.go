package domain

type TokenRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterRequest struct {
	Name              string   `json:"name"`
	Email             string   `json:"email"`
	Password          string   `json:"password"`
	ConfirmPassword   string   `json:"confirm_password"`
	Age               *int     `json:"age"`
	Height            *float64 `json:"height"`
	Weight            *float64 `json:"weight"`
	MedicalConditions []string `json:"medical_conditions"`
}

type TokenResponse struct {
	Token string       `json:"token"`
	User  *UserProfile `json:"user,omitempty"`
}
