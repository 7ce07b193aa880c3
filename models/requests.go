package models

// LoginRequest carries credentials for POST /api/auth/login.
// Username accepts either the username or the email address.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// CreateUserRequest carries registration data for POST /api/auth/register
// and POST /api/users.
type CreateUserRequest struct {
	Email           string `json:"email"`
	Password        string `json:"password"`
	FirstName       string `json:"firstName"`
	LastName        string `json:"lastName,omitempty"`
	DisplayName     string `json:"displayName,omitempty"`
	PhoneNumber     string `json:"phoneNumber,omitempty"`
	Role            string `json:"role"`
	Timezone        string `json:"timezone,omitempty"`
	Locale          string `json:"locale,omitempty"`
	Bio             string `json:"bio,omitempty"`
	Gender          string `json:"gender,omitempty"`
	Tagline         string `json:"tagline,omitempty"`
	Website         string `json:"website,omitempty"`
	CountryCodeISO3 string `json:"countryCodeIso3,omitempty"`
}

// UpdatePasswordRequest carries a password change for PUT /api/users.
type UpdatePasswordRequest struct {
	CurrentPassword string `json:"currentPassword,omitempty"`
	NewPassword     string `json:"newPassword"`
}
