package models

import "time"

// Auth providers. Only ProviderCredentials has a working flow; ProviderGoogle
// exists in the schema for accounts created by a federated sign-in.
const (
	ProviderCredentials = "credentials"
	ProviderGoogle      = "google"
)

// User represents an account entity used for authentication and authorization.
// Sensitive fields must never be exposed outside trusted boundaries.
type User struct {
	// ID is the unique identifier of the user (UUID).
	ID string `json:"id"`

	// Email is the unique email address. Optional: a federated account may
	// carry only a username.
	Email string `json:"email,omitempty"`

	// Username is the unique, server-generated handle (see username
	// generation in the auth service).
	Username string `json:"username,omitempty"`

	// PasswordHash is the bcrypt hash of the user's password. Present iff
	// Provider is ProviderCredentials. Never serialized.
	PasswordHash string `json:"-"`

	FirstName       string `json:"firstName,omitempty"`
	LastName        string `json:"lastName,omitempty"`
	DisplayName     string `json:"displayName,omitempty"`
	PhoneNumber     string `json:"phoneNumber,omitempty"`
	ProfileImageURL string `json:"profileImageUrl,omitempty"`

	// Provider records how the identity was established.
	Provider   string `json:"provider,omitempty"`
	ProviderID string `json:"-"`

	IsEmailVerified bool `json:"isEmailVerified"`
	IsPhoneVerified bool `json:"isPhoneVerified"`

	// IsActive gates every authenticated request: an inactive user cannot
	// log in and their live sessions stop passing the access guard.
	IsActive bool `json:"isActive"`

	Timezone        string     `json:"timezone,omitempty"`
	Locale          string     `json:"locale,omitempty"`
	Bio             string     `json:"bio,omitempty"`
	DOB             *time.Time `json:"dob,omitempty"`
	Gender          string     `json:"gender,omitempty"`
	Tagline         string     `json:"tagline,omitempty"`
	Website         string     `json:"website,omitempty"`
	CountryCodeISO3 string     `json:"countryCodeIso3,omitempty"`

	// Roles assigned to the user via the user_roles join table.
	Roles []Role `json:"roles,omitempty"`

	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}

// Public returns the outward-facing projection of the user: identical to the
// record but with credential material withheld.
func (u User) Public() User {
	u.PasswordHash = ""
	u.ProviderID = ""
	return u
}

// HasRole reports whether the user holds a role with the given name.
func (u User) HasRole(name string) bool {
	for _, r := range u.Roles {
		if r.Name == name {
			return true
		}
	}
	return false
}
