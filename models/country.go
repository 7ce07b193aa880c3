package models

import "time"

// Country is static reference data seeded by migration.
type Country struct {
	Name      string     `json:"name"`
	Code      string     `json:"code"`
	CodeISO3  string     `json:"codeIso3"`
	CreatedAt time.Time  `json:"-"`
	UpdatedAt *time.Time `json:"-"`
}

// TableName returns the name of the database table
// associated with the Country model.
func (c Country) TableName() string {
	return "countries"
}
