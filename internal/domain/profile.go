package domain

import "time"

// Profile holds optional biographical data, one record per user.
type Profile struct {
	ID        string    `json:"id" db:"id"`
	UserID    string    `json:"user_id" db:"user_id"`
	Bio       string    `json:"bio" db:"bio"`
	Location  string    `json:"location" db:"location"`
	BirthDate *Date     `json:"birth_date" db:"birth_date"`
	Avatar    *string   `json:"avatar" db:"avatar"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
