package entity

import "time"

// Location is a physical or virtual venue. Capacity is the upper bound for
// the capacity of any event held there.
type Location struct {
	ID          int64     `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Address     string    `json:"address" db:"address"`
	City        string    `json:"city" db:"city"`
	State       string    `json:"state" db:"state"`
	Country     string    `json:"country" db:"country"`
	ZipCode     string    `json:"zip_code" db:"zip_code"`
	Capacity    int       `json:"capacity" db:"capacity"`
	Description string    `json:"description" db:"description"`
	IsActive    bool      `json:"is_active" db:"is_active"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}
