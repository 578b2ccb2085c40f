// internal/domain/catalog/entity.go
package catalog

import "time"

// Listing is one row of the ads table with its raw foreign keys.
type Listing struct {
	ID           int64     `json:"id" db:"idads"`
	Model        int64     `json:"model" db:"model"`
	ProdYear     int       `json:"prodyear" db:"prodyear"`
	EngVol       float64   `json:"engvol" db:"engvol"`
	Price        int64     `json:"price" db:"price"`
	Mileage      int64     `json:"milage" db:"milage"`
	Active       bool      `json:"active" db:"active"`
	New          bool      `json:"new" db:"new"`
	Owner        int64     `json:"owner" db:"owner"`
	EngType      int64     `json:"engtype" db:"engtype"`
	Body         int64     `json:"body" db:"body"`
	GearBox      int64     `json:"gearbox" db:"gearbox"`
	Transmission int64     `json:"transmission" db:"transmission"` // drive type FK
	Color        int64     `json:"color" db:"color"`
	Made         int64     `json:"made" db:"made"` // brand FK
	DateAdded    time.Time `json:"date_added" db:"date_added"`
}

// ListingView is a listing with every reference resolved to its display name.
type ListingView struct {
	ID         int64     `json:"id"`
	BrandID    int64     `json:"brand_id"`
	Brand      string    `json:"brand"`
	ModelID    int64     `json:"model_id"`
	ModelName  string    `json:"model_name"`
	ProdYear   int       `json:"prodyear"`
	EngVol     float64   `json:"engvol"`
	Price      int64     `json:"price"`
	Mileage    int64     `json:"milage"`
	Active     bool      `json:"active"`
	New        bool      `json:"new"`
	Owner      int64     `json:"owner"`
	EngineType string    `json:"engine_type"`
	BodyType   string    `json:"body_type"`
	GearBox    string    `json:"gearbox"`
	DriveType  string    `json:"drive_type"`
	Color      string    `json:"color"`
	DateAdded  time.Time `json:"date_added,omitempty"`
}
