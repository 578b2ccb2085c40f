// internal/domain/reference/entity.go
package reference

// Lookup rows are flat {id, name} pairs; Model also carries its brand.

type Brand struct {
	ID   int64  `json:"id" db:"idcb"`
	Name string `json:"name" db:"carbrand"`
}

type Model struct {
	ID      int64  `json:"id" db:"idmodels"`
	BrandID int64  `json:"brand_id" db:"modelbrand"`
	Name    string `json:"name" db:"modelname"`
}

type EngineType struct {
	ID   int64  `json:"id" db:"idet"`
	Name string `json:"name" db:"enginetype"`
}

type BodyType struct {
	ID   int64  `json:"id" db:"idbt"`
	Name string `json:"name" db:"bodytype"`
}

type GearBox struct {
	ID   int64  `json:"id" db:"idgb"`
	Name string `json:"name" db:"gb"`
}

type DriveType struct {
	ID   int64  `json:"id" db:"idtm"`
	Name string `json:"name" db:"drivetype"`
}

type Color struct {
	ID   int64  `json:"id" db:"idc"`
	Name string `json:"name" db:"color"`
}

// Bundle is the aggregate served by /reference/all.
type Bundle struct {
	Brands      []Brand      `json:"brands"`
	EngineTypes []EngineType `json:"engine_types"`
	BodyTypes   []BodyType   `json:"body_types"`
	GearBoxes   []GearBox    `json:"gearboxes"`
	DriveTypes  []DriveType  `json:"drive_types"`
	Colors      []Color      `json:"colors"`
}
