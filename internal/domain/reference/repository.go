// internal/domain/reference/repository.go
package reference

import "context"

// Repository reads the lookup tables, each ordered by name ascending.
type Repository interface {
	Brands(ctx context.Context) ([]Brand, error)
	ModelsByBrand(ctx context.Context, brandID int64) ([]Model, error)
	EngineTypes(ctx context.Context) ([]EngineType, error)
	BodyTypes(ctx context.Context) ([]BodyType, error)
	GearBoxes(ctx context.Context) ([]GearBox, error)
	DriveTypes(ctx context.Context) ([]DriveType, error)
	Colors(ctx context.Context) ([]Color, error)
}
