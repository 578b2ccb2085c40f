// internal/repository/sqldb/reference_repo.go
package sqldb

import (
	"context"
	"fmt"

	"carmarket-service/internal/db"
	"carmarket-service/internal/domain/reference"
)

type ReferenceRepository struct {
	db db.Executor
}

func NewReferenceRepository(exec db.Executor) *ReferenceRepository {
	return &ReferenceRepository{db: exec}
}

// lookup reads a two-column {id, name} table ordered by name.
func lookup[T any](ctx context.Context, exec db.Executor, table, query string, args []any, scan func(db.Rows) (T, error)) ([]T, error) {
	rows, err := exec.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", table, err)
	}
	defer rows.Close()

	out := make([]T, 0)
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan %s: %w", table, err)
		}
		out = append(out, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate %s: %w", table, err)
	}
	return out, nil
}

func (r *ReferenceRepository) Brands(ctx context.Context) ([]reference.Brand, error) {
	return lookup(ctx, r.db, "carbrands", `SELECT idcb, carbrand FROM carbrands ORDER BY carbrand ASC`, nil,
		func(rows db.Rows) (b reference.Brand, err error) {
			err = rows.Scan(&b.ID, &b.Name)
			return
		})
}

// ModelsByBrand yields an empty slice for unknown brands.
func (r *ReferenceRepository) ModelsByBrand(ctx context.Context, brandID int64) ([]reference.Model, error) {
	return lookup(ctx, r.db, "models",
		`SELECT idmodels, modelbrand, modelname FROM models WHERE modelbrand = ? ORDER BY modelname ASC`,
		[]any{brandID},
		func(rows db.Rows) (m reference.Model, err error) {
			err = rows.Scan(&m.ID, &m.BrandID, &m.Name)
			return
		})
}

func (r *ReferenceRepository) EngineTypes(ctx context.Context) ([]reference.EngineType, error) {
	return lookup(ctx, r.db, "enginetypes", `SELECT idet, enginetype FROM enginetypes ORDER BY enginetype ASC`, nil,
		func(rows db.Rows) (e reference.EngineType, err error) {
			err = rows.Scan(&e.ID, &e.Name)
			return
		})
}

func (r *ReferenceRepository) BodyTypes(ctx context.Context) ([]reference.BodyType, error) {
	return lookup(ctx, r.db, "bodytypes", `SELECT idbt, bodytype FROM bodytypes ORDER BY bodytype ASC`, nil,
		func(rows db.Rows) (b reference.BodyType, err error) {
			err = rows.Scan(&b.ID, &b.Name)
			return
		})
}

func (r *ReferenceRepository) GearBoxes(ctx context.Context) ([]reference.GearBox, error) {
	return lookup(ctx, r.db, "gearboxes", `SELECT idgb, gb FROM gearboxes ORDER BY gb ASC`, nil,
		func(rows db.Rows) (g reference.GearBox, err error) {
			err = rows.Scan(&g.ID, &g.Name)
			return
		})
}

func (r *ReferenceRepository) DriveTypes(ctx context.Context) ([]reference.DriveType, error) {
	return lookup(ctx, r.db, "transmissions", `SELECT idtm, drivetype FROM transmissions ORDER BY drivetype ASC`, nil,
		func(rows db.Rows) (d reference.DriveType, err error) {
			err = rows.Scan(&d.ID, &d.Name)
			return
		})
}

func (r *ReferenceRepository) Colors(ctx context.Context) ([]reference.Color, error) {
	return lookup(ctx, r.db, "colors", `SELECT idc, color FROM colors ORDER BY color ASC`, nil,
		func(rows db.Rows) (c reference.Color, err error) {
			err = rows.Scan(&c.ID, &c.Name)
			return
		})
}
