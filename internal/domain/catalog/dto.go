// internal/domain/catalog/dto.go
package catalog

import (
	"net/url"
	"strconv"
	"strings"

	xerrors "carmarket-service/internal/pkg/errors"
)

// Filter holds the optional catalog criteria. A nil field imposes no constraint.
type Filter struct {
	Brand      *int64 `json:"brand,omitempty"`
	Model      *int64 `json:"model,omitempty"`
	PriceFrom  *int64 `json:"priceFrom,omitempty"`
	PriceTo    *int64 `json:"priceTo,omitempty"`
	YearFrom   *int64 `json:"yearFrom,omitempty"`
	YearTo     *int64 `json:"yearTo,omitempty"`
	EngineType *int64 `json:"engineType,omitempty"`
	BodyType   *int64 `json:"bodyType,omitempty"`
	GearBox    *int64 `json:"transmission,omitempty"`
	DriveType  *int64 `json:"driveType,omitempty"`
}

// filterParams lists the query parameter names in a fixed order.
var filterParams = []string{
	"brand", "model", "priceFrom", "priceTo", "yearFrom", "yearTo",
	"engineType", "bodyType", "transmission", "driveType",
}

func (f *Filter) field(name string) **int64 {
	switch name {
	case "brand":
		return &f.Brand
	case "model":
		return &f.Model
	case "priceFrom":
		return &f.PriceFrom
	case "priceTo":
		return &f.PriceTo
	case "yearFrom":
		return &f.YearFrom
	case "yearTo":
		return &f.YearTo
	case "engineType":
		return &f.EngineType
	case "bodyType":
		return &f.BodyType
	case "transmission":
		return &f.GearBox
	case "driveType":
		return &f.DriveType
	}
	return nil
}

// ParseFilter reads the catalog query parameters. Empty values count as absent;
// anything else must be an integer.
func ParseFilter(q url.Values) (Filter, error) {
	var f Filter
	for _, name := range filterParams {
		raw := strings.TrimSpace(q.Get(name))
		if raw == "" {
			continue
		}
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return Filter{}, xerrors.Invalid("%s must be an integer", name)
		}
		*f.field(name) = &v
	}
	return f, nil
}

// IsEmpty reports whether no criterion is set.
func (f Filter) IsEmpty() bool {
	for _, name := range filterParams {
		if *f.field(name) != nil {
			return false
		}
	}
	return true
}

// QueryString rebuilds the catalog query string for the set criteria.
func (f Filter) QueryString() string {
	q := url.Values{}
	for _, name := range filterParams {
		if v := *f.field(name); v != nil {
			q.Set(name, strconv.FormatInt(*v, 10))
		}
	}
	return q.Encode()
}

// CreateListingRequest is the body of POST /cars. Pointers distinguish
// missing fields from zero values. Owner is not bound as required because it
// defaults to the caller.
type CreateListingRequest struct {
	Model        *int64   `json:"model" binding:"required"`
	ProdYear     *int     `json:"prodyear" binding:"required"`
	EngVol       *float64 `json:"engvol" binding:"required"`
	Price        *int64   `json:"price" binding:"required"`
	Mileage      *int64   `json:"milage" binding:"required"`
	Owner        *int64   `json:"owner"`
	EngType      *int64   `json:"engtype" binding:"required"`
	Body         *int64   `json:"body" binding:"required"`
	GearBox      *int64   `json:"gearbox" binding:"required"`
	Transmission *int64   `json:"transmission" binding:"required"`
	Color        *int64   `json:"color" binding:"required"`
	Made         *int64   `json:"made" binding:"required"`
	Active       *bool    `json:"active,omitempty"`
	New          *bool    `json:"new,omitempty"`
}

// Validate returns an invalid-input error naming the first missing field.
// Owner is checked last, after the caller default has had its chance.
func (r *CreateListingRequest) Validate() error {
	required := []struct {
		name    string
		present bool
	}{
		{"model", r.Model != nil},
		{"prodyear", r.ProdYear != nil},
		{"engvol", r.EngVol != nil},
		{"price", r.Price != nil},
		{"milage", r.Mileage != nil},
		{"engtype", r.EngType != nil},
		{"body", r.Body != nil},
		{"gearbox", r.GearBox != nil},
		{"transmission", r.Transmission != nil},
		{"color", r.Color != nil},
		{"made", r.Made != nil},
		{"owner", r.Owner != nil},
	}
	for _, f := range required {
		if !f.present {
			return xerrors.Invalid("missing required field: %s", f.name)
		}
	}
	return nil
}

// ToListing converts a validated request, applying active=true and new=false
// when they are not given.
func (r *CreateListingRequest) ToListing() *Listing {
	l := &Listing{
		Model:        *r.Model,
		ProdYear:     *r.ProdYear,
		EngVol:       *r.EngVol,
		Price:        *r.Price,
		Mileage:      *r.Mileage,
		Owner:        *r.Owner,
		EngType:      *r.EngType,
		Body:         *r.Body,
		GearBox:      *r.GearBox,
		Transmission: *r.Transmission,
		Color:        *r.Color,
		Made:         *r.Made,
		Active:       true,
	}
	if r.Active != nil {
		l.Active = *r.Active
	}
	if r.New != nil {
		l.New = *r.New
	}
	return l
}

// StatusRequest is the body of the status toggle endpoints.
type StatusRequest struct {
	Active *bool `json:"active"`
}

// BulkStatusResult reports how many listings a bulk toggle touched.
type BulkStatusResult struct {
	OwnerID  int64 `json:"owner_id"`
	Active   bool  `json:"active"`
	Affected int64 `json:"affected"`
}

// FallbackStatus is the admin view of the catalog latch.
type FallbackStatus struct {
	FallbackActive  bool `json:"fallback_active"`
	FallbackEnabled bool `json:"fallback_enabled"`
}
