// internal/service/fallback/dataset.go
package fallback

import (
	"time"

	"carmarket-service/internal/domain/catalog"
)

func day(s string) time.Time {
	t, _ := time.Parse("2006-01-02", s)
	return t
}

// dataset is the one fixed catalog served while the database is unreachable.
// Brand ids match the carbrands table.
var dataset = []catalog.ListingView{
	{
		ID: 115220001, BrandID: 5, Brand: "Audi", ModelID: 50, ModelName: "Q5 II (FY)",
		ProdYear: 2018, EngVol: 2.0, Price: 30000, Mileage: 110000, Active: true, Owner: 2,
		EngineType: "Diesel", BodyType: "Crossover", GearBox: "Automatic", DriveType: "All-wheel",
		Color: "Black", DateAdded: day("2025-03-18"),
	},
	{
		ID: 115131033, BrandID: 3, Brand: "Volkswagen", ModelID: 30, ModelName: "Multivan",
		ProdYear: 2016, EngVol: 2.0, Price: 27500, Mileage: 168000, Active: true, Owner: 2,
		EngineType: "Diesel", BodyType: "Minivan", GearBox: "Automatic", DriveType: "Front",
		Color: "Silver", DateAdded: day("2025-03-15"),
	},
	{
		ID: 114406262, BrandID: 1, Brand: "Toyota", ModelID: 10, ModelName: "C-HR",
		ProdYear: 2019, EngVol: 1.2, Price: 21000, Mileage: 52000, Active: true, New: true, Owner: 1,
		EngineType: "Petrol", BodyType: "Crossover", GearBox: "Automatic", DriveType: "Front",
		Color: "White", DateAdded: day("2025-03-12"),
	},
	{
		ID: 114390118, BrandID: 5, Brand: "Audi", ModelID: 51, ModelName: "A8",
		ProdYear: 2019, EngVol: 2.0, Price: 24000, Mileage: 44000, Active: true, Owner: 1,
		EngineType: "Petrol", BodyType: "Sedan", GearBox: "Automatic", DriveType: "All-wheel",
		Color: "Black", DateAdded: day("2025-03-10"),
	},
	{
		ID: 113952047, BrandID: 5, Brand: "Audi", ModelID: 52, ModelName: "A4",
		ProdYear: 2012, EngVol: 1.8, Price: 9500, Mileage: 231000, Active: false, Owner: 3,
		EngineType: "Petrol", BodyType: "Sedan", GearBox: "Manual", DriveType: "Front",
		Color: "Silver", DateAdded: day("2025-02-27"),
	},
	{
		ID: 113266555, BrandID: 2, Brand: "Mercedes-Benz", ModelID: 20, ModelName: "S-class",
		ProdYear: 2021, EngVol: 3.0, Price: 89000, Mileage: 27000, Active: true, New: true, Owner: 3,
		EngineType: "Petrol", BodyType: "Sedan", GearBox: "Automatic", DriveType: "Rear",
		Color: "Black", DateAdded: day("2025-02-20"),
	},
}
