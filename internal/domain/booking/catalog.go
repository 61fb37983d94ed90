package booking

import "github.com/shopspring/decimal"

const (
	CategoryHair   = "hair"
	CategoryNails  = "nails"
	CategorySkin   = "skin"
	CategoryMakeup = "makeup"
)

type Service struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	Category        string          `json:"category"`
	Price           decimal.Decimal `json:"price"`
	DurationMinutes int             `json:"durationMinutes"`
	Active          bool            `json:"active"`
}

func price(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

var catalog = []Service{
	{ID: "haircut", Name: "Haircut & Styling", Category: CategoryHair, Price: price("1500"), DurationMinutes: 45, Active: true},
	{ID: "hair-color", Name: "Hair Color", Category: CategoryHair, Price: price("4500"), DurationMinutes: 120, Active: true},
	{ID: "hair-treatment", Name: "Keratin Treatment", Category: CategoryHair, Price: price("8000"), DurationMinutes: 150, Active: true},
	{ID: "blow-dry", Name: "Blow Dry", Category: CategoryHair, Price: price("1000"), DurationMinutes: 30, Active: true},
	{ID: "manicure", Name: "Manicure", Category: CategoryNails, Price: price("1200"), DurationMinutes: 45, Active: true},
	{ID: "pedicure", Name: "Pedicure", Category: CategoryNails, Price: price("1500"), DurationMinutes: 60, Active: true},
	{ID: "facial", Name: "Facial", Category: CategorySkin, Price: price("3000"), DurationMinutes: 60, Active: true},
	{ID: "waxing", Name: "Full Body Waxing", Category: CategorySkin, Price: price("2500"), DurationMinutes: 60, Active: true},
	{ID: "makeup", Name: "Party Makeup", Category: CategoryMakeup, Price: price("5000"), DurationMinutes: 60, Active: true},
	{ID: "bridal-makeup", Name: "Bridal Makeup", Category: CategoryMakeup, Price: price("25000"), DurationMinutes: 180, Active: true},
}

// positionCategories gates which services an employee of a given position
// may list as specialties.
var positionCategories = map[string][]string{
	"hair_stylist":    {CategoryHair},
	"nail_technician": {CategoryNails},
	"beautician":      {CategorySkin, CategoryNails},
	"makeup_artist":   {CategoryMakeup, CategorySkin},
}

func Catalog() []Service {
	out := make([]Service, len(catalog))
	copy(out, catalog)
	return out
}

func LookupService(id string) (Service, bool) {
	for _, s := range catalog {
		if s.ID == id && s.Active {
			return s, true
		}
	}
	return Service{}, false
}

// PriceOf returns the catalog price used as a booking's total.
func PriceOf(id string) (decimal.Decimal, bool) {
	s, ok := LookupService(id)
	if !ok {
		return decimal.Zero, false
	}
	return s.Price, true
}

func IsValidPosition(position string) bool {
	_, ok := positionCategories[position]
	return ok
}

func Positions() []string {
	return []string{"hair_stylist", "nail_technician", "beautician", "makeup_artist"}
}

// PositionAllows reports whether an employee in position may perform service.
func PositionAllows(position, serviceID string) bool {
	s, ok := LookupService(serviceID)
	if !ok {
		return false
	}
	for _, cat := range positionCategories[position] {
		if cat == s.Category {
			return true
		}
	}
	return false
}
