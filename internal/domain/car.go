package domain

type Car struct {
	ID                 int64   `gorm:"primaryKey" json:"id"`
	Brand              string  `json:"brand"`
	Model              string  `json:"model"`
	Seats              int     `json:"seats"`
	PricePerDay        float64 `json:"price_per_day"`
	ImageURL           string  `json:"image_url"`
	CarType            string  `json:"car_type"`
	Transmission       string  `json:"transmission"`
	HasAirConditioning bool    `json:"has_air_conditioning"`
	SupplierID         int64   `gorm:"index" json:"supplier_id"`
}

// CarUpdate is the allow-listed set of mutable car fields.
type CarUpdate struct {
	Brand              *string  `json:"brand"`
	Model              *string  `json:"model"`
	Seats              *int     `json:"seats"`
	PricePerDay        *float64 `json:"price_per_day"`
	ImageURL           *string  `json:"image_url"`
	CarType            *string  `json:"car_type"`
	Transmission       *string  `json:"transmission"`
	HasAirConditioning *bool    `json:"has_air_conditioning"`
}

func (u CarUpdate) Fields() map[string]any {
	fields := map[string]any{}
	if u.Brand != nil {
		fields["brand"] = *u.Brand
	}
	if u.Model != nil {
		fields["model"] = *u.Model
	}
	if u.Seats != nil {
		fields["seats"] = *u.Seats
	}
	if u.PricePerDay != nil {
		fields["price_per_day"] = *u.PricePerDay
	}
	if u.ImageURL != nil {
		fields["image_url"] = *u.ImageURL
	}
	if u.CarType != nil {
		fields["car_type"] = *u.CarType
	}
	if u.Transmission != nil {
		fields["transmission"] = *u.Transmission
	}
	if u.HasAirConditioning != nil {
		fields["has_air_conditioning"] = *u.HasAirConditioning
	}
	return fields
}
