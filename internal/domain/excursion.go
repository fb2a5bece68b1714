package domain

type Excursion struct {
	ID          int64   `gorm:"primaryKey" json:"id"`
	Title       string  `gorm:"not null" json:"title"`
	Description string  `json:"description"`
	Duration    string  `json:"duration"`
	Location    string  `json:"location"`
	PriceAdult  float64 `json:"price_adult"`
	PriceChild  float64 `json:"price_child"`
	PriceInfant float64 `json:"price_infant"`
	ImageURLs   string  `json:"image_urls"`
	SupplierID  int64   `gorm:"index" json:"supplier_id"`
}

// ExcursionUpdate is the allow-listed set of mutable excursion fields. Nil
// means "leave unchanged". The id and owning supplier are not updatable.
type ExcursionUpdate struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	Duration    *string  `json:"duration"`
	Location    *string  `json:"location"`
	PriceAdult  *float64 `json:"price_adult"`
	PriceChild  *float64 `json:"price_child"`
	PriceInfant *float64 `json:"price_infant"`
	ImageURLs   *string  `json:"image_urls"`
}

func (u ExcursionUpdate) Fields() map[string]any {
	fields := map[string]any{}
	if u.Title != nil {
		fields["title"] = *u.Title
	}
	if u.Description != nil {
		fields["description"] = *u.Description
	}
	if u.Duration != nil {
		fields["duration"] = *u.Duration
	}
	if u.Location != nil {
		fields["location"] = *u.Location
	}
	if u.PriceAdult != nil {
		fields["price_adult"] = *u.PriceAdult
	}
	if u.PriceChild != nil {
		fields["price_child"] = *u.PriceChild
	}
	if u.PriceInfant != nil {
		fields["price_infant"] = *u.PriceInfant
	}
	if u.ImageURLs != nil {
		fields["image_urls"] = *u.ImageURLs
	}
	return fields
}
