package domain

type SupplierType string

const (
	SupplierTour SupplierType = "tour"
	SupplierCar  SupplierType = "car"
)

type Supplier struct {
	ID      int64        `gorm:"primaryKey" json:"id"`
	Name    string       `gorm:"not null" json:"name"`
	Type    SupplierType `gorm:"index" json:"type"`
	Phone   string       `json:"phone"`
	Email   string       `json:"email"`
	LogoURL string       `json:"logo_url"`
}
