package models

import "time"

type MedicalService struct {
	ID          string `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"not null" json:"name"`
	Category    string `gorm:"not null;index" json:"category"`
	Description string `json:"description,omitempty"`
	// Price is stored in VND, which has no fractional unit.
	Price     int64     `gorm:"not null" json:"price"`
	CreatedAt time.Time `gorm:"not null" json:"-"`
}

type BuiltinService struct {
	Name        string
	Category    string
	Description string
	Price       int64
}

func DefaultServiceCatalog() []BuiltinService {
	return []BuiltinService{
		{Name: "General consultation", Category: "consultation", Description: "30-minute consultation with a general practitioner", Price: 300000},
		{Name: "Gynecology consultation", Category: "consultation", Description: "Specialist consultation on reproductive health", Price: 500000},
		{Name: "Cycle health screening", Category: "screening", Description: "Hormone panel and cycle assessment", Price: 1200000},
		{Name: "Pelvic ultrasound", Category: "imaging", Description: "Transabdominal pelvic ultrasound", Price: 450000},
		{Name: "STI screening panel", Category: "screening", Description: "Comprehensive sexually transmitted infection panel", Price: 900000},
		{Name: "Fertility assessment", Category: "fertility", Description: "Ovulation tracking review and baseline fertility workup", Price: 1500000},
		{Name: "Prenatal checkup", Category: "prenatal", Description: "Routine prenatal examination", Price: 600000},
		{Name: "HPV vaccination", Category: "vaccination", Description: "Single HPV vaccine dose", Price: 1800000},
	}
}
