package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Product represents a sellable item in the catalog
type Product struct {
	ID         uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	CategoryID *uuid.UUID     `gorm:"type:uuid;index" json:"category_id,omitempty"`
	TaxRateID  *uuid.UUID     `gorm:"type:uuid;index" json:"tax_rate_id,omitempty"`
	Code       string         `gorm:"size:100;unique;not null" json:"code"`
	Name       string         `gorm:"size:255;not null" json:"name"`
	Price      float64        `gorm:"type:numeric(14,2);default:0" json:"price"`
	HSCode     *string        `gorm:"size:20" json:"hs_code,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Category *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	TaxRate  *TaxRate  `gorm:"foreignKey:TaxRateID" json:"tax_rate,omitempty"`
}

// BeforeCreate generates a UUID before creating a new product
func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Product model
func (Product) TableName() string {
	return "products"
}

// TaxRatePercent returns the product's tax rate percentage, or nil when the
// product carries no rate (untaxed items report zero tax, not an error)
func (p *Product) TaxRatePercent() *float64 {
	if p.TaxRate == nil {
		return nil
	}
	rate := p.TaxRate.Rate
	return &rate
}

// Category represents a product category; categories may nest via ParentID
type Category struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	ParentID  *uuid.UUID     `gorm:"type:uuid;index" json:"parent_id,omitempty"`
	Name      string         `gorm:"size:255;not null" json:"name"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Parent   *Category  `gorm:"foreignKey:ParentID" json:"parent,omitempty"`
	Children []Category `gorm:"foreignKey:ParentID" json:"-"`
	Products []Product  `gorm:"foreignKey:CategoryID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new category
func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Category model
func (Category) TableName() string {
	return "categories"
}

// TaxRate represents a named sales tax percentage, optionally tied to an
// FBR SRO schedule
type TaxRate struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	Name      string         `gorm:"size:255;not null" json:"name"`
	Rate      float64        `gorm:"type:numeric(5,2);not null" json:"rate"`
	SROCode   *string        `gorm:"size:50" json:"sro_code,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Products []Product `gorm:"foreignKey:TaxRateID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new tax rate
func (t *TaxRate) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the TaxRate model
func (TaxRate) TableName() string {
	return "tax_rates"
}
