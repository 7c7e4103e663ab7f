package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Branch represents a registered outlet. Seller NTN/STRN and the sale type
// code are snapshotted onto every sale issued from the branch.
type Branch struct {
	ID           uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	Name         string         `gorm:"size:255;not null" json:"name"`
	Address      *string        `gorm:"type:text" json:"address,omitempty"`
	City         *string        `gorm:"size:100" json:"city,omitempty"`
	Province     *string        `gorm:"size:100" json:"province,omitempty"`
	NTN          string         `gorm:"size:20;column:ntn;not null" json:"ntn"`
	STRN         *string        `gorm:"size:20;column:strn" json:"strn,omitempty"`
	FBRBranchCode string        `gorm:"size:50;unique;not null;column:fbr_branch_code" json:"fbr_branch_code"`
	SaleTypeCode string         `gorm:"size:20;default:'T1000017'" json:"sale_type_code"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Devices []Device `gorm:"foreignKey:BranchID" json:"devices,omitempty"`
	Sales   []Sale   `gorm:"foreignKey:BranchID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new branch
func (b *Branch) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Branch model
func (Branch) TableName() string {
	return "branches"
}

// Device represents a POS terminal registered with FBR under a branch
type Device struct {
	ID             uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	BranchID       uuid.UUID      `gorm:"type:uuid;not null;index" json:"branch_id"`
	Name           string         `gorm:"size:255;not null" json:"name"`
	DeviceIdentifier string       `gorm:"size:100;unique;not null" json:"device_identifier"`
	FBRPosRegNo    string         `gorm:"size:50;unique;not null;column:fbr_pos_reg_no" json:"fbr_pos_reg_no"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Branch *Branch `gorm:"foreignKey:BranchID" json:"branch,omitempty"`
	Sales  []Sale  `gorm:"foreignKey:DeviceID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new device
func (d *Device) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Device model
func (Device) TableName() string {
	return "devices"
}
