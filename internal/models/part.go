package models

import (
	"time"

	"gorm.io/datatypes"
)

// PartCondition grades a salvaged part.
type PartCondition string

const (
	ConditionGradeA   PartCondition = "grade_a"
	ConditionGradeB   PartCondition = "grade_b"
	ConditionForParts PartCondition = "for_parts"
)

// PartConditions lists the accepted condition values.
var PartConditions = []string{string(ConditionGradeA), string(ConditionGradeB), string(ConditionForParts)}

// Part is an inventory line identified by its SKU.
type Part struct {
	SKU       string    `gorm:"primaryKey;column:part_sku;size:100" json:"partSKU"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`

	Name        string `gorm:"column:part_name;size:255;not null" json:"partName"`
	Description string `gorm:"type:text" json:"description,omitempty"`

	// Donor vehicle
	SourceVehicleMake  string `gorm:"size:100" json:"sourceVehicleMake"`
	SourceVehicleModel string `gorm:"size:100" json:"sourceVehicleModel"`
	SourceVehicleYear  int    `json:"sourceVehicleYear"`

	Condition         PartCondition `gorm:"size:20;not null" json:"condition"`
	WarehouseLocation string        `gorm:"size:50" json:"warehouseLocation"`

	PurchasePrice float64 `gorm:"not null" json:"purchasePrice"`
	SellingPrice  float64 `gorm:"not null" json:"sellingPrice"`

	// QuantityInStock can go negative when more units are invoiced than counted.
	QuantityInStock int `gorm:"not null" json:"quantityInStock"`

	Photos datatypes.JSONSlice[string] `json:"photos"`
}

// DisplayDescription is the text snapshotted onto invoice lines.
func (p *Part) DisplayDescription() string {
	if p.Description != "" {
		return p.Description
	}
	return p.Name
}
