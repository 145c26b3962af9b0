package domain

import (
	"time"
)

// Division is an optional organizational grouping for jobs and communities.
// Name is immutable identity; divisions are created lazily and never updated.
type Division struct {
	DivisionID   int64     `gorm:"column:division_id;primaryKey;autoIncrement"`
	DivisionName string    `gorm:"type:varchar(100);not null;uniqueIndex;column:division_name"`
	CreatedAt    time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// Community is a neighborhood within a division
type Community struct {
	CommunityID   int64     `gorm:"column:community_id;primaryKey;autoIncrement"`
	DivisionID    int64     `gorm:"column:division_id;not null;uniqueIndex:idx_communities_division_name"`
	Division      *Division `gorm:"foreignKey:DivisionID"`
	CommunityName string    `gorm:"type:varchar(100);not null;uniqueIndex:idx_communities_division_name;column:community_name"`
	CreatedAt     time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// Plan is a house design. Architect and engineer may be filled in by later
// imports but a known value is never overwritten.
type Plan struct {
	PlanID    int64     `gorm:"column:plan_id;primaryKey;autoIncrement"`
	PlanName  string    `gorm:"type:varchar(100);not null;uniqueIndex;column:plan_name"`
	Architect *string   `gorm:"type:varchar(200)"`
	Engineer  *string   `gorm:"type:varchar(200)"`
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// PlanElevation is a facade/foundation variant of a plan, keyed by
// (plan_id, elevation_name, foundation). Carries the dimensional attributes
// referenced by quantity formulas.
type PlanElevation struct {
	PlanElevationID int64  `gorm:"column:plan_elevation_id;primaryKey;autoIncrement"`
	PlanID          int64  `gorm:"column:plan_id;not null;uniqueIndex:idx_plan_elevations_key"`
	Plan            *Plan  `gorm:"foreignKey:PlanID"`
	ElevationName   string `gorm:"type:varchar(50);not null;uniqueIndex:idx_plan_elevations_key;column:elevation_name"`
	Foundation      string `gorm:"type:varchar(50);not null;uniqueIndex:idx_plan_elevations_key"`
	PlanFullName    *string `gorm:"type:varchar(200);column:plan_full_name"`

	HeatedSFInsideStuds     *int `gorm:"column:heated_sf_inside_studs"`
	HeatedSFOutsideStuds    *int `gorm:"column:heated_sf_outside_studs"`
	HeatedSFOutsideVeneer   *int `gorm:"column:heated_sf_outside_veneer"`
	UnheatedSFInsideStuds   *int `gorm:"column:unheated_sf_inside_studs"`
	UnheatedSFOutsideStuds  *int `gorm:"column:unheated_sf_outside_studs"`
	UnheatedSFOutsideVeneer *int `gorm:"column:unheated_sf_outside_veneer"`
	TotalSFInsideStuds      *int `gorm:"column:total_sf_inside_studs"`
	TotalSFOutsideStuds     *int `gorm:"column:total_sf_outside_studs"`
	TotalSFOutsideVeneer    *int `gorm:"column:total_sf_outside_veneer"`

	StairCount       *int       `gorm:"column:stair_count"`
	BedroomCount     *int       `gorm:"column:bedroom_count"`
	BathroomCount    *float64   `gorm:"column:bathroom_count"`
	VersionNumber    *string    `gorm:"type:varchar(50);column:version_number"`
	VersionDate      *time.Time `gorm:"column:version_date"`
	IsCurrentVersion *bool      `gorm:"column:is_current_version"`

	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// PlanOption is a configurable add-on or base configuration within an
// elevation, keyed by (plan_elevation_id, option_name)
type PlanOption struct {
	PlanOptionID      int64          `gorm:"column:plan_option_id;primaryKey;autoIncrement"`
	PlanElevationID   int64          `gorm:"column:plan_elevation_id;not null;uniqueIndex:idx_plan_options_key"`
	PlanElevation     *PlanElevation `gorm:"foreignKey:PlanElevationID"`
	OptionName        string         `gorm:"type:varchar(100);not null;uniqueIndex:idx_plan_options_key;column:option_name"`
	OptionType        *string        `gorm:"type:varchar(50);column:option_type"`
	OptionDescription *string        `gorm:"type:varchar(500);column:option_description"`

	BedroomCount  *int     `gorm:"column:bedroom_count"`
	BathroomCount *float64 `gorm:"column:bathroom_count"`

	HeatedSFInsideStuds     *int `gorm:"column:heated_sf_inside_studs"`
	HeatedSFOutsideStuds    *int `gorm:"column:heated_sf_outside_studs"`
	HeatedSFOutsideVeneer   *int `gorm:"column:heated_sf_outside_veneer"`
	UnheatedSFInsideStuds   *int `gorm:"column:unheated_sf_inside_studs"`
	UnheatedSFOutsideStuds  *int `gorm:"column:unheated_sf_outside_studs"`
	UnheatedSFOutsideVeneer *int `gorm:"column:unheated_sf_outside_veneer"`
	TotalSFInsideStuds      *int `gorm:"column:total_sf_inside_studs"`
	TotalSFOutsideStuds     *int `gorm:"column:total_sf_outside_studs"`
	TotalSFOutsideVeneer    *int `gorm:"column:total_sf_outside_veneer"`

	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// Job is a concrete instantiation of a plan option, template or live.
// Template jobs anchor the takeoff lines loaded from spreadsheet files.
type Job struct {
	JobID        int64       `gorm:"column:job_id;primaryKey;autoIncrement"`
	JobName      string      `gorm:"type:varchar(200);not null;uniqueIndex:idx_jobs_key;column:job_name"`
	PlanOptionID int64       `gorm:"column:plan_option_id;not null;uniqueIndex:idx_jobs_key"`
	PlanOption   *PlanOption `gorm:"foreignKey:PlanOptionID"`
	IsTemplate   bool        `gorm:"not null;default:false;column:is_template"`
	JobNumber    *string     `gorm:"type:varchar(50);column:job_number"`
	LotNumber    *string     `gorm:"type:varchar(50);column:lot_number"`
	CustomerName *string     `gorm:"type:varchar(200);column:customer_name"`
	DivisionID   *int64      `gorm:"column:division_id"`
	CommunityID  *int64      `gorm:"column:community_id"`
	CreatedAt    time.Time   `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// CostGroup is a top-level cost category (e.g. "09" for finishes)
type CostGroup struct {
	CostGroupID   int64     `gorm:"column:cost_group_id;primaryKey;autoIncrement"`
	CostGroupCode string    `gorm:"type:varchar(50);not null;uniqueIndex;column:cost_group_code"`
	CostGroupName *string   `gorm:"type:varchar(200);column:cost_group_name"`
	CreatedAt     time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// CostCode is a standardized cost line category, scoped by cost group
type CostCode struct {
	CostCodeID  int64      `gorm:"column:cost_code_id;primaryKey;autoIncrement"`
	CostGroupID int64      `gorm:"column:cost_group_id;not null;uniqueIndex:idx_cost_codes_key"`
	CostGroup   *CostGroup `gorm:"foreignKey:CostGroupID"`
	Code        string     `gorm:"type:varchar(50);not null;uniqueIndex:idx_cost_codes_key;column:cost_code"`
	Description *string    `gorm:"type:varchar(500);column:cost_code_description"`
	CreatedAt   time.Time  `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// Formula holds structured quantity-formula metadata attached to items
type Formula struct {
	FormulaID       int64     `gorm:"column:formula_id;primaryKey;autoIncrement"`
	FormulaName     string    `gorm:"type:varchar(100);not null;uniqueIndex;column:formula_name"`
	FormulaText     string    `gorm:"type:varchar(500);not null;column:formula_text"`
	FormulaType     *string   `gorm:"type:varchar(50);column:formula_type"`
	DependsOnFields *string   `gorm:"type:varchar(500);column:depends_on_fields"`
	CreatedAt       time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// Item is a catalog concept identified by unique item_name. QtyFormula is an
// inline symbolic expression; FormulaID points at a structured Formula row.
type Item struct {
	ItemID         int64     `gorm:"column:item_id;primaryKey;autoIncrement"`
	ItemName       string    `gorm:"type:varchar(200);not null;uniqueIndex;column:item_name"`
	CostCodeID     *int64    `gorm:"column:cost_code_id"`
	CostCode       *CostCode `gorm:"foreignKey:CostCodeID"`
	QtyType        *string   `gorm:"type:varchar(50);column:qty_type"`
	DefaultUnit    *string   `gorm:"type:varchar(50);column:default_unit"`
	AttributeLevel *string   `gorm:"type:varchar(50);column:attribute_level"`
	Model          *string   `gorm:"type:varchar(100)"`
	QtyFormula     *string   `gorm:"type:varchar(500);column:qty_formula"`
	TakeoffType    *string   `gorm:"type:varchar(50);column:takeoff_type"`
	FormulaID      *int64    `gorm:"column:formula_id"`
	Formula        *Formula  `gorm:"foreignKey:FormulaID"`
	CreatedAt      time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt      time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// Product is a purchasable instantiation of an item, keyed by
// (item_id, product_description)
type Product struct {
	ProductID          int64     `gorm:"column:product_id;primaryKey;autoIncrement"`
	ItemID             int64     `gorm:"column:item_id;not null;uniqueIndex:idx_products_key"`
	Item               *Item     `gorm:"foreignKey:ItemID"`
	ProductDescription string    `gorm:"type:varchar(500);not null;uniqueIndex:idx_products_key;column:product_description"`
	Model              *string   `gorm:"type:varchar(100)"`
	Brand              *string   `gorm:"type:varchar(100)"`
	Style              *string   `gorm:"type:varchar(100)"`
	SKU                *string   `gorm:"type:varchar(100);column:sku"`
	CreatedAt          time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt          time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// Vendor is a supplier identified by unique vendor_name
type Vendor struct {
	VendorID   int64     `gorm:"column:vendor_id;primaryKey;autoIncrement"`
	VendorName string    `gorm:"type:varchar(200);not null;uniqueIndex;column:vendor_name"`
	CreatedAt  time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// VendorPricing is the temporal price fact table. At most one row per
// (vendor_id, product_id) has is_current = true at any time; a price change
// closes the old row and opens a new one, never mutating price in place.
type VendorPricing struct {
	PricingID      int64      `gorm:"column:pricing_id;primaryKey;autoIncrement"`
	VendorID       int64      `gorm:"column:vendor_id;not null;index:idx_vendor_pricing_pair"`
	Vendor         *Vendor    `gorm:"foreignKey:VendorID"`
	ProductID      int64      `gorm:"column:product_id;not null;index:idx_vendor_pricing_pair"`
	Product        *Product   `gorm:"foreignKey:ProductID"`
	Price          float64    `gorm:"not null"`
	UnitOfMeasure  *string    `gorm:"type:varchar(50);column:unit_of_measure"`
	PriceType      *string    `gorm:"type:varchar(50);column:price_type"`
	EffectiveDate  time.Time  `gorm:"not null;column:effective_date"`
	ExpirationDate *time.Time `gorm:"column:expiration_date"`
	IsCurrent      bool       `gorm:"not null;default:true;column:is_current"`
	IsActive       bool       `gorm:"not null;default:true;column:is_active"`
	Notes          *string    `gorm:"type:varchar(500)"`
	CreatedBy      *string    `gorm:"type:varchar(100);column:created_by"`
	CreatedDate    time.Time  `gorm:"not null;autoCreateTime;column:created_date"`
}

// TableName keeps the legacy singular table name
func (VendorPricing) TableName() string { return "vendor_pricing" }

// TakeoffLine is one spreadsheet line item: a quantity of a product on a job,
// optionally priced by a vendor. TakeoffIDSource is the source-supplied stable
// identifier used for upsert-on-conflict re-imports.
type TakeoffLine struct {
	TakeoffID       int64    `gorm:"column:takeoff_id;primaryKey;autoIncrement"`
	TakeoffIDSource *int64   `gorm:"column:takeoff_id_source;uniqueIndex"`
	JobID           int64    `gorm:"column:job_id;not null;index"`
	Job             *Job     `gorm:"foreignKey:JobID"`
	ProductID       int64    `gorm:"column:product_id;not null;index"`
	Product         *Product `gorm:"foreignKey:ProductID"`
	VendorID        *int64   `gorm:"column:vendor_id;index"`
	Vendor          *Vendor  `gorm:"foreignKey:VendorID"`

	Quantity       *float64 `gorm:"column:quantity"`
	QuantitySource *string  `gorm:"type:varchar(500);column:quantity_source"`
	UnitPrice      *float64 `gorm:"column:unit_price"`
	PriceFactor    *float64 `gorm:"column:price_factor"`
	ExtendedPrice  *float64 `gorm:"column:extended_price"`
	UnitOfMeasure  *string  `gorm:"type:varchar(50);column:unit_of_measure"`

	JobNumber    *string `gorm:"type:varchar(50);column:job_number"`
	LotNumber    *string `gorm:"type:varchar(50);column:lot_number"`
	CustomerName *string `gorm:"type:varchar(200);column:customer_name"`

	Room            *string  `gorm:"type:varchar(100)"`
	RoomType        *string  `gorm:"type:varchar(100);column:room_type"`
	RoomSqFt        *float64 `gorm:"column:room_sqft"`
	FloorLevel      *string  `gorm:"type:varchar(50);column:floor_level"`
	IsHeated        *bool    `gorm:"column:is_heated"`
	SpecName        *string  `gorm:"type:varchar(200);column:spec_name"`
	SpecDescription *string  `gorm:"type:varchar(500);column:spec_description"`
	SpecLevel       *string  `gorm:"type:varchar(50);column:spec_level"`
	SelectedTotal   *float64 `gorm:"column:selected_total"`
	Notes           *string  `gorm:"type:varchar(1000)"`

	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName keeps the legacy table name
func (TakeoffLine) TableName() string { return "takeoffs" }
