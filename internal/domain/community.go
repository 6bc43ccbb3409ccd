package domain

// CommunityPricingType represents how a community is priced
type CommunityPricingType string

const (
	CommunityPricingFree CommunityPricingType = "free"
	CommunityPricingPaid CommunityPricingType = "paid"
)

// Community represents a joinable community listing
type Community struct {
	BaseModel
	Title       string               `gorm:"type:varchar(255);not null" json:"title"`
	Description string               `gorm:"type:text" json:"description"`
	PricingType CommunityPricingType `gorm:"type:varchar(20);not null;default:'free'" json:"pricing_type"`
	Amount      float64              `gorm:"type:decimal(10,2);default:0" json:"amount"`
}

// TableName specifies the table name for Community
func (Community) TableName() string {
	return "communities"
}
