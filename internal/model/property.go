package model

import (
	"fmt"

	"github.com/gosimple/slug"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Category struct {
	gorm.Model
	CategoryName string `json:"category_name" gorm:"uniqueIndex;not null"`
}

type Property struct {
	gorm.Model
	SellerID    uint            `json:"seller_id" gorm:"uniqueIndex:idx_seller_property_slug;not null"`
	CategoryID  uint            `json:"category_id" gorm:"index;not null"`
	Name        string          `json:"name" gorm:"not null"`
	Slug        string          `json:"slug" gorm:"uniqueIndex:idx_seller_property_slug;not null"`
	Price       decimal.Decimal `json:"price" gorm:"type:numeric(14,2);not null"`
	Description string          `json:"description" gorm:"type:text"`

	// Konum alanları
	City    string `json:"city" gorm:"index;not null"`
	State   string `json:"state" gorm:"index;not null"`
	Country string `json:"country" gorm:"not null"`
	Pincode string `json:"pincode" gorm:"size:6;not null"`

	Bedrooms  *int             `json:"bedrooms"`
	Bathrooms *int             `json:"bathrooms"`
	AreaSqft  *decimal.Decimal `json:"area_sqft" gorm:"type:numeric(12,2)"`
	Features  datatypes.JSON   `json:"features,omitempty"`

	// Satıldıktan sonra bir daha true olmaz
	IsAvailable bool `json:"is_available" gorm:"index;not null;default:true"`

	// İlişkiler
	Seller   *Seller   `json:"seller,omitempty" gorm:"foreignKey:SellerID"`
	Category *Category `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
}

// BeforeCreate property oluşturulurken slug'ı otomatik oluşturur
func (p *Property) BeforeCreate(tx *gorm.DB) error {
	if p.Slug != "" {
		return nil
	}

	base := slug.Make(p.Name)
	if base == "" {
		base = "property"
	}

	// Aynı satıcıda aynı slug varsa sonuna sayı ekle
	candidate := base
	for i := 2; ; i++ {
		var count int64
		if err := tx.Session(&gorm.Session{NewDB: true}).Model(&Property{}).Unscoped().
			Where("seller_id = ? AND slug = ?", p.SellerID, candidate).
			Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			break
		}
		candidate = fmt.Sprintf("%s-%d", base, i)
	}

	p.Slug = candidate
	return nil
}
