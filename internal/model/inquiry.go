package model

import (
	"time"

	"gorm.io/gorm"
)

type Inquiry struct {
	gorm.Model
	BuyerID     uint       `json:"buyer_id" gorm:"index;not null"`
	PropertyID  uint       `json:"property_id" gorm:"index;not null"`
	SellerID    uint       `json:"seller_id" gorm:"index;not null"`
	Message     string     `json:"message" gorm:"type:text;not null"`
	Response    string     `json:"response" gorm:"type:text"`
	RespondedAt *time.Time `json:"responded_at"`

	// İlişkiler
	Property *Property `json:"property,omitempty" gorm:"foreignKey:PropertyID"`
	Buyer    *Buyer    `json:"buyer,omitempty" gorm:"foreignKey:BuyerID"`
}
