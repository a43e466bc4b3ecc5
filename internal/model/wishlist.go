package model

import "time"

type WishlistItem struct {
	ID         uint      `json:"wishlist_id" gorm:"primaryKey"`
	BuyerID    uint      `json:"buyer_id" gorm:"uniqueIndex:idx_wishlist_buyer_property;not null"`
	PropertyID uint      `json:"property_id" gorm:"uniqueIndex:idx_wishlist_buyer_property;index;not null"`
	CreatedAt  time.Time `json:"added_at" gorm:"autoCreateTime"`

	Property *Property `json:"property,omitempty" gorm:"foreignKey:PropertyID"`
}

func (WishlistItem) TableName() string {
	return "wishlist_items"
}
