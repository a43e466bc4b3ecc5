package model

import (
	"time"

	"gorm.io/gorm"
)

// OwnershipRecord satın alma anındaki mülk bilgilerinin kopyası.
// Property satırı sonradan değişse bile sahiplik kanıtı olarak kalır.
type OwnershipRecord struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	TransactionID uint      `json:"transaction_id" gorm:"uniqueIndex;not null"`
	PropertyID    uint      `json:"property_id" gorm:"uniqueIndex;not null"`
	BuyerID       uint      `json:"buyer_id" gorm:"index;not null"`
	SellerID      uint      `json:"seller_id" gorm:"index;not null"`
	PropertyName  string    `json:"property_name" gorm:"not null"`
	PropertyCity  string    `json:"property_city" gorm:"not null"`
	PropertyState string    `json:"property_state" gorm:"not null"`
	Country       string    `json:"property_country" gorm:"not null"`
	Pincode       string    `json:"pincode" gorm:"size:6;not null"`
	PurchasedAt   time.Time `json:"purchase_date" gorm:"autoCreateTime"`
}

func (OwnershipRecord) TableName() string {
	return "ownership_records"
}

func (o *OwnershipRecord) BeforeUpdate(tx *gorm.DB) error {
	return ErrImmutableRecord
}

func (o *OwnershipRecord) BeforeDelete(tx *gorm.DB) error {
	return ErrImmutableRecord
}

// SnapshotOwnership mülkün o anki tanımlayıcı alanlarını kopyalar
func SnapshotOwnership(p *Property, buyerID, transactionID uint) *OwnershipRecord {
	return &OwnershipRecord{
		TransactionID: transactionID,
		PropertyID:    p.ID,
		BuyerID:       buyerID,
		SellerID:      p.SellerID,
		PropertyName:  p.Name,
		PropertyCity:  p.City,
		PropertyState: p.State,
		Country:       p.Country,
		Pincode:       p.Pincode,
	}
}
