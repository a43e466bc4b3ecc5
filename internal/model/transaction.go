package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Transaction tamamlanmış bir para transferi. Oluşturulduktan sonra değişmez.
type Transaction struct {
	ID         uint            `json:"transaction_id" gorm:"primaryKey"`
	Reference  string          `json:"reference" gorm:"size:36;uniqueIndex;not null"`
	BuyerID    uint            `json:"buyer_id" gorm:"index;not null"`
	PropertyID uint            `json:"property_id" gorm:"uniqueIndex;not null"` // her mülk en fazla bir kez satılır
	SellerID   uint            `json:"seller_id" gorm:"index;not null"`
	Price      decimal.Decimal `json:"price" gorm:"type:numeric(14,2);not null"`
	CreatedAt  time.Time       `json:"transaction_date" gorm:"autoCreateTime"`
}

func (t *Transaction) BeforeCreate(tx *gorm.DB) error {
	if t.Reference == "" {
		t.Reference = uuid.NewString()
	}
	return nil
}

// BeforeUpdate kayıt geçmiş bir olgudur, güncellenemez
func (t *Transaction) BeforeUpdate(tx *gorm.DB) error {
	return ErrImmutableRecord
}

func (t *Transaction) BeforeDelete(tx *gorm.DB) error {
	return ErrImmutableRecord
}
