package store

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"bricks_backend/internal/model"
)

// TransactionLog para transferlerinin sadece eklenebilir kaydı
type TransactionLog struct {
	db *gorm.DB
}

func NewTransactionLog(db *gorm.DB) *TransactionLog {
	return &TransactionLog{db: db}
}

func (l *TransactionLog) WithTx(tx *gorm.DB) *TransactionLog {
	return &TransactionLog{db: tx}
}

func (l *TransactionLog) Record(ctx context.Context, t *model.Transaction) error {
	return l.db.WithContext(ctx).Create(t).Error
}

// OwnershipLog tamamlanmış sahiplik devirlerinin sadece eklenebilir kaydı
type OwnershipLog struct {
	db *gorm.DB
}

func NewOwnershipLog(db *gorm.DB) *OwnershipLog {
	return &OwnershipLog{db: db}
}

func (l *OwnershipLog) WithTx(tx *gorm.DB) *OwnershipLog {
	return &OwnershipLog{db: tx}
}

func (l *OwnershipLog) RecordOwnership(ctx context.Context, r *model.OwnershipRecord) error {
	return l.db.WithContext(ctx).Create(r).Error
}

type OwnedProperty struct {
	model.OwnershipRecord
	Description string           `json:"description"`
	Bedrooms    *int             `json:"bedrooms"`
	Bathrooms   *int             `json:"bathrooms"`
	AreaSqft    *decimal.Decimal `json:"area_sqft"`
	PricePaid   decimal.Decimal  `json:"price_paid"`
	SellerName  string           `json:"seller_name"`
}

// OwnedBy alıcının sahip olduğu mülkleri satın alma tarihine göre döner.
// İsim ve konum bilgisi satın alma anındaki kopyadan gelir.
func (l *OwnershipLog) OwnedBy(ctx context.Context, buyerID uint) ([]OwnedProperty, error) {
	owned := []OwnedProperty{}
	err := l.db.WithContext(ctx).
		Table("ownership_records AS o").
		Select(`o.*, p.description, p.bedrooms, p.bathrooms, p.area_sqft,
			t.price AS price_paid,
			s.f_name || ' ' || s.l_name AS seller_name`).
		Joins("JOIN transactions t ON t.id = o.transaction_id").
		Joins("LEFT JOIN properties p ON p.id = o.property_id").
		Joins("LEFT JOIN sellers s ON s.id = o.seller_id").
		Where("o.buyer_id = ?", buyerID).
		Order("o.purchased_at desc").
		Order("o.id desc").
		Scan(&owned).Error
	return owned, err
}

type SoldProperty struct {
	PropertyID       uint            `json:"propertyid"`
	PropertyName     string          `json:"property_name"`
	TransactionID    uint            `json:"transactionid"`
	TransactionDate  time.Time       `json:"transaction_date"`
	TransactionPrice decimal.Decimal `json:"transaction_price"`
	BuyerName        string          `json:"buyer_name"`
}

// SoldBy satıcının satılmış mülklerini döner
func (l *TransactionLog) SoldBy(ctx context.Context, sellerID uint) ([]SoldProperty, error) {
	sold := []SoldProperty{}
	err := l.db.WithContext(ctx).
		Table("transactions AS t").
		Select(`t.property_id, o.property_name, t.id AS transaction_id,
			t.created_at AS transaction_date, t.price AS transaction_price,
			b.f_name || ' ' || b.l_name AS buyer_name`).
		Joins("JOIN ownership_records o ON o.transaction_id = t.id").
		Joins("JOIN buyers b ON b.id = t.buyer_id").
		Where("t.seller_id = ?", sellerID).
		Order("t.created_at desc").
		Order("t.id desc").
		Scan(&sold).Error
	return sold, err
}

type SellerTransaction struct {
	TransactionID uint            `json:"transactionid"`
	Reference     string          `json:"reference"`
	Amount        decimal.Decimal `json:"amount"`
	Date          time.Time       `json:"transaction_date"`
	PropertyID    uint            `json:"propertyid"`
	PropertyTitle string          `json:"property_title"`
	Category      string          `json:"property_category"`
	Location      string          `json:"property_location"`
	BuyerID       uint            `json:"buyerid"`
	BuyerName     string          `json:"buyer_name"`
	BuyerEmail    string          `json:"buyer_email"`
	BuyerPhone    string          `json:"buyer_phone"`
}

// BySeller satıcının tüm satış işlemlerini alıcı bilgileriyle döner
func (l *TransactionLog) BySeller(ctx context.Context, sellerID uint) ([]SellerTransaction, error) {
	txs := []SellerTransaction{}
	err := l.db.WithContext(ctx).
		Table("transactions AS t").
		Select(`t.id AS transaction_id, t.reference, t.price AS amount, t.created_at AS date,
			t.property_id, o.property_name AS property_title,
			COALESCE(c.category_name, '') AS category,
			o.property_city || ', ' || o.property_state || ' ' || o.pincode AS location,
			b.id AS buyer_id, b.f_name || ' ' || b.l_name AS buyer_name,
			b.email AS buyer_email, b.phone AS buyer_phone`).
		Joins("JOIN ownership_records o ON o.transaction_id = t.id").
		Joins("JOIN buyers b ON b.id = t.buyer_id").
		Joins("LEFT JOIN properties p ON p.id = t.property_id").
		Joins("LEFT JOIN categories c ON c.id = p.category_id").
		Where("t.seller_id = ?", sellerID).
		Order("t.created_at desc").
		Order("t.id desc").
		Scan(&txs).Error
	return txs, err
}
