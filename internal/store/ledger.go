package store

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"bricks_backend/internal/model"
)

// Ledger alıcı bakiyelerini tutar. Bakiye sadece Credit ve Debit ile değişir.
type Ledger struct {
	db *gorm.DB
}

func NewLedger(db *gorm.DB) *Ledger {
	return &Ledger{db: db}
}

// WithTx ledger'ı verilen işleme bağlar
func (l *Ledger) WithTx(tx *gorm.DB) *Ledger {
	return &Ledger{db: tx}
}

func (l *Ledger) GetBalance(ctx context.Context, buyerID uint) (decimal.Decimal, error) {
	var buyer model.Buyer
	err := l.db.WithContext(ctx).Select("id", "balance").First(&buyer, buyerID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return decimal.Zero, ErrBuyerNotFound
	}
	if err != nil {
		return decimal.Zero, err
	}
	return buyer.Balance, nil
}

// LockBuyer alıcı satırını işlem sonuna kadar yazma kilidi ile okur.
// Bir işlem içinden çağrılmalıdır.
func (l *Ledger) LockBuyer(ctx context.Context, buyerID uint) (*model.Buyer, error) {
	var buyer model.Buyer
	err := l.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&buyer, buyerID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrBuyerNotFound
	}
	if err != nil {
		return nil, err
	}
	return &buyer, nil
}

// Credit bakiyeye para ekler ve yeni bakiyeyi döner. Kuruş altı hane
// taşıyan ya da bakiyeyi kolon sınırının üstüne çıkaran tutarlar reddedilir.
func (l *Ledger) Credit(ctx context.Context, buyerID uint, amount decimal.Decimal) (decimal.Decimal, error) {
	if !ValidAmount(amount) {
		return decimal.Zero, ErrInvalidAmount
	}

	var newBalance decimal.Decimal
	err := InTx(ctx, l.db, func(tx *gorm.DB) error {
		buyer, err := l.WithTx(tx).LockBuyer(ctx, buyerID)
		if err != nil {
			return err
		}

		newBalance = buyer.Balance.Add(amount)
		if newBalance.GreaterThan(MaxAmount) {
			return ErrInvalidAmount
		}
		return l.WithTx(tx).setBalance(ctx, buyer, newBalance)
	})
	if err != nil {
		return decimal.Zero, err
	}
	return newBalance, nil
}

// Debit sadece PurchaseOrchestrator tarafından, alıcı satırı kilitliyken
// çağrılır. Yeterli bakiye çağıran tarafından kontrol edilmiş olmalıdır.
func (l *Ledger) Debit(ctx context.Context, buyer *model.Buyer, amount decimal.Decimal) (decimal.Decimal, error) {
	if !ValidAmount(amount) {
		return decimal.Zero, ErrInvalidAmount
	}

	newBalance := buyer.Balance.Sub(amount)
	if newBalance.IsNegative() {
		return decimal.Zero, ErrInsufficientFunds
	}

	if err := l.setBalance(ctx, buyer, newBalance); err != nil {
		return decimal.Zero, err
	}
	return newBalance, nil
}

func (l *Ledger) setBalance(ctx context.Context, buyer *model.Buyer, balance decimal.Decimal) error {
	result := l.db.WithContext(ctx).Model(&model.Buyer{}).
		Where("id = ?", buyer.ID).
		Update("balance", balance)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected != 1 {
		return ErrBuyerNotFound
	}
	buyer.Balance = balance
	return nil
}
