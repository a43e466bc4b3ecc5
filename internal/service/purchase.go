package service

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"bricks_backend/internal/model"
	"bricks_backend/internal/store"
	"bricks_backend/pkg/apperror"
	"bricks_backend/pkg/logger"
)

// Receipt başarılı bir satın almanın özeti
type Receipt struct {
	TransactionID uint            `json:"transaction_id"`
	Reference     string          `json:"reference"`
	PropertyName  string          `json:"property_name"`
	SellerName    string          `json:"seller_name"`
	AmountPaid    decimal.Decimal `json:"amount_paid"`
	NewBalance    decimal.Decimal `json:"new_balance"`
}

// PurchaseOrchestrator para ve sahiplik devrini tek bir işlem içinde yapar
type PurchaseOrchestrator struct {
	db        *gorm.DB
	ledger    *store.Ledger
	registry  *store.Registry
	txLog     *store.TransactionLog
	ownership *store.OwnershipLog
}

func NewPurchaseOrchestrator(
	db *gorm.DB,
	ledger *store.Ledger,
	registry *store.Registry,
	txLog *store.TransactionLog,
	ownership *store.OwnershipLog,
) *PurchaseOrchestrator {
	return &PurchaseOrchestrator{
		db:        db,
		ledger:    ledger,
		registry:  registry,
		txLog:     txLog,
		ownership: ownership,
	}
}

// Purchase mülkü alıcıya satar.
//
// Sıra: mülk satırı kilitlenir ve satılabilir olmalı, ardından alıcı satırı
// kilitlenir, bakiye fiyatı karşılamalı. Fiyat kilit altında veritabanından
// okunur. İşlem kaydı, bakiye düşümü, satılabilirlik değişimi ve sahiplik
// kaydı birlikte commit edilir ya da hiçbiri görünmez.
func (o *PurchaseOrchestrator) Purchase(ctx context.Context, propertyID, buyerID uint) (*Receipt, error) {
	log := logger.Log.WithFields(logrus.Fields{
		"property_id": propertyID,
		"buyer_id":    buyerID,
	})

	var receipt *Receipt
	err := store.InTx(ctx, o.db, func(tx *gorm.DB) error {
		registry := o.registry.WithTx(tx)
		ledger := o.ledger.WithTx(tx)

		property, err := registry.LockAvailable(ctx, propertyID)
		if err != nil {
			return err
		}

		buyer, err := ledger.LockBuyer(ctx, buyerID)
		if err != nil {
			return err
		}

		if buyer.Balance.LessThan(property.Price) {
			return store.ErrInsufficientFunds.WithDetails(map[string]interface{}{
				"required":  property.Price,
				"available": buyer.Balance,
			})
		}

		var seller model.Seller
		if err := tx.Select("id", "f_name", "l_name").First(&seller, property.SellerID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return store.ErrSellerNotFound
			}
			return err
		}

		transaction := &model.Transaction{
			BuyerID:    buyer.ID,
			PropertyID: property.ID,
			SellerID:   property.SellerID,
			Price:      property.Price,
		}
		if err := o.txLog.WithTx(tx).Record(ctx, transaction); err != nil {
			return err
		}

		newBalance, err := ledger.Debit(ctx, buyer, property.Price)
		if err != nil {
			return err
		}

		if err := registry.MarkUnavailable(ctx, property.ID); err != nil {
			return err
		}

		record := model.SnapshotOwnership(property, buyer.ID, transaction.ID)
		if err := o.ownership.WithTx(tx).RecordOwnership(ctx, record); err != nil {
			return err
		}

		receipt = &Receipt{
			TransactionID: transaction.ID,
			Reference:     transaction.Reference,
			PropertyName:  property.Name,
			SellerName:    seller.FullName(),
			AmountPaid:    property.Price,
			NewBalance:    newBalance,
		}
		return nil
	})
	if err != nil {
		appErr := apperror.From(err)
		if appErr.Kind == apperror.KindInternal {
			log.WithError(err).Error("Purchase rolled back")
		} else {
			log.WithField("reason", appErr.Code).Info("Purchase rejected")
		}
		return nil, appErr
	}

	log.WithFields(logrus.Fields{
		"transaction_id": receipt.TransactionID,
		"amount":         receipt.AmountPaid.String(),
	}).Info("Purchase completed")
	return receipt, nil
}
