package controller

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"bricks_backend/internal/model"
	"bricks_backend/internal/service"
	"bricks_backend/internal/store"
)

type PurchaseController struct {
	db           *gorm.DB
	orchestrator *service.PurchaseOrchestrator
	txLog        *store.TransactionLog
	ownership    *store.OwnershipLog
}

func NewPurchaseController(
	db *gorm.DB,
	orchestrator *service.PurchaseOrchestrator,
	txLog *store.TransactionLog,
	ownership *store.OwnershipLog,
) *PurchaseController {
	return &PurchaseController{
		db:           db,
		orchestrator: orchestrator,
		txLog:        txLog,
		ownership:    ownership,
	}
}

// BuyProperty istemciden sadece alıcı id'sini alır, fiyat her zaman
// veritabanından okunur
func (pc *PurchaseController) BuyProperty(c *fiber.Ctx) error {
	propertyID, ok := paramID(c, "propertyId")
	if !ok {
		return respondError(c, errInvalidID)
	}

	input := struct {
		BuyerID uint `json:"buyerId"`
	}{}
	if err := c.BodyParser(&input); err != nil {
		return respondError(c, errInvalidInput)
	}
	if input.BuyerID == 0 {
		return respondError(c, invalid("Buyer ID is required"))
	}

	receipt, err := pc.orchestrator.Purchase(c.UserContext(), propertyID, input.BuyerID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"message":        "Purchase successful",
		"transaction_id": receipt.TransactionID,
		"reference":      receipt.Reference,
		"property_name":  receipt.PropertyName,
		"seller_name":    receipt.SellerName,
		"amount_paid":    receipt.AmountPaid,
		"new_balance":    receipt.NewBalance,
	})
}

func (pc *PurchaseController) OwnedProperties(c *fiber.Ctx) error {
	buyerID, ok := paramID(c, "buyerId")
	if !ok {
		return respondError(c, errInvalidID)
	}

	owned, err := pc.ownership.OwnedBy(c.UserContext(), buyerID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(owned)
}

// sellerParam :sellerId satıcısının var olduğunu kontrol eder
func sellerParam(c *fiber.Ctx, db *gorm.DB) (uint, error) {
	sellerID, ok := paramID(c, "sellerId")
	if !ok {
		return 0, errInvalidID
	}

	err := db.WithContext(c.UserContext()).Select("id").First(&model.Seller{}, sellerID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, store.ErrSellerNotFound
	}
	return sellerID, err
}

func (pc *PurchaseController) SellerSoldProperties(c *fiber.Ctx) error {
	sellerID, err := sellerParam(c, pc.db)
	if err != nil {
		return respondError(c, err)
	}

	sold, err := pc.txLog.SoldBy(c.UserContext(), sellerID)
	if err != nil {
		return respondError(c, err)
	}

	message := "Sold properties retrieved successfully"
	if len(sold) == 0 {
		message = "No sold properties found"
	}
	return c.JSON(fiber.Map{
		"message":    message,
		"properties": sold,
	})
}

func (pc *PurchaseController) SellerTransactions(c *fiber.Ctx) error {
	sellerID, err := sellerParam(c, pc.db)
	if err != nil {
		return respondError(c, err)
	}

	txs, err := pc.txLog.BySeller(c.UserContext(), sellerID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"count":        len(txs),
		"transactions": txs,
	})
}
