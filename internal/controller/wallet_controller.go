package controller

import (
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"bricks_backend/internal/middleware"
	"bricks_backend/internal/store"
)

type WalletController struct {
	ledger *store.Ledger
}

func NewWalletController(ledger *store.Ledger) *WalletController {
	return &WalletController{ledger: ledger}
}

func (w *WalletController) GetBalance(c *fiber.Ctx) error {
	buyerID, ok := paramID(c, "buyerId")
	if !ok {
		return respondError(c, errInvalidID)
	}

	balance, err := w.ledger.GetBalance(c.UserContext(), buyerID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"balance": balance})
}

// AddFunds alıcının cüzdanına para ekler. Sayı olmayan ya da pozitif
// olmayan tutarlar reddedilir.
func (w *WalletController) AddFunds(c *fiber.Ctx) error {
	buyerID, ok := paramID(c, "buyerId")
	if !ok {
		return respondError(c, errInvalidID)
	}

	input := struct {
		Amount decimal.Decimal `json:"amount"`
	}{}
	if err := c.BodyParser(&input); err != nil {
		return respondError(c, store.ErrInvalidAmount)
	}

	balance, err := w.ledger.Credit(c.UserContext(), buyerID, input.Amount)
	if err != nil {
		return respondError(c, err)
	}

	middleware.Log(c).WithField("buyer_id", buyerID).WithField("amount", input.Amount.String()).Info("Funds added")
	return c.JSON(fiber.Map{
		"message": "Funds added successfully",
		"balance": balance,
	})
}
