package controller

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"bricks_backend/internal/middleware"
	"bricks_backend/internal/model"
	"bricks_backend/internal/store"
	"bricks_backend/pkg/apperror"
)

var (
	errInquiryNotFound = apperror.New(apperror.KindNotFound, "inquiry_not_found", "Inquiry not found")
	errInquiryAnswered = apperror.New(apperror.KindConflict, "inquiry_already_answered", "Inquiry already answered")
)

type InquiryInput struct {
	BuyerID uint   `json:"buyerId"`
	Message string `json:"message"`
}

// SellerInquiry satıcı panelinde gösterilen soru satırı
type SellerInquiry struct {
	ID            uint       `json:"inquiry_id"`
	PropertyID    uint       `json:"property_id"`
	PropertyTitle string     `json:"property_title"`
	BuyerID       uint       `json:"buyer_id"`
	BuyerName     string     `json:"buyer_name"`
	BuyerEmail    string     `json:"buyer_email"`
	Message       string     `json:"message"`
	Response      string     `json:"response"`
	RespondedAt   *time.Time `json:"responded_at"`
	CreatedAt     time.Time  `json:"date"`
}

type InquiryController struct {
	db *gorm.DB
}

func NewInquiryController(db *gorm.DB) *InquiryController {
	return &InquiryController{db: db}
}

func (ic *InquiryController) CreateInquiry(c *fiber.Ctx) error {
	propertyID, ok := paramID(c, "propertyId")
	if !ok {
		return respondError(c, errInvalidID)
	}

	input := new(InquiryInput)
	if err := c.BodyParser(input); err != nil {
		return respondError(c, errInvalidInput)
	}
	input.Message = strings.TrimSpace(input.Message)
	if input.Message == "" {
		return respondError(c, invalid("Message is required"))
	}
	if input.BuyerID == 0 {
		return respondError(c, invalid("Buyer ID is required"))
	}

	ctx := c.UserContext()
	var property model.Property
	if err := ic.db.WithContext(ctx).Select("id", "seller_id").First(&property, propertyID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return respondError(c, store.ErrPropertyNotFound)
		}
		return respondError(c, err)
	}
	if err := ic.db.WithContext(ctx).Select("id").First(&model.Buyer{}, input.BuyerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return respondError(c, store.ErrBuyerNotFound)
		}
		return respondError(c, err)
	}

	inquiry := model.Inquiry{
		BuyerID:    input.BuyerID,
		PropertyID: property.ID,
		SellerID:   property.SellerID,
		Message:    input.Message,
	}
	if err := ic.db.WithContext(ctx).Create(&inquiry).Error; err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":    "Inquiry sent successfully",
		"inquiry_id": inquiry.ID,
	})
}

func (ic *InquiryController) ListSellerInquiries(c *fiber.Ctx) error {
	sellerID, ok := paramID(c, "sellerId")
	if !ok {
		return respondError(c, errInvalidID)
	}

	inquiries := []SellerInquiry{}
	err := ic.db.WithContext(c.UserContext()).
		Table("inquiries AS i").
		Select(`i.id, i.property_id, p.name AS property_title, i.buyer_id,
			b.f_name || ' ' || b.l_name AS buyer_name, b.email AS buyer_email,
			i.message, i.response, i.responded_at, i.created_at`).
		Joins("JOIN properties p ON p.id = i.property_id").
		Joins("JOIN buyers b ON b.id = i.buyer_id").
		Where("i.seller_id = ? AND i.deleted_at IS NULL", sellerID).
		Order("i.created_at desc").
		Order("i.id desc").
		Scan(&inquiries).Error
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(inquiries)
}

// lockInquiry satıcıya ait soruyu işlem sonuna kadar yazma kilidi ile okur.
// Aynı anda gelen ikinci cevap kilidi aldığında soruyu cevaplanmış görür.
func lockInquiry(ctx context.Context, tx *gorm.DB, inquiryID, sellerID uint) (*model.Inquiry, error) {
	var inquiry model.Inquiry
	err := tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ? AND seller_id = ?", inquiryID, sellerID).
		First(&inquiry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errInquiryNotFound
	}
	if err != nil {
		return nil, err
	}
	return &inquiry, nil
}

// RespondInquiry satıcının kendi ilanına gelen soruyu bir kez cevaplamasını sağlar
func (ic *InquiryController) RespondInquiry(c *fiber.Ctx) error {
	inquiryID, ok := paramID(c, "inquiryId")
	if !ok {
		return respondError(c, errInvalidID)
	}

	input := struct {
		SellerID uint   `json:"seller_id"`
		Message  string `json:"message"`
	}{}
	if err := c.BodyParser(&input); err != nil {
		return respondError(c, errInvalidInput)
	}
	input.Message = strings.TrimSpace(input.Message)
	if input.Message == "" {
		return respondError(c, invalid("Message is required"))
	}

	var inquiry model.Inquiry
	err := store.InTx(c.UserContext(), ic.db, func(tx *gorm.DB) error {
		locked, err := lockInquiry(c.UserContext(), tx, inquiryID, input.SellerID)
		if err != nil {
			return err
		}
		inquiry = *locked
		if inquiry.RespondedAt != nil {
			return errInquiryAnswered
		}

		now := time.Now()
		inquiry.Response = input.Message
		inquiry.RespondedAt = &now
		return tx.Model(&inquiry).Updates(map[string]interface{}{
			"response":     inquiry.Response,
			"responded_at": now,
		}).Error
	})
	if err != nil {
		return respondError(c, err)
	}

	middleware.Log(c).WithField("inquiry_id", inquiry.ID).Info("Inquiry answered")
	return c.JSON(fiber.Map{
		"message": "Response sent successfully",
		"inquiry": inquiry,
	})
}
