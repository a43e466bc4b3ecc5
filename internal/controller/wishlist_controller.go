package controller

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"bricks_backend/internal/model"
	"bricks_backend/internal/store"
	"bricks_backend/pkg/apperror"
)

var errAlreadyWishlisted = apperror.New(apperror.KindConflict, "already_in_wishlist", "Property already in wishlist")

type WishlistController struct {
	db *gorm.DB
}

func NewWishlistController(db *gorm.DB) *WishlistController {
	return &WishlistController{db: db}
}

// AddToWishlist sadece satılabilir mülkleri kabul eder
func (w *WishlistController) AddToWishlist(c *fiber.Ctx) error {
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

	var item model.WishlistItem
	err := store.InTx(c.UserContext(), w.db, func(tx *gorm.DB) error {
		if err := tx.Select("id").Where("id = ? AND is_available = ?", propertyID, true).
			First(&model.Property{}).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return store.ErrPropertyUnavailable
			}
			return err
		}
		if err := tx.Select("id").First(&model.Buyer{}, input.BuyerID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return store.ErrBuyerNotFound
			}
			return err
		}

		var count int64
		if err := tx.Model(&model.WishlistItem{}).
			Where("buyer_id = ? AND property_id = ?", input.BuyerID, propertyID).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return errAlreadyWishlisted
		}

		item = model.WishlistItem{BuyerID: input.BuyerID, PropertyID: propertyID}
		return duplicateAs(tx.Create(&item).Error, errAlreadyWishlisted)
	})
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":     "Property added to wishlist",
		"wishlist_id": item.ID,
	})
}

func (w *WishlistController) GetWishlist(c *fiber.Ctx) error {
	buyerID, ok := paramID(c, "buyerId")
	if !ok {
		return respondError(c, errInvalidID)
	}

	items := []model.WishlistItem{}
	if err := w.db.WithContext(c.UserContext()).
		Preload("Property").
		Preload("Property.Category").
		Where("buyer_id = ?", buyerID).
		Order("created_at desc").
		Find(&items).Error; err != nil {
		return respondError(c, err)
	}

	properties := make([]*model.Property, 0, len(items))
	for _, item := range items {
		if item.Property != nil {
			properties = append(properties, item.Property)
		}
	}
	return c.JSON(properties)
}
