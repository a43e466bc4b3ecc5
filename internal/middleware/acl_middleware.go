package middleware

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"bricks_backend/internal/model"
)

// PropertyLocal CheckPropertyOwnership'in bulduğu mülkü tutan Locals anahtarı
const PropertyLocal = "property"

// CheckPropertyOwnership :propertyId parametresindeki mülkün ?sellerId
// sorgusundaki satıcıya ait olduğunu kontrol eder
func CheckPropertyOwnership(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		propertyID, err := strconv.ParseUint(c.Params("propertyId"), 10, 32)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid property ID",
			})
		}

		sellerID, err := strconv.ParseUint(c.Query("sellerId"), 10, 32)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Seller ID is required",
			})
		}

		var property model.Property
		err = db.WithContext(c.UserContext()).
			Where("id = ? AND seller_id = ?", propertyID, sellerID).
			First(&property).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Property not found or unauthorized",
				"code":  "property_not_found",
			})
		}
		if err != nil {
			Log(c).WithError(err).Error("Could not check property ownership")
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Server error",
			})
		}

		c.Locals(PropertyLocal, &property)
		return c.Next()
	}
}
