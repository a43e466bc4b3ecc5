package controller

import (
	"encoding/json"
	"errors"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"bricks_backend/internal/middleware"
	"bricks_backend/internal/model"
	"bricks_backend/internal/store"
	"bricks_backend/pkg/apperror"
	"bricks_backend/pkg/utils/validation"
)

var errCategoryNotFound = apperror.New(apperror.KindNotFound, "category_not_found", "Category not found")

type PropertyInput struct {
	SellerID    uint             `json:"seller_id" validate:"required"`
	CategoryID  uint             `json:"category_id" validate:"required"`
	Name        string           `json:"name" validate:"required"`
	Price       *decimal.Decimal `json:"price" validate:"required"`
	Description string           `json:"description"`

	City    string `json:"city" validate:"required"`
	State   string `json:"state" validate:"required"`
	Country string `json:"country" validate:"required"`
	Pincode string `json:"pincode" validate:"required"`

	Bedrooms  *int             `json:"bedrooms"`
	Bathrooms *int             `json:"bathrooms"`
	AreaSqft  *decimal.Decimal `json:"area_sqft"`
	Features  json.RawMessage  `json:"features"`
}

// check alan bazlı kuralları sırayla kontrol eder
func (in *PropertyInput) check() error {
	if err := validation.Struct(in); err != nil {
		if errors.Is(err, validation.ErrMissing) {
			return invalid("Required fields missing")
		}
		return invalid(err.Error())
	}
	if !store.ValidAmount(*in.Price) {
		return invalid("Invalid price")
	}
	if in.Bedrooms != nil && *in.Bedrooms < 0 {
		return invalid("Invalid number of bedrooms")
	}
	if in.Bathrooms != nil && *in.Bathrooms < 0 {
		return invalid("Invalid number of bathrooms")
	}
	if in.AreaSqft != nil && !validArea(*in.AreaSqft) {
		return invalid("Invalid area")
	}
	if !validation.IsPincode(in.Pincode) {
		return invalid(validation.ErrPincode.Error())
	}
	return nil
}

// maxArea area_sqft numeric(12,2) kolonunun sınırı
var maxArea = decimal.RequireFromString("9999999999.99")

func validArea(area decimal.Decimal) bool {
	return area.IsPositive() && area.Equal(area.Round(2)) && area.LessThanOrEqual(maxArea)
}

type PropertyController struct {
	db       *gorm.DB
	registry *store.Registry
}

func NewPropertyController(db *gorm.DB, registry *store.Registry) *PropertyController {
	return &PropertyController{db: db, registry: registry}
}

// CreateProperty satıcı adına yeni ilan oluşturur
func (p *PropertyController) CreateProperty(c *fiber.Ctx) error {
	input := new(PropertyInput)
	if err := c.BodyParser(input); err != nil {
		return respondError(c, errInvalidInput)
	}
	if err := input.check(); err != nil {
		return respondError(c, err)
	}

	ctx := c.UserContext()
	if err := p.db.WithContext(ctx).Select("id").First(&model.Seller{}, input.SellerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return respondError(c, store.ErrSellerNotFound)
		}
		return respondError(c, err)
	}
	if err := p.db.WithContext(ctx).Select("id").First(&model.Category{}, input.CategoryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return respondError(c, errCategoryNotFound)
		}
		return respondError(c, err)
	}

	property := model.Property{
		SellerID:    input.SellerID,
		CategoryID:  input.CategoryID,
		Name:        strings.TrimSpace(input.Name),
		Price:       *input.Price,
		Description: input.Description,
		City:        strings.TrimSpace(input.City),
		State:       strings.TrimSpace(input.State),
		Country:     strings.TrimSpace(input.Country),
		Pincode:     input.Pincode,
		Bedrooms:    input.Bedrooms,
		Bathrooms:   input.Bathrooms,
		AreaSqft:    input.AreaSqft,
		IsAvailable: true,
	}
	if len(input.Features) > 0 {
		property.Features = datatypes.JSON(input.Features)
	}

	if err := p.registry.Create(ctx, &property); err != nil {
		return respondError(c, err)
	}

	middleware.Log(c).WithField("property_id", property.ID).Info("Property listed")
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":     "Property added successfully",
		"property_id": property.ID,
		"slug":        property.Slug,
	})
}

func parsePrice(raw string) (*decimal.Decimal, error) {
	if raw == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// ListProperties satılabilir ilanları sorgu filtrelerine göre listeler
func (p *PropertyController) ListProperties(c *fiber.Ctx) error {
	filter := store.PropertyFilter{
		City:  c.Query("city"),
		State: c.Query("state"),
	}

	if raw := c.Query("category_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			return respondError(c, invalid("Invalid category_id"))
		}
		filter.CategoryID = uint(id)
	}

	var err error
	if filter.MinPrice, err = parsePrice(c.Query("min_price")); err != nil {
		return respondError(c, invalid("Invalid min_price"))
	}
	if filter.MaxPrice, err = parsePrice(c.Query("max_price")); err != nil {
		return respondError(c, invalid("Invalid max_price"))
	}

	properties, err := p.registry.ListAvailable(c.UserContext(), filter)
	if err != nil {
		return respondError(c, err)
	}

	message := "Properties retrieved successfully"
	if len(properties) == 0 {
		message = "No properties found matching your criteria"
	}
	return c.JSON(fiber.Map{
		"message":    message,
		"count":      len(properties),
		"properties": properties,
	})
}

func (p *PropertyController) GetProperty(c *fiber.Ctx) error {
	propertyID, ok := paramID(c, "propertyId")
	if !ok {
		return respondError(c, errInvalidID)
	}

	property, err := p.registry.Get(c.UserContext(), propertyID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(property)
}

func (p *PropertyController) ListSellerProperties(c *fiber.Ctx) error {
	sellerID, ok := paramID(c, "sellerId")
	if !ok {
		return respondError(c, errInvalidID)
	}

	properties, err := p.registry.ListBySeller(c.UserContext(), sellerID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(properties)
}

// DeleteProperty CheckPropertyOwnership'ten sonra çalışır
func (p *PropertyController) DeleteProperty(c *fiber.Ctx) error {
	property := c.Locals(middleware.PropertyLocal).(*model.Property)

	if err := p.registry.DeleteAvailable(c.UserContext(), property.ID, property.SellerID); err != nil {
		return respondError(c, err)
	}

	middleware.Log(c).WithField("property_id", property.ID).Info("Property deleted")
	return c.JSON(fiber.Map{
		"message": "Property deleted successfully",
	})
}
