package controller

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"bricks_backend/internal/model"
	"bricks_backend/pkg/apperror"
)

var errCategoryExists = apperror.New(apperror.KindPreconditionFailed, "category_exists", "Category already exists")

type CategoryController struct {
	db *gorm.DB
}

func NewCategoryController(db *gorm.DB) *CategoryController {
	return &CategoryController{db: db}
}

func (cc *CategoryController) ListCategories(c *fiber.Ctx) error {
	categories := []model.Category{}
	if err := cc.db.WithContext(c.UserContext()).Order("category_name").Find(&categories).Error; err != nil {
		return respondError(c, err)
	}
	return c.JSON(categories)
}

func (cc *CategoryController) CreateCategory(c *fiber.Ctx) error {
	input := struct {
		CategoryName string `json:"category_name"`
	}{}
	if err := c.BodyParser(&input); err != nil {
		return respondError(c, errInvalidInput)
	}

	name := strings.TrimSpace(input.CategoryName)
	if name == "" {
		return respondError(c, invalid("Category name is required"))
	}

	// Büyük/küçük harf farkı aynı kategori sayılır
	var existing model.Category
	err := cc.db.WithContext(c.UserContext()).Where("LOWER(category_name) = ?", strings.ToLower(name)).First(&existing).Error
	if err == nil {
		return respondError(c, errCategoryExists)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return respondError(c, err)
	}

	category := model.Category{CategoryName: name}
	if err := cc.db.WithContext(c.UserContext()).Create(&category).Error; err != nil {
		return respondError(c, duplicateAs(err, errCategoryExists))
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":  "Category created successfully",
		"category": category,
	})
}
