package server

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"gorm.io/gorm"

	"bricks_backend/internal/controller"
	"bricks_backend/internal/middleware"
	"bricks_backend/internal/service"
	"bricks_backend/internal/store"
	"bricks_backend/pkg/config"
	applog "bricks_backend/pkg/logger"
)

// Controllers uygulamanın tüm HTTP handler'ları
type Controllers struct {
	Auth     *controller.AuthController
	Property *controller.PropertyController
	Category *controller.CategoryController
	Wallet   *controller.WalletController
	Purchase *controller.PurchaseController
	Wishlist *controller.WishlistController
	Inquiry  *controller.InquiryController
	Stats    *controller.StatsController
}

// NewControllers store'ları ve servisleri tek bir veritabanı üzerinde kurar
func NewControllers(db *gorm.DB) *Controllers {
	ledger := store.NewLedger(db)
	registry := store.NewRegistry(db)
	txLog := store.NewTransactionLog(db)
	ownership := store.NewOwnershipLog(db)
	orchestrator := service.NewPurchaseOrchestrator(db, ledger, registry, txLog, ownership)

	return &Controllers{
		Auth:     controller.NewAuthController(db),
		Property: controller.NewPropertyController(db, registry),
		Category: controller.NewCategoryController(db),
		Wallet:   controller.NewWalletController(ledger),
		Purchase: controller.NewPurchaseController(db, orchestrator, txLog, ownership),
		Wishlist: controller.NewWishlistController(db),
		Inquiry:  controller.NewInquiryController(db),
		Stats:    controller.NewStatsController(db),
	}
}

func setupRoutes(app *fiber.App, db *gorm.DB, h *Controllers) {
	api := app.Group("/api")

	// Auth Routes
	api.Post("/seller/register", h.Auth.RegisterSeller)
	api.Post("/seller/login", h.Auth.LoginSeller)
	api.Post("/buyer/register", h.Auth.RegisterBuyer)
	api.Post("/buyer/login", h.Auth.LoginBuyer)

	// Category Routes
	api.Get("/categories", h.Category.ListCategories)
	api.Post("/categories", h.Category.CreateCategory)

	// Property Routes
	properties := api.Group("/properties")
	properties.Get("/", h.Property.ListProperties)
	properties.Post("/", h.Property.CreateProperty)
	properties.Get("/:propertyId", h.Property.GetProperty)
	properties.Delete("/:propertyId", middleware.CheckPropertyOwnership(db), h.Property.DeleteProperty)
	properties.Post("/:propertyId/buy", h.Purchase.BuyProperty)
	properties.Post("/:propertyId/wishlist", h.Wishlist.AddToWishlist)
	properties.Post("/:propertyId/inquire", h.Inquiry.CreateInquiry)

	// Wallet Routes
	api.Get("/wallet/:buyerId", h.Wallet.GetBalance)
	api.Post("/wallet/:buyerId/add", h.Wallet.AddFunds)

	// Buyer Routes
	api.Get("/wishlist/:buyerId", h.Wishlist.GetWishlist)
	api.Get("/owned-properties/:buyerId", h.Purchase.OwnedProperties)

	// Seller Routes
	api.Get("/seller-properties/:sellerId", h.Property.ListSellerProperties)
	api.Get("/seller-sold-properties/:sellerId", h.Purchase.SellerSoldProperties)
	api.Get("/seller-transactions/:sellerId", h.Purchase.SellerTransactions)
	api.Get("/seller-inquiries/:sellerId", h.Inquiry.ListSellerInquiries)
	api.Get("/seller-stats/:sellerId", h.Stats.GetSellerStats)
	api.Post("/inquiries/:inquiryId/respond", h.Inquiry.RespondInquiry)
}

// New middleware'leri ve route'ları kurulmuş bir fiber uygulaması döner
func New(db *gorm.DB, cfg config.ServerConfig) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName: "bricks",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			var fiberErr *fiber.Error
			if errors.As(err, &fiberErr) {
				return c.Status(fiberErr.Code).JSON(fiber.Map{
					"error": fiberErr.Message,
				})
			}
			middleware.Log(c).WithError(err).Error("Unhandled error")
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Server error",
				"code":  "internal_server_error",
			})
		},
	})

	app.Use(recover.New())
	app.Use(middleware.RequestLogger())
	app.Use(logger.New(logger.Config{
		Output: applog.Log.Writer(),
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
	}))

	setupRoutes(app, db, NewControllers(db))
	return app
}
