package controller

import (
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"bricks_backend/internal/model"
)

// SellerStats satıcı paneli özet istatistikleri
type SellerStats struct {
	TotalListings     int64           `json:"total_listings"`
	AvailableListings int64           `json:"available_listings"`
	SoldListings      int64           `json:"sold_listings"`
	TotalRevenue      decimal.Decimal `json:"total_revenue"`
	OpenInquiries     int64           `json:"open_inquiries"`
}

type StatsController struct {
	db *gorm.DB
}

func NewStatsController(db *gorm.DB) *StatsController {
	return &StatsController{db: db}
}

// GetSellerStats satıcının ilan, satış ve gelir sayılarını döner
func (s *StatsController) GetSellerStats(c *fiber.Ctx) error {
	sellerID, err := sellerParam(c, s.db)
	if err != nil {
		return respondError(c, err)
	}

	db := s.db.WithContext(c.UserContext())
	var stats SellerStats

	// Toplam ve satılabilir ilan sayısı
	if err := db.Model(&model.Property{}).Where("seller_id = ?", sellerID).
		Count(&stats.TotalListings).Error; err != nil {
		return respondError(c, err)
	}
	if err := db.Model(&model.Property{}).Where("seller_id = ? AND is_available = ?", sellerID, true).
		Count(&stats.AvailableListings).Error; err != nil {
		return respondError(c, err)
	}

	// Satışlar işlem kaydından sayılır
	var sales struct {
		Count   int64
		Revenue decimal.NullDecimal
	}
	if err := db.Model(&model.Transaction{}).
		Select("COUNT(*) AS count, SUM(price) AS revenue").
		Where("seller_id = ?", sellerID).
		Scan(&sales).Error; err != nil {
		return respondError(c, err)
	}
	stats.SoldListings = sales.Count
	stats.TotalRevenue = sales.Revenue.Decimal

	if err := db.Model(&model.Inquiry{}).Where("seller_id = ? AND responded_at IS NULL", sellerID).
		Count(&stats.OpenInquiries).Error; err != nil {
		return respondError(c, err)
	}

	return c.JSON(stats)
}
