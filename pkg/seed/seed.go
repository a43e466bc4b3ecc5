package seed

import (
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"bricks_backend/internal/model"
	"bricks_backend/pkg/logger"
)

// DemoPassword seed hesaplarının şifresi
const DemoPassword = "password123"

var categoryNames = []string{"Residential", "Apartment", "Villa", "Commercial", "Land"}

// Run kategorileri ve demo hesapları oluşturur. Tekrar çalıştırılabilir.
func Run(db *gorm.DB) error {
	categories := make(map[string]model.Category, len(categoryNames))
	for _, name := range categoryNames {
		category := model.Category{CategoryName: name}
		if err := db.FirstOrCreate(&category, model.Category{CategoryName: name}).Error; err != nil {
			return fmt.Errorf("seed category %s: %w", name, err)
		}
		categories[name] = category
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(DemoPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	seller := model.Seller{
		Contact: model.Contact{
			FName: "Jane", LName: "Smith", Email: "jane.smith@example.com", Phone: "9876543210",
			City: "Mumbai", State: "Maharashtra", Country: "India", Pincode: "400001",
		},
		Password: string(hash),
	}
	if err := db.Where(model.Seller{Contact: model.Contact{Email: seller.Email}}).FirstOrCreate(&seller).Error; err != nil {
		return fmt.Errorf("seed seller: %w", err)
	}

	buyer := model.Buyer{
		Contact: model.Contact{
			FName: "John", LName: "Doe", Email: "john.doe@example.com", Phone: "9123456780",
			City: "Mumbai", State: "Maharashtra", Country: "India", Pincode: "400002",
		},
		Password: string(hash),
	}
	if err := db.Where(model.Buyer{Contact: model.Contact{Email: buyer.Email}}).FirstOrCreate(&buyer).Error; err != nil {
		return fmt.Errorf("seed buyer: %w", err)
	}

	intPtr := func(n int) *int { return &n }
	listings := []model.Property{
		{
			CategoryID: categories["Villa"].ID, Name: "Luxury Villa",
			Price:       decimal.NewFromInt(5000000),
			Description: "Beautiful villa with pool",
			City:        "Mumbai", State: "Maharashtra", Country: "India", Pincode: "400001",
			Bedrooms: intPtr(4), Bathrooms: intPtr(3),
		},
		{
			CategoryID: categories["Apartment"].ID, Name: "Modern Apartment",
			Price:       decimal.NewFromInt(7500000),
			Description: "Sea facing apartment close to the station",
			City:        "Mumbai", State: "Maharashtra", Country: "India", Pincode: "400050",
			Bedrooms: intPtr(3), Bathrooms: intPtr(2),
		},
		{
			CategoryID: categories["Apartment"].ID, Name: "Studio Apartment",
			Price:       decimal.NewFromInt(4500000),
			Description: "Compact studio in the tech corridor",
			City:        "Bangalore", State: "Karnataka", Country: "India", Pincode: "560001",
			Bedrooms: intPtr(1), Bathrooms: intPtr(1),
		},
	}

	for _, listing := range listings {
		listing.SellerID = seller.ID
		listing.IsAvailable = true
		if err := db.Where(model.Property{SellerID: seller.ID, Name: listing.Name}).
			FirstOrCreate(&listing).Error; err != nil {
			return fmt.Errorf("seed property %s: %w", listing.Name, err)
		}
	}

	logger.Log.Info("Seed data created successfully!")
	return nil
}
