package store

import (
	"context"
	"errors"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"bricks_backend/internal/model"
)

// PropertyFilter listeleme filtreleri. Boş alanlar uygulanmaz.
type PropertyFilter struct {
	City       string
	State      string
	CategoryID uint
	MinPrice   *decimal.Decimal
	MaxPrice   *decimal.Decimal
}

// Registry mülklerin satılabilirlik durumunu ve satıcı ilişkisini tutar
type Registry struct {
	db *gorm.DB
}

func NewRegistry(db *gorm.DB) *Registry {
	return &Registry{db: db}
}

func (r *Registry) WithTx(tx *gorm.DB) *Registry {
	return &Registry{db: tx}
}

func (r *Registry) Create(ctx context.Context, p *model.Property) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *Registry) Get(ctx context.Context, propertyID uint) (*model.Property, error) {
	var p model.Property
	err := r.db.WithContext(ctx).Preload("Category").First(&p, propertyID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrPropertyNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// LockAvailable satılabilir mülkü yazma kilidi ile okur. Mülk yoksa ya da
// satılmışsa ErrPropertyUnavailable döner. Kilidi bekleyen ikinci alıcı
// kilidi aldığında satırı yeniden değerlendirir ve satılmış görür.
func (r *Registry) LockAvailable(ctx context.Context, propertyID uint) (*model.Property, error) {
	var p model.Property
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ? AND is_available = ?", propertyID, true).
		First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrPropertyUnavailable
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// MarkUnavailable mülkü kalıcı olarak satılmış işaretler. Kilit altında ve
// mülk başına bir kez çağrılmalıdır.
func (r *Registry) MarkUnavailable(ctx context.Context, propertyID uint) error {
	result := r.db.WithContext(ctx).Model(&model.Property{}).
		Where("id = ? AND is_available = ?", propertyID, true).
		Update("is_available", false)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected != 1 {
		return ErrPropertyUnavailable
	}
	return nil
}

// ListAvailable filtrelere uyan satılabilir mülkleri en yeniden eskiye döner.
// Sonuç yoksa boş slice döner.
func (r *Registry) ListAvailable(ctx context.Context, f PropertyFilter) ([]model.Property, error) {
	query := r.db.WithContext(ctx).
		Preload("Category").
		Preload("Seller").
		Where("is_available = ?", true)

	if f.City != "" {
		query = query.Where("LOWER(city) LIKE ? ESCAPE '\\'", containsPattern(f.City))
	}
	if f.State != "" {
		query = query.Where("LOWER(state) LIKE ? ESCAPE '\\'", containsPattern(f.State))
	}
	if f.CategoryID != 0 {
		query = query.Where("category_id = ?", f.CategoryID)
	}
	if f.MinPrice != nil {
		query = query.Where("price >= ?", *f.MinPrice)
	}
	if f.MaxPrice != nil {
		query = query.Where("price <= ?", *f.MaxPrice)
	}

	properties := []model.Property{}
	if err := query.Order("created_at desc").Order("id desc").Find(&properties).Error; err != nil {
		return nil, err
	}
	return properties, nil
}

func (r *Registry) ListBySeller(ctx context.Context, sellerID uint) ([]model.Property, error) {
	properties := []model.Property{}
	err := r.db.WithContext(ctx).
		Preload("Category").
		Where("seller_id = ?", sellerID).
		Order("created_at desc").
		Find(&properties).Error
	return properties, err
}

// DeleteAvailable satıcının henüz satılmamış mülkünü ve istek listesi
// kayıtlarını siler
func (r *Registry) DeleteAvailable(ctx context.Context, propertyID, sellerID uint) error {
	return InTx(ctx, r.db, func(tx *gorm.DB) error {
		var p model.Property
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ? AND seller_id = ?", propertyID, sellerID).
			First(&p).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPropertyNotFound
		}
		if err != nil {
			return err
		}
		if !p.IsAvailable {
			return ErrPropertySold
		}

		if err := tx.Where("property_id = ?", p.ID).Delete(&model.WishlistItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&p).Error
	})
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(strings.TrimSpace(s))) + "%"
}
