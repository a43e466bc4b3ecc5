// Package testutil paket testleri için sqlite tabanlı veritabanı ve örnek
// kayıtlar sağlar.
package testutil

import (
	"fmt"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"bricks_backend/internal/model"
	"bricks_backend/pkg/database"
)

var seq atomic.Int64

// NewDB bellekte çalışan, migrate edilmiş bir veritabanı açar. Tek bağlantı
// kullanıldığından eşzamanlı işlemler sıraya girer.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, database.Migrate(db, model.All()...))
	return db
}

// PostgresURLEnv gerçek postgres testleri için bağlantı adresini taşır
const PostgresURLEnv = "TEST_DATABASE_URL"

// NewPostgresDB TEST_DATABASE_URL tanımlıysa postgres'e bağlanır, tabloları
// migrate eder ve test öncesi ile sonrasında boşaltır. Tanımlı değilse test
// atlanır. Satır kilitleri sadece burada gerçekten devrededir. Paketler aynı
// veritabanını paylaştığından `go test -p 1 ./...` ile çalıştırılmalıdır.
func NewPostgresDB(t *testing.T) *gorm.DB {
	t.Helper()

	url := os.Getenv(PostgresURLEnv)
	if url == "" {
		t.Skipf("%s not set", PostgresURLEnv)
	}

	db, err := gorm.Open(postgres.Open(url), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, database.Migrate(db, model.All()...))
	truncate(t, db)
	t.Cleanup(func() { truncate(t, db) })
	return db
}

func truncate(t *testing.T, db *gorm.DB) {
	t.Helper()

	tables := make([]string, 0, len(model.All()))
	for _, m := range model.All() {
		stmt := &gorm.Statement{DB: db}
		require.NoError(t, stmt.Parse(m))
		tables = append(tables, stmt.Schema.Table)
	}
	require.NoError(t, db.Exec("TRUNCATE TABLE "+strings.Join(tables, ", ")+" RESTART IDENTITY CASCADE").Error)
}

// ForEachDB fn'i sqlite üzerinde, TEST_DATABASE_URL tanımlıysa postgres
// üzerinde de çalıştırır
func ForEachDB(t *testing.T, fn func(t *testing.T, db *gorm.DB)) {
	t.Run("sqlite", func(t *testing.T) { fn(t, NewDB(t)) })
	t.Run("postgres", func(t *testing.T) { fn(t, NewPostgresDB(t)) })
}

// Statements dry-run modunda üretilen SQL cümlelerini toplar
type Statements struct {
	mu  sync.Mutex
	sql []string
}

func (s *Statements) add(sql string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sql = append(s.sql, sql)
}

func (s *Statements) All() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.sql...)
}

// Matching verilen parçayı içeren cümleleri döner
func (s *Statements) Matching(part string) []string {
	var out []string
	for _, sql := range s.All() {
		if strings.Contains(sql, part) {
			out = append(out, sql)
		}
	}
	return out
}

// NewDryRunDB postgres diyalektiyle SQL üretir ama çalıştırmaz. Bağlantı
// açılmaz, bu yüzden işlem başlatan kodlarla kullanılamaz.
func NewDryRunDB(t *testing.T) (*gorm.DB, *Statements) {
	t.Helper()

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN: "host=localhost user=bricks dbname=bricks sslmode=disable",
	}), &gorm.Config{
		Logger:                 logger.Default.LogMode(logger.Silent),
		DryRun:                 true,
		DisableAutomaticPing:   true,
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	stmts := &Statements{}
	record := func(tx *gorm.DB) { stmts.add(tx.Statement.SQL.String()) }
	require.NoError(t, db.Callback().Query().After("gorm:query").Register("testutil:record_query", record))
	require.NoError(t, db.Callback().Update().After("gorm:update").Register("testutil:record_update", record))
	return db, stmts
}

func next() int64 {
	return seq.Add(1)
}

func contact(prefix string) model.Contact {
	n := next()
	return model.Contact{
		FName:   prefix,
		LName:   fmt.Sprintf("Tester%d", n),
		Email:   fmt.Sprintf("%s_%d@example.com", prefix, n),
		Phone:   "9876543210",
		City:    "Mumbai",
		State:   "Maharashtra",
		Country: "India",
		Pincode: "400001",
	}
}

func CreateSeller(t *testing.T, db *gorm.DB) *model.Seller {
	t.Helper()
	s := &model.Seller{Contact: contact("seller"), Password: "x"}
	require.NoError(t, db.Create(s).Error)
	return s
}

func CreateBuyer(t *testing.T, db *gorm.DB, balance int64) *model.Buyer {
	t.Helper()
	b := &model.Buyer{Contact: contact("buyer"), Password: "x", Balance: decimal.NewFromInt(balance)}
	require.NoError(t, db.Create(b).Error)
	return b
}

func CreateCategory(t *testing.T, db *gorm.DB, name string) *model.Category {
	t.Helper()
	c := &model.Category{CategoryName: name}
	require.NoError(t, db.Create(c).Error)
	return c
}

// PropertyOption örnek mülkü özelleştirir
type PropertyOption func(*model.Property)

func WithLocation(city, state string) PropertyOption {
	return func(p *model.Property) {
		p.City = city
		p.State = state
	}
}

func WithCategory(c *model.Category) PropertyOption {
	return func(p *model.Property) {
		p.CategoryID = c.ID
	}
}

func CreateProperty(t *testing.T, db *gorm.DB, seller *model.Seller, price int64, opts ...PropertyOption) *model.Property {
	t.Helper()
	p := &model.Property{
		SellerID:    seller.ID,
		Name:        fmt.Sprintf("Luxury Villa %d", next()),
		Price:       decimal.NewFromInt(price),
		City:        "Mumbai",
		State:       "Maharashtra",
		Country:     "India",
		Pincode:     "400001",
		Description: "Beautiful villa with pool",
		IsAvailable: true,
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.CategoryID == 0 {
		p.CategoryID = CreateCategory(t, db, fmt.Sprintf("Residential %d", next())).ID
	}
	require.NoError(t, db.Create(p).Error)
	return p
}

// Balance alıcının güncel bakiyesini okur
func Balance(t *testing.T, db *gorm.DB, buyerID uint) decimal.Decimal {
	t.Helper()
	var b model.Buyer
	require.NoError(t, db.First(&b, buyerID).Error)
	return b.Balance
}

func Count(t *testing.T, db *gorm.DB, m interface{}, query string, args ...interface{}) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(m).Where(query, args...).Count(&n).Error)
	return n
}
