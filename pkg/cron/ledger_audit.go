package cron

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"bricks_backend/pkg/logger"
)

// Report denetimde bulunan tutarsızlıkları id listeleri olarak tutar
type Report struct {
	NegativeBalances    []uint `json:"negative_balances"`
	OversoldProperties  []uint `json:"oversold_properties"`
	MissingTransaction  []uint `json:"missing_transaction"`
	MissingOwnership    []uint `json:"missing_ownership"`
	MismatchedOwnership []uint `json:"mismatched_ownership"`
}

func (r Report) OK() bool {
	return len(r.NegativeBalances) == 0 &&
		len(r.OversoldProperties) == 0 &&
		len(r.MissingTransaction) == 0 &&
		len(r.MissingOwnership) == 0 &&
		len(r.MismatchedOwnership) == 0
}

var auditQueries = []struct {
	name string
	sql  string
	dest func(*Report) *[]uint
}{
	{
		name: "negative_balances",
		sql:  `SELECT id FROM buyers WHERE deleted_at IS NULL AND balance < 0 ORDER BY id`,
		dest: func(r *Report) *[]uint { return &r.NegativeBalances },
	},
	{
		name: "oversold_properties",
		sql:  `SELECT property_id FROM transactions GROUP BY property_id HAVING COUNT(*) > 1 ORDER BY property_id`,
		dest: func(r *Report) *[]uint { return &r.OversoldProperties },
	},
	{
		name: "missing_transaction",
		sql: `SELECT p.id FROM properties p
			WHERE p.deleted_at IS NULL AND p.is_available = false
			AND NOT EXISTS (SELECT 1 FROM transactions t WHERE t.property_id = p.id)
			ORDER BY p.id`,
		dest: func(r *Report) *[]uint { return &r.MissingTransaction },
	},
	{
		name: "missing_ownership",
		sql: `SELECT p.id FROM properties p
			WHERE p.deleted_at IS NULL AND p.is_available = false
			AND NOT EXISTS (SELECT 1 FROM ownership_records o WHERE o.property_id = p.id)
			ORDER BY p.id`,
		dest: func(r *Report) *[]uint { return &r.MissingOwnership },
	},
	{
		name: "mismatched_ownership",
		sql: `SELECT t.id FROM transactions t
			JOIN ownership_records o ON o.transaction_id = t.id
			WHERE o.buyer_id <> t.buyer_id OR o.seller_id <> t.seller_id OR o.property_id <> t.property_id
			ORDER BY t.id`,
		dest: func(r *Report) *[]uint { return &r.MismatchedOwnership },
	},
}

// Audit defter ile sahiplik kayıtlarının birbiriyle tutarlı olduğunu kontrol eder
func Audit(ctx context.Context, db *gorm.DB) (Report, error) {
	var report Report
	for _, q := range auditQueries {
		ids := []uint{}
		if err := db.WithContext(ctx).Raw(q.sql).Scan(&ids).Error; err != nil {
			return report, fmt.Errorf("audit %s: %w", q.name, err)
		}
		*q.dest(&report) = ids
	}
	return report, nil
}

func runAudit(db *gorm.DB) {
	logger.Log.Debug("Running ledger audit...")

	report, err := Audit(context.Background(), db)
	if err != nil {
		logger.Log.WithError(err).Error("Ledger audit failed")
		return
	}

	if report.OK() {
		logger.Log.Info("Ledger audit passed")
		return
	}

	logger.Log.WithFields(logrus.Fields{
		"negative_balances":    report.NegativeBalances,
		"oversold_properties":  report.OversoldProperties,
		"missing_transaction":  report.MissingTransaction,
		"missing_ownership":    report.MissingOwnership,
		"mismatched_ownership": report.MismatchedOwnership,
	}).Error("Ledger audit found inconsistencies")
}

// InitLedgerAuditCron denetimi verilen cron ifadesine göre çalıştırır.
// Dönen zamanlayıcı kapanışta Stop ile durdurulmalıdır.
func InitLedgerAuditCron(db *gorm.DB, schedule string) (*cron.Cron, error) {
	c := cron.New()

	if _, err := c.AddFunc(schedule, func() {
		runAudit(db)
	}); err != nil {
		return nil, fmt.Errorf("could not initialize ledger audit cron: %w", err)
	}

	c.Start()
	return c, nil
}
