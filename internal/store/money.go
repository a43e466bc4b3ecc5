package store

import "github.com/shopspring/decimal"

// MaxAmount numeric(14,2) para kolonlarının tutabileceği en büyük değer
var MaxAmount = decimal.RequireFromString("999999999999.99")

// ValidAmount tutarın pozitif olduğunu, en fazla iki ondalık hane taşıdığını
// ve kolon sınırını aşmadığını kontrol eder
func ValidAmount(amount decimal.Decimal) bool {
	return amount.IsPositive() &&
		amount.Equal(amount.Round(2)) &&
		amount.LessThanOrEqual(MaxAmount)
}
