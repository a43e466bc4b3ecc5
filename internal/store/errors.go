package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"bricks_backend/pkg/apperror"
	"bricks_backend/pkg/logger"
)

var (
	ErrPropertyUnavailable = apperror.New(apperror.KindNotFound, "property_unavailable", "Property not found or not available")
	ErrPropertyNotFound    = apperror.New(apperror.KindNotFound, "property_not_found", "Property not found")
	ErrBuyerNotFound       = apperror.New(apperror.KindNotFound, "buyer_not_found", "Buyer not found")
	ErrSellerNotFound      = apperror.New(apperror.KindNotFound, "seller_not_found", "Seller not found")
	ErrInsufficientFunds   = apperror.New(apperror.KindPreconditionFailed, "insufficient_funds", "Insufficient balance")
	ErrInvalidAmount       = apperror.New(apperror.KindPreconditionFailed, "invalid_amount", "Invalid amount")
	ErrPropertySold        = apperror.New(apperror.KindPreconditionFailed, "property_sold", "Cannot delete sold property")
	ErrLockConflict        = apperror.New(apperror.KindConflict, "lock_conflict", "Too much contention, please retry")
)

// Postgres serialization_failure ve deadlock_detected kodları
const (
	sqlStateSerializationFailure = "40001"
	sqlStateDeadlockDetected     = "40P01"
)

const maxLockRetries = 3

// IsRetryable işlem kilit çakışması yüzünden geri alındıysa true döner
func IsRetryable(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == sqlStateSerializationFailure || pgErr.Code == sqlStateDeadlockDetected
	}
	return false
}

// InTx fn'i tek bir işlem içinde çalıştırır. Kilit çakışmasında işlem
// baştan tekrar edilir, diğer hatalar olduğu gibi döner.
func InTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	var err error
	for attempt := 1; attempt <= maxLockRetries; attempt++ {
		err = db.WithContext(ctx).Transaction(fn)
		if err == nil || !IsRetryable(err) {
			return err
		}
		logger.Log.WithError(err).WithField("attempt", attempt).Warn("Transaction lost a lock race, retrying")
	}
	return ErrLockConflict.Wrap(err)
}
