package model

import "errors"

var ErrImmutableRecord = errors.New("immutable_record")

// All migrate sırası önemlidir, yabancı anahtarlar önce oluşturulan tablolara işaret eder
func All() []interface{} {
	return []interface{}{
		&Seller{},
		&Buyer{},
		&Category{},
		&Property{},
		&Transaction{},
		&OwnershipRecord{},
		&WishlistItem{},
		&Inquiry{},
		&LoginHistory{},
	}
}
