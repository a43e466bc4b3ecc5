package model

import (
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Contact alıcı ve satıcının ortak iletişim alanları
type Contact struct {
	FName   string `json:"fname" gorm:"not null"`
	LName   string `json:"lname" gorm:"not null"`
	Email   string `json:"email" gorm:"uniqueIndex;not null"`
	Phone   string `json:"phone" gorm:"size:10;not null"`
	City    string `json:"city" gorm:"not null"`
	State   string `json:"state" gorm:"not null"`
	Country string `json:"country" gorm:"not null"`
	Pincode string `json:"pincode" gorm:"size:6;not null"`
}

func (c Contact) FullName() string {
	return strings.TrimSpace(c.FName + " " + c.LName)
}

type Seller struct {
	gorm.Model
	Contact
	Password string `json:"-" gorm:"not null"`
}

type Buyer struct {
	gorm.Model
	Contact
	Password string          `json:"-" gorm:"not null"`
	Balance  decimal.Decimal `json:"balance" gorm:"type:numeric(14,2);not null;default:0;check:balance >= 0"`
}

func (s *Seller) GetPublicProfile() map[string]interface{} {
	return map[string]interface{}{
		"seller_id": s.ID,
		"fname":     s.FName,
		"lname":     s.LName,
		"email":     s.Email,
		"phone":     s.Phone,
		"city":      s.City,
		"state":     s.State,
		"country":   s.Country,
		"pincode":   s.Pincode,
	}
}

func (b *Buyer) GetPublicProfile() map[string]interface{} {
	return map[string]interface{}{
		"buyer_id": b.ID,
		"fname":    b.FName,
		"lname":    b.LName,
		"email":    b.Email,
		"phone":    b.Phone,
		"city":     b.City,
		"state":    b.State,
		"country":  b.Country,
		"pincode":  b.Pincode,
		"balance":  b.Balance,
	}
}
