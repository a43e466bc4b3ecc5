package model

import "time"

const (
	AccountBuyer  = "buyer"
	AccountSeller = "seller"
)

// LoginHistory başarılı girişlerin kaydı
type LoginHistory struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	AccountType string    `json:"account_type" gorm:"size:10;index:idx_login_account;not null"`
	AccountID   uint      `json:"account_id" gorm:"index:idx_login_account;not null"`
	Device      string    `json:"device" gorm:"size:255"` // User-Agent
	IP          string    `json:"ip" gorm:"size:50"`
	CreatedAt   time.Time `json:"created_at" gorm:"autoCreateTime"`
}

func (LoginHistory) TableName() string {
	return "login_history"
}
