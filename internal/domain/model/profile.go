package model

import "time"

// ユーザー1人につき1件の連絡先情報
type Profile struct {
	ID        int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    int64  `gorm:"not null;uniqueIndex" json:"user_id"`
	FullName  string `gorm:"type:varchar(200);not null" json:"full_name"`
	Phone     string `gorm:"type:varchar(20)" json:"phone"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
