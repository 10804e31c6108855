package model

import "time"

type OrderStatus string

const (
	OrderStatusPlaced   OrderStatus = "PLACED"
	OrderStatusShipped  OrderStatus = "SHIPPED"
	OrderStatusCanceled OrderStatus = "CANCELED"
)

// 注文。作成後に明細は編集されない
// 合計金額は明細から都度計算する（カラムに持たない）
type Order struct {
	ID        int64       `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    int64       `gorm:"not null;index" json:"user_id"`
	Phone     string      `gorm:"type:varchar(20)" json:"phone"`
	Address   string      `gorm:"type:text" json:"address"`
	Status    OrderStatus `gorm:"type:varchar(20);not null;index" json:"status"`
	CreatedAt time.Time   `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time   `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
