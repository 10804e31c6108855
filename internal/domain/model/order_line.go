package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// 注文明細
// 商品名と単価は注文時点のスナップショット（後の価格変更の影響を受けない）
type OrderLine struct {
	ID          int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID     int64           `gorm:"not null;index" json:"order_id"`
	ProductID   int64           `gorm:"not null;index" json:"product_id"`
	ProductName string          `gorm:"type:varchar(255);not null" json:"product_name"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"unit_price"`
	Quantity    int64           `gorm:"not null" json:"quantity"`
	CreatedAt   time.Time       `gorm:"not null;autoCreateTime" json:"created_at"`
}
