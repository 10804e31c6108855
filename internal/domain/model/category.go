package model

// カテゴリ（静的な参照データ）
type Category struct {
	ID   int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Slug string `gorm:"type:varchar(100);uniqueIndex;not null" json:"slug"`
	Name string `gorm:"type:varchar(255);not null" json:"name"`
}
