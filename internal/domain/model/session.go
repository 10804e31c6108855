package model

import "time"

// どちらの画面のセッションか
type SessionSurface string

const (
	SurfaceStore SessionSurface = "store"
	SurfaceAdmin SessionSurface = "admin"
)

// ログインセッション
// cookieには平文トークン、DBにはsha256ハッシュだけを持つ
type Session struct {
	ID        string         `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    int64          `gorm:"not null;index" json:"user_id"`
	TokenHash string         `gorm:"not null;uniqueIndex" json:"-"`
	Surface   SessionSurface `gorm:"type:varchar(10);not null" json:"surface"`
	ExpiresAt time.Time      `gorm:"not null;index" json:"expires_at"`
	CreatedAt time.Time      `gorm:"not null;autoCreateTime" json:"created_at"`
}
