package repository

import (
	"context"
	"errors"

	"stylemart/internal/domain/model"
)

var ErrNotFound = errors.New("not found")

// 保存・取得を約束
type UserRepository interface {
	//新規ユーザー作成
	Create(ctx context.Context, user *model.User) error
	// IDからユーザーを1件取得する。
	FindByID(ctx context.Context, userID int64) (*model.User, error)
	//メールからユーザーを一件取得する。
	FindByEmail(ctx context.Context, email string) (*model.User, error)
}

// プロフィール（連絡先）の保存・取得
type ProfileRepository interface {
	Create(ctx context.Context, profile *model.Profile) error
	FindByUserID(ctx context.Context, userID int64) (*model.Profile, error)
}
