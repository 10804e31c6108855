package usecase

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"strings"
	"time"

	"stylemart/internal/config"
	"stylemart/internal/domain/model"
	"stylemart/internal/repository"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	//emailが既に使用済み
	ErrEmailTaken = errors.New("email already taken")
	//401 認証失敗（存在有無は出さない）
	ErrInvalidCredentials = errors.New("invalid credentials")
	//セッションが無い・期限切れ・別サーフェス
	ErrNoSession = errors.New("no session")
)

type AuthUsecase struct {
	cfg      config.Config
	users    repository.UserRepository
	profiles repository.ProfileRepository
	sessions repository.SessionRepository
}

func NewAuthUsecase(
	cfg config.Config,
	users repository.UserRepository,
	profiles repository.ProfileRepository,
	sessions repository.SessionRepository,
) *AuthUsecase {
	return &AuthUsecase{
		cfg:      cfg,
		users:    users,
		profiles: profiles,
		sessions: sessions,
	}
}

// 会員登録の入力
type RegisterInput struct {
	FullName string
	Email    string
	Phone    string
	Password string
}

// Register はユーザーとプロフィールを作る。ログイン名=email。
func (u *AuthUsecase) Register(ctx context.Context, in RegisterInput) (*model.User, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))

	// email重複チェック
	existing, err := u.users.FindByEmail(ctx, email)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user := &model.User{
		Email:        email,
		PasswordHash: string(hash),
		Role:         model.RoleUser,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := u.users.Create(ctx, user); err != nil {
		return nil, err
	}

	//ユーザー作成直後にプロフィールも作る
	profile := &model.Profile{
		UserID:    user.ID,
		FullName:  strings.TrimSpace(in.FullName),
		Phone:     strings.TrimSpace(in.Phone),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := u.profiles.Create(ctx, profile); err != nil {
		return nil, err
	}

	return user, nil
}

// Login はemail+passwordで認証する。
// 失敗理由は区別しない（emailの存在を漏らさない）。
func (u *AuthUsecase) Login(ctx context.Context, email string, password string) (*model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := u.users.FindByEmail(ctx, email)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

// StartSession はセッションを作って平文トークンを返す。
// DBにはハッシュだけ保存する。
func (u *AuthUsecase) StartSession(ctx context.Context, userID int64, surface model.SessionSurface) (string, error) {
	plain, hash, err := newRandomTokenAndHash()
	if err != nil {
		return "", err
	}

	now := time.Now()
	session := &model.Session{
		ID:        uuid.NewString(),
		UserID:    userID,
		TokenHash: hash,
		Surface:   surface,
		ExpiresAt: now.Add(u.cfg.SessionTTL),
		CreatedAt: now,
	}

	if err := u.sessions.Create(ctx, session); err != nil {
		return "", err
	}

	return plain, nil
}

// CurrentUser はcookieのトークンからユーザーを引く。
// 期限切れ・サーフェス違いはErrNoSession。
func (u *AuthUsecase) CurrentUser(ctx context.Context, plainToken string, surface model.SessionSurface) (*model.User, error) {
	if plainToken == "" {
		return nil, ErrNoSession
	}

	session, err := u.sessions.FindByTokenHash(ctx, hashToken(plainToken))
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrNoSession
	}
	if err != nil {
		return nil, err
	}

	if session.Surface != surface {
		return nil, ErrNoSession
	}
	if time.Now().After(session.ExpiresAt) {
		//期限切れは消しておく
		_ = u.sessions.DeleteByID(ctx, session.ID)
		return nil, ErrNoSession
	}

	user, err := u.users.FindByID(ctx, session.UserID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrNoSession
	}
	if err != nil {
		return nil, err
	}

	return user, nil
}

// Logout はセッションを破棄する。トークン不明でもエラーにしない。
func (u *AuthUsecase) Logout(ctx context.Context, plainToken string) error {
	if plainToken == "" {
		return nil
	}

	session, err := u.sessions.FindByTokenHash(ctx, hashToken(plainToken))
	if errors.Is(err, repository.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	return u.sessions.DeleteByID(ctx, session.ID)
}

// ProfileOf はチェックアウトの初期値などに使う。無ければnil。
func (u *AuthUsecase) ProfileOf(ctx context.Context, userID int64) (*model.Profile, error) {
	p, err := u.profiles.FindByUserID(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func newRandomTokenAndHash() (plain string, hash string, err error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", "", err
	}

	plain = base64.RawURLEncoding.EncodeToString(b)
	hash = hashToken(plain)
	return plain, hash, nil
}

func hashToken(plain string) string {
	sum := sha256.Sum256([]byte(plain))
	return base64.RawURLEncoding.EncodeToString(sum[:])
}
