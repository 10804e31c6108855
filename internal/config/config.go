package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// セッションcookieの名前（顧客側／管理側）
const (
	SessionCookieName      = "sessionid"
	AdminSessionCookieName = "admin_sessionid"
	AdminPathPrefix        = "/admin"
)

// Configはアプリ全体の設定
type Config struct {
	Port string // サーバーポート（8080）

	DatabaseURL      string // 指定があればこちらを優先
	PostgresUser     string // DBユーザー
	PostgresPassword string // DBパスワード
	PostgresDB       string // DB名
	PostgresHost     string // DBホスト（localhost）
	PostgresPort     int    // DBポート
	PostgresSSLMode  string

	SessionSecret string        // flash cookieの署名キー
	SessionTTL    time.Duration // ログインセッションの有効期限
	CookieSecure  bool          // Secure属性を付けるか

	GoEnv   string // dev/prod
	LogPath string // ログ出力先（空ならstdoutのみ）
	Debug   bool
}

// Loadは環境変数
func Load() (Config, error) {
	cfg := Config{
		Port: getenv("PORT", "8080"),

		DatabaseURL:      os.Getenv("DATABASE_URL"),
		PostgresUser:     getenv("POSTGRES_USER", "postgres"),
		PostgresPassword: getenv("POSTGRES_PASSWORD", "postgres"),
		PostgresDB:       getenv("POSTGRES_DB", "stylemart"),
		PostgresHost:     getenv("POSTGRES_HOST", "localhost"),
		PostgresSSLMode:  getenv("POSTGRES_SSLMODE", "disable"),

		SessionSecret: os.Getenv("SESSION_SECRET"),
		CookieSecure:  envBool("COOKIE_SECURE", true),

		GoEnv:   getenv("GO_ENV", "dev"),
		LogPath: os.Getenv("LOG_PATH"),
		Debug:   envBool("DEBUG", false),
	}

	pgPort, err := envInt("POSTGRES_PORT", 5432)
	if err != nil {
		return Config{}, err
	}
	cfg.PostgresPort = pgPort

	ttlHours, err := envInt("SESSION_TTL_HOURS", 24*14)
	if err != nil {
		return Config{}, err
	}
	cfg.SessionTTL = time.Duration(ttlHours) * time.Hour

	//必須チェック
	if cfg.SessionSecret == "" {
		return Config{}, fmt.Errorf("SESSION_SECRET is required")
	}

	return cfg, nil
}

func getenv(key string, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}

func envInt(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be number: %w", key, err)
	}
	return i, nil
}

func envBool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	switch v {
	case "1", "true", "TRUE", "True":
		return true
	case "0", "false", "FALSE", "False":
		return false
	default:
		return def
	}
}
