package flash

import (
	"encoding/gob"

	"github.com/gorilla/sessions"
	"github.com/labstack/echo/v4"
)

// flash用cookieの名前（認証セッションとは別物）
const cookieName = "stylemart_flash"

const (
	LevelSuccess = "success"
	LevelError   = "error"
	LevelInfo    = "info"
)

// 1画面分の通知メッセージ
type Message struct {
	Level string
	Text  string
}

func init() {
	gob.Register(Message{})
}

// 署名付きcookieにflashメッセージを積む
type Store struct {
	store *sessions.CookieStore
}

func NewStore(secret string, secure bool) *Store {
	s := sessions.NewCookieStore([]byte(secret))
	s.Options.HttpOnly = true
	s.Options.Secure = secure
	s.Options.Path = "/"
	return &Store{store: s}
}

// Add は次のレスポンスで表示するメッセージを積む。
func (s *Store) Add(c echo.Context, level string, text string) {
	sess, _ := s.store.Get(c.Request(), cookieName)
	sess.AddFlash(Message{Level: level, Text: text})
	_ = sess.Save(c.Request(), c.Response())
}

// Pop は積まれたメッセージを取り出してクリアする。
func (s *Store) Pop(c echo.Context) []Message {
	sess, _ := s.store.Get(c.Request(), cookieName)

	raw := sess.Flashes()
	if len(raw) > 0 {
		// Flashesで消えた状態を保存する
		_ = sess.Save(c.Request(), c.Response())
	}

	msgs := make([]Message, 0, len(raw))
	for _, v := range raw {
		if m, ok := v.(Message); ok {
			msgs = append(msgs, m)
		}
	}
	return msgs
}
