package validator

import (
	"strings"
	"unicode"
)

// パスワードの最低文字数
const minPasswordLength = 8

// ありがちなパスワード（小文字で比較）
var commonPasswords = map[string]struct{}{
	"password":    {},
	"password1":   {},
	"password123": {},
	"12345678":    {},
	"123456789":   {},
	"1234567890":  {},
	"qwerty123":   {},
	"qwertyuiop":  {},
	"iloveyou":    {},
	"letmein123":  {},
	"admin123":    {},
	"welcome1":    {},
	"abc12345":    {},
	"sunshine":    {},
	"football":    {},
	"princess":    {},
	"dragon123":   {},
	"monkey123":   {},
	"baseball":    {},
	"superman":    {},
}

// ValidatePassword はパスワードポリシーを確認してエラーメッセージを返す。
// 問題なければ空文字。
// ルール: 最低8文字 / 数字だけは不可 / よくあるパスワード不可 / email・氏名に似すぎは不可
func ValidatePassword(password string, email string, fullName string) string {
	if len(password) < minPasswordLength {
		return "Password must be at least 8 characters"
	}

	if isAllDigits(password) {
		return "Password cannot be entirely numeric"
	}

	lower := strings.ToLower(password)
	if _, ok := commonPasswords[lower]; ok {
		return "Password is too common"
	}

	//email のローカル部・氏名との類似チェック
	if local, _, found := strings.Cut(strings.ToLower(email), "@"); found && len(local) >= 4 {
		if strings.Contains(lower, local) || strings.Contains(local, lower) {
			return "Password is too similar to your email"
		}
	}
	for _, part := range strings.Fields(strings.ToLower(fullName)) {
		if len(part) < 4 {
			continue
		}
		if strings.Contains(lower, part) {
			return "Password is too similar to your name"
		}
	}

	return ""
}

func isAllDigits(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return len(s) > 0
}
