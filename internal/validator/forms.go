package validator

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// サインアップフォームの入力
type SignupForm struct {
	FullName  string `validate:"required,max=200"`
	Email     string `validate:"required,email,max=254"`
	Phone     string `validate:"required,max=20"`
	Password1 string `validate:"required"`
	Password2 string `validate:"required,eqfield=Password1"`
}

// ログインフォームの入力
type LoginForm struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
}

// チェックアウトフォームの入力
// 空欄はProfileの値で補うので必須チェックはしない
type CheckoutForm struct {
	FullName string `validate:"max=200"`
	Address  string `validate:"max=1000"`
	Phone    string `validate:"max=20"`
}

// ValidateSignup はフィールドごとのエラーを返す（問題なければnil）。
func ValidateSignup(f SignupForm) map[string]string {
	errs := validateStruct(f)

	//パスワードポリシーはタグでは書けないので別途
	if errs["Password1"] == "" {
		if msg := ValidatePassword(f.Password1, f.Email, f.FullName); msg != "" {
			if errs == nil {
				errs = make(map[string]string)
			}
			errs["Password1"] = msg
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

func ValidateLogin(f LoginForm) map[string]string {
	return validateStruct(f)
}

func ValidateCheckout(f CheckoutForm) map[string]string {
	return validateStruct(f)
}

func validateStruct(data interface{}) map[string]string {
	err := validate.Struct(data)
	if err == nil {
		return nil
	}

	errors := make(map[string]string)
	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		for _, err := range validationErrors {
			errors[err.Field()] = getSimpleErrorMessage(err)
		}
	}

	return errors
}

func getSimpleErrorMessage(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return "This field is required"
	case "email":
		return "Invalid email format"
	case "min":
		return fmt.Sprintf("Minimum length is %s", err.Param())
	case "max":
		return fmt.Sprintf("Maximum length is %s", err.Param())
	case "eqfield":
		return "Passwords do not match"
	default:
		return fmt.Sprintf("Invalid %s field", err.Field())
	}
}

// FormatErrors はエラーmapを1行にまとめる（ログ用）。
func FormatErrors(errors map[string]string) string {
	var msgs []string
	for field, msg := range errors {
		msgs = append(msgs, fmt.Sprintf("%s: %s", field, msg))
	}
	return strings.Join(msgs, "; ")
}
