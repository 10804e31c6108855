package validator_test

import (
	"testing"

	"stylemart/internal/validator"

	"github.com/stretchr/testify/assert"
)

func TestValidatePassword_TooShort(t *testing.T) {
	msg := validator.ValidatePassword("short1", "taro@example.com", "Taro Yamada")
	assert.Equal(t, "Password must be at least 8 characters", msg)
}

func TestValidatePassword_AllDigits(t *testing.T) {
	msg := validator.ValidatePassword("84920175", "taro@example.com", "Taro Yamada")
	assert.Equal(t, "Password cannot be entirely numeric", msg)
}

func TestValidatePassword_TooCommon(t *testing.T) {
	msg := validator.ValidatePassword("Password123", "taro@example.com", "Taro Yamada")
	assert.Equal(t, "Password is too common", msg)
}

func TestValidatePassword_SimilarToEmail(t *testing.T) {
	msg := validator.ValidatePassword("taro.tanaka99", "taro.tanaka@example.com", "")
	assert.Equal(t, "Password is too similar to your email", msg)
}

func TestValidatePassword_SimilarToName(t *testing.T) {
	msg := validator.ValidatePassword("yamada2024", "x@example.com", "Taro Yamada")
	assert.Equal(t, "Password is too similar to your name", msg)
}

func TestValidatePassword_OK(t *testing.T) {
	msg := validator.ValidatePassword("r3d-bicycle-42", "taro@example.com", "Taro Yamada")
	assert.Empty(t, msg)
}
