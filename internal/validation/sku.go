package validation

import (
	"fmt"
	"regexp"
)

// SKUPattern определяет допустимый формат артикула
// Латинские буквы (a-z, A-Z), цифры (0-9), дефис (-)
// Длина: 2-64 символа
var SKUPattern = regexp.MustCompile(`^[a-zA-Z0-9-]{2,64}$`)

const (
	// MinSKULen минимальная длина артикула
	MinSKULen = 2
	// MaxSKULen максимальная длина артикула
	MaxSKULen = 64
)

// ValidateSKU проверяет, что артикул соответствует требованиям
// Формат: латинские буквы (a-z, A-Z), цифры (0-9), дефис (-)
// Длина: 2-64 символа
func ValidateSKU(sku string) error {
	if sku == "" {
		return fmt.Errorf("sku cannot be empty")
	}

	if len(sku) < MinSKULen {
		return fmt.Errorf("sku must be at least %d characters long", MinSKULen)
	}

	if len(sku) > MaxSKULen {
		return fmt.Errorf("sku must not exceed %d characters", MaxSKULen)
	}

	if !SKUPattern.MatchString(sku) {
		return fmt.Errorf("sku can only contain letters (a-z, A-Z), numbers (0-9), and hyphens (-)")
	}

	return nil
}
