package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// GenerateOtp возвращает числовой код фиксированной ширины nDigits
// (для 5 — диапазон 10000..99999), равномерно из crypto/rand.
func GenerateOtp(nDigits int) (string, error) {
	if nDigits <= 0 {
		nDigits = 5
	}
	min := int64(1)
	for i := 1; i < nDigits; i++ {
		min *= 10
	}
	span := min*10 - min // 9*10^(n-1)
	n, err := rand.Int(rand.Reader, big.NewInt(span))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%d", min+n.Int64()), nil
}
