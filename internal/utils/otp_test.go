package utils

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGenerateOtpWidth(t *testing.T) {
	for i := 0; i < 200; i++ {
		code, err := GenerateOtp(5)
		require.NoError(t, err)
		require.Len(t, code, 5)
		require.NotEqual(t, byte('0'), code[0])
	}
}

func TestGenerateOtpDefaultsToFiveDigits(t *testing.T) {
	code, err := GenerateOtp(0)
	require.NoError(t, err)
	require.Len(t, code, 5)
}
