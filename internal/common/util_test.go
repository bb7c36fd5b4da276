package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateRandByteArray(t *testing.T) {
	tests := []struct {
		name string
		size int
	}{
		{"session key size", 32},
		{"gcm nonce size", 12},
		{"empty", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := GenerateRandByteArray(tt.size)
			require.Len(t, buf, tt.size)
		})
	}
}

func TestGenerateRandByteArray_NotRepeating(t *testing.T) {
	a := GenerateRandByteArray(32)
	b := GenerateRandByteArray(32)
	assert.NotEqual(t, a, b)
}

func TestWipeByteArray(t *testing.T) {
	buf := []byte("hunter2")
	WipeByteArray(buf)
	for i := range buf {
		require.Zero(t, buf[i])
	}
}

func TestWipeByteArray_Nil(t *testing.T) {
	assert.NotPanics(t, func() { WipeByteArray(nil) })
}
