package auth

import (
	"testing"
	"time"

	"github.com/nvoronin/daybook/internal/common"
)

func TestGenerateAndParse_Success(t *testing.T) {
	t.Parallel()

	secret := []byte("super-secret")
	deviceID := "laptop-1"

	tok, err := GenerateToken(deviceID, secret, time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	gotDeviceID, err := GetDeviceIDFromToken(tok, secret)
	if err != nil {
		t.Fatalf("GetDeviceIDFromToken error: %v", err)
	}
	if gotDeviceID != deviceID {
		t.Fatalf("deviceID mismatch: got %q want %q", gotDeviceID, deviceID)
	}
}

func TestGetDeviceIDFromToken_Expired(t *testing.T) {
	t.Parallel()

	secret := []byte("secret")

	tok, err := GenerateToken("d1", secret, -1*time.Second)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	_, err = GetDeviceIDFromToken(tok, secret)
	if err != common.ErrTokenExpired {
		t.Fatalf("expected common.ErrTokenExpired, got %v", err)
	}
}

func TestGetDeviceIDFromToken_WrongSecret(t *testing.T) {
	t.Parallel()

	tok, err := GenerateToken("d2", []byte("right-secret"), time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	_, err = GetDeviceIDFromToken(tok, []byte("wrong-secret"))
	if err != common.ErrInvalidToken {
		t.Fatalf("expected common.ErrInvalidToken, got %v", err)
	}
}

func TestGetDeviceIDFromToken_Garbage(t *testing.T) {
	t.Parallel()

	_, err := GetDeviceIDFromToken("not-a-token", []byte("secret"))
	if err != common.ErrInvalidToken {
		t.Fatalf("expected common.ErrInvalidToken, got %v", err)
	}
}
