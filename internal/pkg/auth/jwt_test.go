package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

func TestIssueAndValidate(t *testing.T) {
	svc := NewJWTService(JWTConfig{SecretKey: "s3cret", TokenIssuer: "eventvault"})
	userID := uuid.New()

	token, err := svc.IssueToken(userID, "host@example.com", time.Hour)
	if err != nil {
		t.Fatalf("IssueToken() error = %v", err)
	}

	claims, err := svc.ValidateAndExtractClaims(token)
	if err != nil {
		t.Fatalf("ValidateAndExtractClaims() error = %v", err)
	}
	got, _ := claims.UserID()
	if got != userID {
		t.Errorf("UserID() = %s, want %s", got, userID)
	}
	if claims.Email != "host@example.com" {
		t.Errorf("Email = %q", claims.Email)
	}
}

func TestValidateExpired(t *testing.T) {
	svc := NewJWTService(JWTConfig{SecretKey: "s3cret"})
	token, err := svc.IssueToken(uuid.New(), "", -time.Minute)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := svc.ValidateToken(token); !errors.Is(err, ErrExpiredToken) {
		t.Errorf("ValidateToken() error = %v, want ErrExpiredToken", err)
	}
}

func TestValidateWrongSecretAndIssuer(t *testing.T) {
	issuer := NewJWTService(JWTConfig{SecretKey: "one", TokenIssuer: "a"})
	token, _ := issuer.IssueToken(uuid.New(), "", time.Hour)

	if _, err := NewJWTService(JWTConfig{SecretKey: "two", TokenIssuer: "a"}).ValidateToken(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("wrong secret: error = %v", err)
	}
	if _, err := NewJWTService(JWTConfig{SecretKey: "one", TokenIssuer: "b"}).ValidateToken(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("wrong issuer: error = %v", err)
	}
}

func TestValidateRejectsNonUUIDSubject(t *testing.T) {
	claims := &Claims{RegisteredClaims: jwt.RegisteredClaims{
		Subject:   "42",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("k"))
	if err != nil {
		t.Fatal(err)
	}

	svc := NewJWTService(JWTConfig{SecretKey: "k"})
	if _, err := svc.ValidateAndExtractClaims(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("error = %v, want ErrInvalidToken", err)
	}
}

func TestExtractBearerToken(t *testing.T) {
	tests := []struct {
		header  string
		want    string
		wantErr bool
	}{
		{"Bearer a.b.c", "a.b.c", false},
		{"bearer a.b.c", "a.b.c", false},
		{"a.b.c", "a.b.c", false},
		{"", "", true},
		{"Basic Zm9vOmJhcg==", "", true},
	}

	for _, tt := range tests {
		got, err := ExtractBearerToken(tt.header)
		if (err != nil) != tt.wantErr {
			t.Errorf("ExtractBearerToken(%q) error = %v", tt.header, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ExtractBearerToken(%q) = %q, want %q", tt.header, got, tt.want)
		}
	}
}
