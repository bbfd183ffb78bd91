package auth

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/nipunivithana/cms-backend/internal/app/models"
	"github.com/nipunivithana/cms-backend/internal/pkg/apperrors"
)

func testConfig() JWTConfig {
	return JWTConfig{
		SecretKey:      "unit-test-secret",
		AccessTokenExp: time.Hour,
		TokenIssuer:    "cms.test",
	}
}

func testUser() *models.User {
	return &models.User{
		ID:    42,
		Email: "lecturer@cms.local",
		Role:  models.RoleLecturer,
	}
}

func TestGenerateAndValidateToken(t *testing.T) {
	svc := NewJWTService(testConfig())

	token, expiresIn, err := svc.GenerateToken(testUser())
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	if expiresIn != 3600 {
		t.Errorf("expiresIn = %d, want 3600", expiresIn)
	}

	claims, err := svc.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if claims.UserID != 42 {
		t.Errorf("UserID = %d, want 42", claims.UserID)
	}
	if claims.Email != "lecturer@cms.local" {
		t.Errorf("Email = %s", claims.Email)
	}
	if claims.Role != models.RoleLecturer {
		t.Errorf("Role = %s, want LECTURER", claims.Role)
	}
	if claims.Issuer != "cms.test" {
		t.Errorf("Issuer = %s, want cms.test", claims.Issuer)
	}
}

func TestValidateTokenExpired(t *testing.T) {
	svc := NewJWTService(testConfig())
	issued := time.Now()
	svc.now = func() time.Time { return issued }

	token, _, err := svc.GenerateToken(testUser())
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	svc.now = func() time.Time { return issued.Add(time.Hour + time.Minute) }
	_, err = svc.ValidateToken(token)
	if !errors.Is(err, apperrors.ErrTokenExpired) {
		t.Errorf("ValidateToken = %v, want ErrTokenExpired", err)
	}

	// Just inside the window the token is still good
	svc.now = func() time.Time { return issued.Add(time.Hour - time.Minute) }
	if _, err := svc.ValidateToken(token); err != nil {
		t.Errorf("ValidateToken before expiry: %v", err)
	}
}

func TestValidateTokenWrongKey(t *testing.T) {
	issuer := NewJWTService(testConfig())
	token, _, err := issuer.GenerateToken(testUser())
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	other := testConfig()
	other.SecretKey = "a-different-secret"
	_, err = NewJWTService(other).ValidateToken(token)
	if !errors.Is(err, apperrors.ErrTokenBadSignature) {
		t.Errorf("ValidateToken = %v, want ErrTokenBadSignature", err)
	}
}

// flipChar alters one character of a token segment so the wire bytes no
// longer match what was signed.
func flipChar(t *testing.T, s string, i int) string {
	t.Helper()
	b := []byte(s)
	if b[i] == 'A' {
		b[i] = 'B'
	} else {
		b[i] = 'A'
	}
	return string(b)
}

func TestValidateTokenTampered(t *testing.T) {
	svc := NewJWTService(testConfig())
	token, _, err := svc.GenerateToken(testUser())
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		t.Fatalf("token has %d segments, want 3", len(parts))
	}

	// Corrupted signature fails verification
	sig := flipChar(t, parts[2], len(parts[2])/2)
	tampered := parts[0] + "." + parts[1] + "." + sig
	if _, err := svc.ValidateToken(tampered); !errors.Is(err, apperrors.ErrTokenBadSignature) {
		t.Errorf("signature flip: ValidateToken = %v, want ErrTokenBadSignature", err)
	}

	// Corrupted payload no longer matches the signature. Depending on
	// where the flip lands the payload may not even decode, so only the
	// rejection itself is pinned down.
	payload := flipChar(t, parts[1], len(parts[1])/2)
	tampered = parts[0] + "." + payload + "." + parts[2]
	claims, err := svc.ValidateToken(tampered)
	if err == nil || claims != nil {
		t.Errorf("payload flip: ValidateToken = (%v, %v), want rejection", claims, err)
	}
}

func TestValidateTokenMalformed(t *testing.T) {
	svc := NewJWTService(testConfig())

	for _, token := range []string{"", "not-a-token", "aaa.bbb.ccc"} {
		_, err := svc.ValidateToken(token)
		if !errors.Is(err, apperrors.ErrTokenMalformed) {
			t.Errorf("ValidateToken(%q) = %v, want ErrTokenMalformed", token, err)
		}
	}
}

func TestValidateTokenRejectsEmptyIdentity(t *testing.T) {
	svc := NewJWTService(testConfig())

	token, _, err := svc.GenerateToken(&models.User{ID: 0, Email: "x@cms.local", Role: models.RoleStudent})
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	if _, err := svc.ValidateToken(token); !errors.Is(err, apperrors.ErrTokenMalformed) {
		t.Errorf("ValidateToken = %v, want ErrTokenMalformed for missing user id", err)
	}
}

func TestExtractBearerToken(t *testing.T) {
	token, err := ExtractBearerToken("Bearer abc.def.ghi")
	if err != nil {
		t.Fatalf("ExtractBearerToken: %v", err)
	}
	if token != "abc.def.ghi" {
		t.Errorf("token = %s", token)
	}

	if _, err := ExtractBearerToken(""); !errors.Is(err, apperrors.ErrTokenMalformed) {
		t.Errorf("empty header = %v, want ErrTokenMalformed", err)
	}

	// A raw token without the Bearer prefix is accepted as-is
	token, err = ExtractBearerToken("abc.def.ghi")
	if err != nil || token != "abc.def.ghi" {
		t.Errorf("raw token = (%s, %v)", token, err)
	}
}
