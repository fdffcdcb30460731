package token

import (
	"testing"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
)

func signedJWT(t *testing.T, claims gojwt.MapClaims) string {
	t.Helper()
	tok := gojwt.NewWithClaims(gojwt.SigningMethodHS256, claims)
	s, err := tok.SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign test token: %v", err)
	}
	return s
}

func TestDecodeUnverified(t *testing.T) {
	exp := time.Now().Add(time.Hour).Unix()
	raw := signedJWT(t, gojwt.MapClaims{
		"sub": "user-42",
		"iss": "https://auth.example.com/realms/demo",
		"exp": exp,
	})

	claims, err := DecodeUnverified(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if claims.Subject() != "user-42" {
		t.Errorf("Subject = %q", claims.Subject())
	}
	if claims.Issuer() != "https://auth.example.com/realms/demo" {
		t.Errorf("Issuer = %q", claims.Issuer())
	}
	got, ok := claims.Expiry()
	if !ok || got.Unix() != exp {
		t.Errorf("Expiry = %v, %v", got, ok)
	}
}

func TestDecodeUnverified_OpaqueToken(t *testing.T) {
	if _, err := DecodeUnverified("not-a-jwt"); err == nil {
		t.Error("expected error for opaque token")
	}
	if _, err := DecodeUnverified(""); err == nil {
		t.Error("expected error for empty token")
	}
}

// Decoding must not require a valid signature — claims inspection works on
// tokens signed with unknown keys.
func TestDecodeUnverified_IgnoresSignature(t *testing.T) {
	raw := signedJWT(t, gojwt.MapClaims{"sub": "x"})
	tampered := raw[:len(raw)-4] + "AAAA"

	claims, err := DecodeUnverified(tampered)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if claims.Subject() != "x" {
		t.Errorf("Subject = %q", claims.Subject())
	}
}

func TestIssue_DecodesJWTClaims(t *testing.T) {
	raw := signedJWT(t, gojwt.MapClaims{"sub": "user-1"})
	cred := Issue("client_credentials", Issuance{AccessToken: raw})

	if cred.Claims() == nil {
		t.Fatal("expected decoded claims for JWT access token")
	}
	if cred.Claims().Subject() != "user-1" {
		t.Errorf("Subject = %q", cred.Claims().Subject())
	}
}

func TestIssue_OpaqueAccessTokenFallsBackToIDToken(t *testing.T) {
	id := signedJWT(t, gojwt.MapClaims{"sub": "user-2"})
	cred := Issue("authorization_code", Issuance{AccessToken: "opaque", IDToken: id})

	if cred.Claims() == nil || cred.Claims().Subject() != "user-2" {
		t.Errorf("Claims = %v, want ID token claims", cred.Claims())
	}
}

func TestIssue_OpaqueTokensLeaveClaimsNil(t *testing.T) {
	cred := Issue("client_credentials", Issuance{AccessToken: "opaque"})
	if cred.Claims() != nil {
		t.Errorf("Claims = %v, want nil for opaque token", cred.Claims())
	}
}
