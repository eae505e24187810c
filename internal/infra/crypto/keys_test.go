package crypto

import (
	"crypto/x509"
	"encoding/base64"
	"encoding/pem"
	"errors"
	"testing"

	"docvault/internal/domain"
)

func privatePEM(t *testing.T) []byte {
	t.Helper()
	key := testKey(t)
	return pem.EncodeToMemory(&pem.Block{
		Type:  "RSA PRIVATE KEY",
		Bytes: x509.MarshalPKCS1PrivateKey(key),
	})
}

func TestParsePrivateKeyPEM_PKCS1(t *testing.T) {
	key, err := ParsePrivateKeyPEM(privatePEM(t))
	if err != nil {
		t.Fatalf("parse pkcs1: %v", err)
	}
	if key == nil {
		t.Fatal("expected key")
	}
}

func TestParsePrivateKeyPEM_PKCS8(t *testing.T) {
	raw, err := x509.MarshalPKCS8PrivateKey(testKey(t))
	if err != nil {
		t.Fatalf("marshal pkcs8: %v", err)
	}
	encoded := pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: raw})
	if _, err := ParsePrivateKeyPEM(encoded); err != nil {
		t.Fatalf("parse pkcs8: %v", err)
	}
}

func TestParsePrivateKeyPEM_Garbage(t *testing.T) {
	if _, err := ParsePrivateKeyPEM([]byte("not a key")); !errors.Is(err, domain.ErrFormat) {
		t.Fatalf("expected ErrFormat, got %v", err)
	}
}

func TestParsePublicKeyPEM_PKIX(t *testing.T) {
	key := testKey(t)
	raw, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	if err != nil {
		t.Fatalf("marshal pkix: %v", err)
	}
	encoded := pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: raw})
	pub, err := ParsePublicKeyPEM(encoded)
	if err != nil {
		t.Fatalf("parse pkix: %v", err)
	}
	if pub.N.Cmp(key.PublicKey.N) != 0 {
		t.Fatal("public key mismatch")
	}
}

func TestConfigFromPEM_Base64Wrapped(t *testing.T) {
	wrapped := base64.StdEncoding.EncodeToString(privatePEM(t))
	cfg, err := ConfigFromPEM(wrapped, "")
	if err != nil {
		t.Fatalf("config from base64 pem: %v", err)
	}
	if cfg.PrivateKey == nil {
		t.Fatal("expected private key")
	}
}

func TestConfigFromPEM_PlainPEM(t *testing.T) {
	cfg, err := ConfigFromPEM(string(privatePEM(t)), "")
	if err != nil {
		t.Fatalf("config from plain pem: %v", err)
	}
	if cfg.PrivateKey == nil {
		t.Fatal("expected private key")
	}
}

func TestConfigFromPEM_Empty(t *testing.T) {
	if _, err := ConfigFromPEM("", ""); !errors.Is(err, domain.ErrCrypto) {
		t.Fatalf("expected ErrCrypto, got %v", err)
	}
}
