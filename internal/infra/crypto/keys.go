package crypto

import (
	"crypto/rsa"
	"crypto/x509"
	"encoding/base64"
	"encoding/pem"
	"fmt"

	"docvault/internal/domain"
)

// Key material arrives through process configuration as PEM, optionally
// base64-wrapped so it survives environment-variable transport.

func ParsePrivateKeyPEM(raw []byte) (*rsa.PrivateKey, error) {
	block, _ := pem.Decode(raw)
	if block == nil {
		return nil, fmt.Errorf("%w: no PEM block in private key", domain.ErrFormat)
	}
	if key, err := x509.ParsePKCS1PrivateKey(block.Bytes); err == nil {
		return key, nil
	}
	parsed, err := x509.ParsePKCS8PrivateKey(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("%w: parse private key: %v", domain.ErrFormat, err)
	}
	key, ok := parsed.(*rsa.PrivateKey)
	if !ok {
		return nil, fmt.Errorf("%w: private key is not RSA", domain.ErrFormat)
	}
	return key, nil
}

func ParsePublicKeyPEM(raw []byte) (*rsa.PublicKey, error) {
	block, _ := pem.Decode(raw)
	if block == nil {
		return nil, fmt.Errorf("%w: no PEM block in public key", domain.ErrFormat)
	}
	if key, err := x509.ParsePKCS1PublicKey(block.Bytes); err == nil {
		return key, nil
	}
	parsed, err := x509.ParsePKIXPublicKey(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("%w: parse public key: %v", domain.ErrFormat, err)
	}
	key, ok := parsed.(*rsa.PublicKey)
	if !ok {
		return nil, fmt.Errorf("%w: public key is not RSA", domain.ErrFormat)
	}
	return key, nil
}

// ConfigFromPEM builds an engine Config from PEM values, either of which may
// be base64-wrapped. An empty private key yields a verify-only config.
func ConfigFromPEM(privatePEM, publicPEM string) (Config, error) {
	var cfg Config
	if privatePEM != "" {
		key, err := ParsePrivateKeyPEM(unwrapBase64(privatePEM))
		if err != nil {
			return Config{}, err
		}
		cfg.PrivateKey = key
	}
	if publicPEM != "" {
		key, err := ParsePublicKeyPEM(unwrapBase64(publicPEM))
		if err != nil {
			return Config{}, err
		}
		cfg.PublicKey = key
	}
	if cfg.PrivateKey == nil && cfg.PublicKey == nil {
		return Config{}, fmt.Errorf("%w: key material is required", domain.ErrCrypto)
	}
	return cfg, nil
}

func unwrapBase64(value string) []byte {
	if decoded, err := base64.StdEncoding.DecodeString(value); err == nil {
		return decoded
	}
	return []byte(value)
}
