// Package crypto signs and verifies content digests with a single configured
// RSA key pair. The scheme is RSA PKCS#1 v1.5 over SHA-256: deterministic
// signatures, and sign/verify trivially agree on padding.
package crypto

import (
	stdcrypto "crypto"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"

	"docvault/internal/domain"
)

// Algorithm names the fixed signature scheme recorded in signature metadata.
const Algorithm = "rsa-pkcs1v15-sha256"

// Config carries the process-wide key material. It is built once at startup
// and passed in explicitly; the engine never reads ambient state.
type Config struct {
	PrivateKey *rsa.PrivateKey // nil for verify-only deployments
	PublicKey  *rsa.PublicKey  // derived from PrivateKey when nil
}

type Engine struct {
	priv *rsa.PrivateKey
	pub  *rsa.PublicKey
}

func NewEngine(cfg Config) (*Engine, error) {
	pub := cfg.PublicKey
	if pub == nil && cfg.PrivateKey != nil {
		pub = &cfg.PrivateKey.PublicKey
	}
	if pub == nil {
		return nil, fmt.Errorf("%w: key material is required", domain.ErrCrypto)
	}
	return &Engine{priv: cfg.PrivateKey, pub: pub}, nil
}

// Algorithm returns the scheme identifier recorded in signature metadata.
func (e *Engine) Algorithm() string {
	return Algorithm
}

// Sign produces the hex signature over a hex SHA-256 digest.
func (e *Engine) Sign(digestHex string) (string, error) {
	if e.priv == nil {
		return "", fmt.Errorf("%w: private key not configured", domain.ErrCrypto)
	}
	digest, err := decodeDigest(digestHex)
	if err != nil {
		return "", err
	}
	sig, err := rsa.SignPKCS1v15(rand.Reader, e.priv, stdcrypto.SHA256, digest)
	if err != nil {
		return "", fmt.Errorf("%w: sign digest: %v", domain.ErrCrypto, err)
	}
	return hex.EncodeToString(sig), nil
}

// Verify reports whether sigHex is a valid signature over digestHex. A
// cryptographic mismatch yields (false, nil); only malformed input encoding
// or an engine-level failure yields an error.
func (e *Engine) Verify(digestHex, sigHex string) (bool, error) {
	digest, err := decodeDigest(digestHex)
	if err != nil {
		return false, err
	}
	if sigHex == "" {
		return false, fmt.Errorf("%w: signature is required", domain.ErrFormat)
	}
	sig, err := hex.DecodeString(sigHex)
	if err != nil {
		return false, fmt.Errorf("%w: signature is not valid hex", domain.ErrFormat)
	}
	err = rsa.VerifyPKCS1v15(e.pub, stdcrypto.SHA256, digest, sig)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, rsa.ErrVerification) {
		return false, nil
	}
	return false, fmt.Errorf("%w: verify signature: %v", domain.ErrCrypto, err)
}

func decodeDigest(digestHex string) ([]byte, error) {
	if digestHex == "" {
		return nil, fmt.Errorf("%w: digest is required", domain.ErrFormat)
	}
	digest, err := hex.DecodeString(digestHex)
	if err != nil {
		return nil, fmt.Errorf("%w: digest is not valid hex", domain.ErrFormat)
	}
	if len(digest) != sha256.Size {
		return nil, fmt.Errorf("%w: digest length %d, want %d", domain.ErrFormat, len(digest), sha256.Size)
	}
	return digest, nil
}
