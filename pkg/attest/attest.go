// Package attest provides offline helpers for operators and external
// tooling: digest a local file, sign a digest, and verify a signature
// without a database or blob store in reach.
package attest

import (
	"crypto/rsa"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"

	cryptoinfra "docvault/internal/infra/crypto"
)

// Algorithm is the signature scheme used by Sign and Verify.
const Algorithm = cryptoinfra.Algorithm

// DigestFile streams the file through SHA-256 and returns the lowercase hex
// digest. This matches the digest the server computes over blob content.
func DigestFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open file %q: %w", path, err)
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("read file %q: %w", path, err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// SignDigest signs a hex digest with the given RSA private key.
func SignDigest(digestHex string, key *rsa.PrivateKey) (string, error) {
	engine, err := cryptoinfra.NewEngine(cryptoinfra.Config{PrivateKey: key})
	if err != nil {
		return "", err
	}
	return engine.Sign(digestHex)
}

// VerifyDigest reports whether sigHex is a valid signature over digestHex
// under the given public key.
func VerifyDigest(digestHex, sigHex string, key *rsa.PublicKey) (bool, error) {
	engine, err := cryptoinfra.NewEngine(cryptoinfra.Config{PublicKey: key})
	if err != nil {
		return false, err
	}
	return engine.Verify(digestHex, sigHex)
}

// ParsePrivateKeyPEM parses a PKCS#1 or PKCS#8 RSA private key.
func ParsePrivateKeyPEM(raw []byte) (*rsa.PrivateKey, error) {
	return cryptoinfra.ParsePrivateKeyPEM(raw)
}

// ParsePublicKeyPEM parses a PKCS#1 or PKIX RSA public key.
func ParsePublicKeyPEM(raw []byte) (*rsa.PublicKey, error) {
	return cryptoinfra.ParsePublicKeyPEM(raw)
}
