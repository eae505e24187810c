package attest

import (
	"crypto/rand"
	"crypto/rsa"
	"os"
	"path/filepath"
	"testing"
)

func TestDigestFile_KnownVector(t *testing.T) {
	path := filepath.Join(t.TempDir(), "content.txt")
	if err := os.WriteFile(path, []byte("abc"), 0o600); err != nil {
		t.Fatalf("write file: %v", err)
	}
	digest, err := DigestFile(path)
	if err != nil {
		t.Fatalf("digest: %v", err)
	}
	const want = "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad"
	if digest != want {
		t.Fatalf("unexpected digest %s", digest)
	}
}

func TestDigestFile_Missing(t *testing.T) {
	if _, err := DigestFile(filepath.Join(t.TempDir(), "absent")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestSignVerifyRoundTrip(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}
	path := filepath.Join(t.TempDir(), "content.bin")
	if err := os.WriteFile(path, []byte("signed payload"), 0o600); err != nil {
		t.Fatalf("write file: %v", err)
	}
	digest, err := DigestFile(path)
	if err != nil {
		t.Fatalf("digest: %v", err)
	}

	sig, err := SignDigest(digest, key)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	ok, err := VerifyDigest(digest, sig, &key.PublicKey)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if !ok {
		t.Fatal("signature should verify")
	}

	other, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("generate second key: %v", err)
	}
	ok, err = VerifyDigest(digest, sig, &other.PublicKey)
	if err != nil {
		t.Fatalf("verify with wrong key: %v", err)
	}
	if ok {
		t.Fatal("wrong key must not verify")
	}
}
