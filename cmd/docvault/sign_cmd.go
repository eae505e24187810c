package main

import (
	"flag"
	"fmt"
	"os"

	"docvault/pkg/attest"
)

type signOutput struct {
	Algorithm string `json:"algorithm"`
	Digest    string `json:"digest"`
	Signature string `json:"signature"`
}

func runSign(args []string) int {
	fs := flag.NewFlagSet("sign", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	var inPath string
	var digestHex string
	var keyPath string
	var outPath string
	fs.StringVar(&inPath, "in", "", "file to digest and sign")
	fs.StringVar(&digestHex, "digest", "", "precomputed hex digest to sign")
	fs.StringVar(&keyPath, "key", "", "RSA private key PEM path")
	fs.StringVar(&outPath, "out", "", "output JSON path (default stdout)")

	if err := fs.Parse(args); err != nil {
		return 1
	}
	if keyPath == "" {
		fmt.Fprintln(os.Stderr, "sign requires --key")
		return 1
	}
	if (inPath == "" && digestHex == "") || (inPath != "" && digestHex != "") {
		fmt.Fprintln(os.Stderr, "sign requires exactly one of --in or --digest")
		return 1
	}

	keyPEM, err := os.ReadFile(keyPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "read key: %v\n", err)
		return 1
	}
	key, err := attest.ParsePrivateKeyPEM(keyPEM)
	if err != nil {
		fmt.Fprintf(os.Stderr, "parse key: %v\n", err)
		return 1
	}

	if inPath != "" {
		digestHex, err = attest.DigestFile(inPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "digest file: %v\n", err)
			return 1
		}
	}

	signature, err := attest.SignDigest(digestHex, key)
	if err != nil {
		fmt.Fprintf(os.Stderr, "sign digest: %v\n", err)
		return 1
	}

	output := signOutput{Algorithm: attest.Algorithm, Digest: digestHex, Signature: signature}
	if err := writeOutput(outPath, output); err != nil {
		fmt.Fprintf(os.Stderr, "write output: %v\n", err)
		return 1
	}
	return 0
}
