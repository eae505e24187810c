package main

import (
	"flag"
	"fmt"
	"os"

	"docvault/pkg/attest"
)

type verifyOutput struct {
	Algorithm      string `json:"algorithm"`
	Digest         string `json:"digest"`
	SignatureValid bool   `json:"signature_valid"`
}

func runVerify(args []string) int {
	fs := flag.NewFlagSet("verify", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	var inPath string
	var digestHex string
	var sigHex string
	var pubPath string
	var outPath string
	fs.StringVar(&inPath, "in", "", "file to digest and check")
	fs.StringVar(&digestHex, "digest", "", "precomputed hex digest to check")
	fs.StringVar(&sigHex, "signature", "", "hex signature to verify")
	fs.StringVar(&pubPath, "pubkey", "", "RSA public key PEM path")
	fs.StringVar(&outPath, "out", "", "output JSON path (default stdout)")

	if err := fs.Parse(args); err != nil {
		return 1
	}
	if pubPath == "" || sigHex == "" {
		fmt.Fprintln(os.Stderr, "verify requires --pubkey and --signature")
		return 1
	}
	if (inPath == "" && digestHex == "") || (inPath != "" && digestHex != "") {
		fmt.Fprintln(os.Stderr, "verify requires exactly one of --in or --digest")
		return 1
	}

	pubPEM, err := os.ReadFile(pubPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "read public key: %v\n", err)
		return 1
	}
	pub, err := attest.ParsePublicKeyPEM(pubPEM)
	if err != nil {
		fmt.Fprintf(os.Stderr, "parse public key: %v\n", err)
		return 1
	}

	if inPath != "" {
		digestHex, err = attest.DigestFile(inPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "digest file: %v\n", err)
			return 1
		}
	}

	valid, err := attest.VerifyDigest(digestHex, sigHex, pub)
	if err != nil {
		fmt.Fprintf(os.Stderr, "verify signature: %v\n", err)
		return 1
	}

	output := verifyOutput{Algorithm: attest.Algorithm, Digest: digestHex, SignatureValid: valid}
	if err := writeOutput(outPath, output); err != nil {
		fmt.Fprintf(os.Stderr, "write output: %v\n", err)
		return 1
	}
	if !valid {
		return 2
	}
	return 0
}
