package main

import (
	"flag"
	"fmt"
	"os"

	"docvault/pkg/attest"
)

type digestOutput struct {
	Path      string `json:"path"`
	Algorithm string `json:"algorithm"`
	Digest    string `json:"digest"`
}

func runDigest(args []string) int {
	fs := flag.NewFlagSet("digest", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	var inPath string
	var outPath string
	fs.StringVar(&inPath, "in", "", "input file path")
	fs.StringVar(&outPath, "out", "", "output JSON path (default stdout)")

	if err := fs.Parse(args); err != nil {
		return 1
	}
	if inPath == "" {
		fmt.Fprintln(os.Stderr, "digest requires --in")
		return 1
	}

	digest, err := attest.DigestFile(inPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "digest file: %v\n", err)
		return 1
	}

	output := digestOutput{Path: inPath, Algorithm: "sha256", Digest: digest}
	if err := writeOutput(outPath, output); err != nil {
		fmt.Fprintf(os.Stderr, "write output: %v\n", err)
		return 1
	}
	return 0
}
