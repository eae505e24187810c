package main

import (
	"fmt"
	"os"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}
	var code int
	switch os.Args[1] {
	case "digest":
		code = runDigest(os.Args[2:])
	case "sign":
		code = runSign(os.Args[2:])
	case "verify":
		code = runVerify(os.Args[2:])
	case "migrate":
		code = runMigrate(os.Args[2:])
	case "validate":
		code = runValidate(os.Args[2:])
	case "apply":
		code = runApply(os.Args[2:])
	case "reject":
		code = runReject(os.Args[2:])
	default:
		usage()
		code = 1
	}
	os.Exit(code)
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: docvault <digest|sign|verify|migrate|validate|apply|reject> [flags]")
}
