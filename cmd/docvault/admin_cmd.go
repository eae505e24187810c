package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"docvault/internal/app"
	"docvault/internal/config"
)

// The admin subcommands run the exposed operations against the configured
// data store and blob backend; configuration comes from the environment.

func runMigrate(args []string) int {
	fs := flag.NewFlagSet("migrate", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	if err := fs.Parse(args); err != nil {
		return 1
	}
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		return 1
	}
	if err := app.Migrate(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "migrate: %v\n", err)
		return 1
	}
	return 0
}

func runValidate(args []string) int {
	fs := flag.NewFlagSet("validate", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	var documentID string
	var versionID string
	var outPath string
	fs.StringVar(&documentID, "document", "", "document id")
	fs.StringVar(&versionID, "version", "", "version id")
	fs.StringVar(&outPath, "out", "", "output JSON path (default stdout)")

	if err := fs.Parse(args); err != nil {
		return 1
	}
	if documentID == "" || versionID == "" {
		fmt.Fprintln(os.Stderr, "validate requires --document and --version")
		return 1
	}

	svc, err := newService()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return 1
	}
	report, err := svc.Validate(context.Background(), documentID, versionID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "validate version: %v\n", err)
		return 1
	}
	if err := writeOutput(outPath, report); err != nil {
		fmt.Fprintf(os.Stderr, "write output: %v\n", err)
		return 1
	}
	if !report.IsValid {
		return 2
	}
	return 0
}

func runApply(args []string) int {
	fs := flag.NewFlagSet("apply", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	var documentID string
	var stampID string
	var signerID string
	var reason string
	var outPath string
	fs.StringVar(&documentID, "document", "", "document id")
	fs.StringVar(&stampID, "stamp", "", "signature stamp id")
	fs.StringVar(&signerID, "signer", "", "signer id")
	fs.StringVar(&reason, "reason", "", "signing reason")
	fs.StringVar(&outPath, "out", "", "output JSON path (default stdout)")

	if err := fs.Parse(args); err != nil {
		return 1
	}
	if documentID == "" || stampID == "" || signerID == "" {
		fmt.Fprintln(os.Stderr, "apply requires --document, --stamp, and --signer")
		return 1
	}

	svc, err := newService()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return 1
	}
	signature, err := svc.Apply(context.Background(), documentID, stampID, signerID, reason)
	if err != nil {
		fmt.Fprintf(os.Stderr, "apply stamp: %v\n", err)
		return 1
	}
	if err := writeOutput(outPath, signature); err != nil {
		fmt.Fprintf(os.Stderr, "write output: %v\n", err)
		return 1
	}
	return 0
}

func runReject(args []string) int {
	fs := flag.NewFlagSet("reject", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	var documentID string
	var versionID string
	var reason string
	var actorID string
	fs.StringVar(&documentID, "document", "", "document id")
	fs.StringVar(&versionID, "version", "", "version id")
	fs.StringVar(&reason, "reason", "", "rejection reason")
	fs.StringVar(&actorID, "actor", "", "acting user id")

	if err := fs.Parse(args); err != nil {
		return 1
	}
	if documentID == "" || versionID == "" {
		fmt.Fprintln(os.Stderr, "reject requires --document and --version")
		return 1
	}

	svc, err := newService()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return 1
	}
	if err := svc.Reject(context.Background(), documentID, versionID, reason, actorID); err != nil {
		fmt.Fprintf(os.Stderr, "reject version: %v\n", err)
		return 1
	}
	return 0
}

func newService() (*app.Service, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	svc, err := app.New(context.Background(), cfg)
	if err != nil {
		return nil, fmt.Errorf("init service: %w", err)
	}
	return svc, nil
}
