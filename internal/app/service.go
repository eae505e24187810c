// Package app assembles the subsystem from process configuration: data
// store, blob backend, hashing and signature engines, and the optional
// report cache. The surrounding application embeds a Service and calls the
// exposed operations in-process.
package app

import (
	"context"
	"fmt"
	"log/slog"

	"docvault/internal/config"
	"docvault/internal/domain"
	"docvault/internal/infra/blob"
	"docvault/internal/infra/cachemem"
	"docvault/internal/infra/cacheredis"
	cryptoinfra "docvault/internal/infra/crypto"
	"docvault/internal/infra/db"
	"docvault/internal/infra/hashing"
	"docvault/internal/usecase"
)

type Service struct {
	Documents  *db.DocumentRepository
	Stamps     *db.StampRepository
	Signatures *db.SignatureRepository

	hasher    *hashing.Engine
	validator *usecase.ValidateVersion
	applier   *usecase.ApplyStamp
	rejecter  *usecase.RejectVersion
}

func New(ctx context.Context, cfg config.Config) (*Service, error) {
	conn, err := db.Open(cfg.DatabaseDSN)
	if err != nil {
		return nil, err
	}

	store, err := newBlobStore(ctx, cfg)
	if err != nil {
		return nil, err
	}
	hasher, err := hashing.NewEngine(store, cfg.HashChunkSize, cfg.BlobTimeout)
	if err != nil {
		return nil, err
	}

	cryptoCfg, err := cryptoinfra.ConfigFromPEM(cfg.SigningPrivateKeyPEM, cfg.SigningPublicKeyPEM)
	if err != nil {
		return nil, err
	}
	engine, err := cryptoinfra.NewEngine(cryptoCfg)
	if err != nil {
		return nil, err
	}

	cache, err := newReportCache(cfg)
	if err != nil {
		return nil, err
	}

	documents := db.NewDocumentRepository(conn)
	stamps := db.NewStampRepository(conn)
	signatures := db.NewSignatureRepository(conn)

	return &Service{
		Documents:  documents,
		Stamps:     stamps,
		Signatures: signatures,
		hasher:     hasher,
		validator: &usecase.ValidateVersion{
			Documents:  documents,
			Signatures: signatures,
			Hasher:     hasher,
			Crypto:     engine,
			Cache:      cache,
			CacheTTL:   cfg.ReportCacheTTL,
		},
		applier: &usecase.ApplyStamp{
			Stamps:     stamps,
			Documents:  documents,
			Signatures: signatures,
			Hasher:     hasher,
			Crypto:     engine,
			Cache:      cache,
		},
		rejecter: &usecase.RejectVersion{
			Documents:  documents,
			Signatures: signatures,
			Hasher:     hasher,
			Cache:      cache,
		},
	}, nil
}

// Migrate applies the schema, including the indexes the invariants rely on.
func Migrate(cfg config.Config) error {
	conn, err := db.Open(cfg.DatabaseDSN)
	if err != nil {
		return err
	}
	return db.Migrate(conn)
}

func (s *Service) Validate(ctx context.Context, documentID, versionID string) (*domain.ValidationReport, error) {
	return s.validator.Execute(ctx, usecase.ValidateVersionRequest{
		DocumentID: documentID,
		VersionID:  versionID,
	})
}

func (s *Service) Apply(ctx context.Context, documentID, stampID, signerID, reason string) (*domain.DigitalSignature, error) {
	return s.applier.Execute(ctx, usecase.ApplyStampRequest{
		DocumentID: documentID,
		StampID:    stampID,
		SignerID:   signerID,
		Reason:     reason,
	})
}

func (s *Service) Reject(ctx context.Context, documentID, versionID, reason, actorID string) error {
	return s.rejecter.Execute(ctx, usecase.RejectVersionRequest{
		DocumentID: documentID,
		VersionID:  versionID,
		Reason:     reason,
		ActorID:    actorID,
	})
}

func (s *Service) ComputeDigest(ctx context.Context, blobKey string) (string, error) {
	return s.hasher.ComputeDigest(ctx, blobKey)
}

func newBlobStore(ctx context.Context, cfg config.Config) (domain.BlobStore, error) {
	switch cfg.BlobBackend {
	case "fs", "":
		return blob.NewFSStore(cfg.BlobFSRoot)
	case "gcs":
		return blob.NewGCSStore(ctx, cfg.BlobGCSBucket)
	default:
		return nil, fmt.Errorf("%w: unknown blob backend %q", domain.ErrInvalid, cfg.BlobBackend)
	}
}

// newReportCache picks Redis when configured, otherwise an in-process
// cache. A zero TTL disables caching entirely.
func newReportCache(cfg config.Config) (usecase.ReportCache, error) {
	if cfg.ReportCacheTTL <= 0 {
		return nil, nil
	}
	if cfg.RedisAddr != "" {
		cache, err := cacheredis.New(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			return nil, err
		}
		slog.Info("report cache enabled", "backend", "redis", "ttl", cfg.ReportCacheTTL)
		return cache, nil
	}
	slog.Info("report cache enabled", "backend", "memory", "ttl", cfg.ReportCacheTTL)
	return cachemem.New(), nil
}
