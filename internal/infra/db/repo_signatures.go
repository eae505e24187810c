package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"docvault/internal/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SignatureRepository struct {
	db *gorm.DB
}

func NewSignatureRepository(db *gorm.DB) *SignatureRepository {
	return &SignatureRepository{db: db}
}

// ApplySignature upserts the signature keyed by (document_version_id,
// signer_id) and transitions the version to APPROVED in one transaction.
// The version row is locked first, so a concurrent reject on the same
// version serializes against the apply and the final status reflects
// exactly one of the two. A concurrent apply for the same signer lands on
// the composite unique index and resolves as an update of the winner's row.
func (r *SignatureRepository) ApplySignature(ctx context.Context, sig domain.DigitalSignature) (domain.DigitalSignature, error) {
	if r.db == nil {
		return domain.DigitalSignature{}, errDBUnavailable
	}
	if sig.DocumentVersionID == "" || sig.SignerID == "" {
		return domain.DigitalSignature{}, fmt.Errorf("%w: version id and signer id are required", domain.ErrInvalid)
	}
	if sig.DocumentHash == "" || sig.SignatureHash == "" {
		return domain.DigitalSignature{}, fmt.Errorf("%w: document hash and signature hash are required", domain.ErrInvalid)
	}
	if sig.ID == "" {
		id, err := newUUID()
		if err != nil {
			return domain.DigitalSignature{}, err
		}
		sig.ID = id
	}
	if sig.CreatedAt.IsZero() {
		sig.CreatedAt = time.Now().UTC()
	}

	metadataJSON, err := json.Marshal(sig.Metadata)
	if err != nil {
		return domain.DigitalSignature{}, err
	}

	var stored DigitalSignatureModel
	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var version DocumentVersionModel
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&version, "id = ?", sig.DocumentVersionID).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrNotFound
			}
			return err
		}

		model := DigitalSignatureModel{
			ID:                sig.ID,
			DocumentVersionID: sig.DocumentVersionID,
			SignerID:          sig.SignerID,
			SignatureStampID:  sig.SignatureStampID,
			DocumentHash:      sig.DocumentHash,
			SignatureHash:     sig.SignatureHash,
			Status:            string(sig.Status),
			VerifiedAt:        sig.VerifiedAt,
			MetadataJSON:      metadataJSON,
			CreatedAt:         sig.CreatedAt,
		}
		err = tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "document_version_id"}, {Name: "signer_id"}},
			DoUpdates: clause.Assignments(map[string]any{
				"signature_stamp_id": model.SignatureStampID,
				"document_hash":      model.DocumentHash,
				"signature_hash":     model.SignatureHash,
				"status":             model.Status,
				"verified_at":        model.VerifiedAt,
				"metadata_json":      model.MetadataJSON,
				"rejected_at":        nil,
				"rejected_by":        nil,
				"reject_reason":      nil,
			}),
		}).Create(&model).Error
		if err != nil {
			return err
		}

		err = tx.Model(&DocumentVersionModel{}).
			Where("id = ?", sig.DocumentVersionID).
			Update("status", string(domain.VersionStatusApproved)).Error
		if err != nil {
			return err
		}

		// Re-read so the caller sees the surviving row, not the candidate
		// insert that may have resolved into an update.
		return tx.First(&stored,
			"document_version_id = ? AND signer_id = ?",
			sig.DocumentVersionID, sig.SignerID).Error
	})
	if err != nil {
		return domain.DigitalSignature{}, err
	}
	return signatureFromModel(stored)
}

func (r *SignatureRepository) ListByVersion(ctx context.Context, versionID string) ([]domain.DigitalSignature, error) {
	if r.db == nil {
		return nil, errDBUnavailable
	}
	var models []DigitalSignatureModel
	err := r.db.WithContext(ctx).
		Where("document_version_id = ?", versionID).
		Order("created_at ASC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	signatures := make([]domain.DigitalSignature, 0, len(models))
	for _, model := range models {
		sig, err := signatureFromModel(model)
		if err != nil {
			return nil, err
		}
		signatures = append(signatures, sig)
	}
	return signatures, nil
}

// RefreshVerification records the outcome of a validation pass. Re-running
// validation on unchanged content writes the same status again, so the
// operation is idempotent apart from the timestamp.
func (r *SignatureRepository) RefreshVerification(ctx context.Context, signatureID string, status domain.SignatureStatus, verifiedAt time.Time) error {
	if r.db == nil {
		return errDBUnavailable
	}
	result := r.db.WithContext(ctx).
		Model(&DigitalSignatureModel{}).
		Where("id = ?", signatureID).
		Updates(map[string]any{
			"status":      string(status),
			"verified_at": verifiedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// RejectVersion marks any signatures on the version as rejected (rows are
// kept, history is preserved) and reverts the version to PENDING_APPROVAL.
// The version row lock serializes this against a concurrent apply.
func (r *SignatureRepository) RejectVersion(ctx context.Context, documentID, versionID, reason, actorID string) error {
	if r.db == nil {
		return errDBUnavailable
	}
	now := time.Now().UTC()
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := lockVersion(tx, documentID, versionID); err != nil {
			return err
		}
		err := tx.Model(&DigitalSignatureModel{}).
			Where("document_version_id = ? AND rejected_at IS NULL", versionID).
			Updates(map[string]any{
				"rejected_at":   now,
				"rejected_by":   stringPtrIfNotEmpty(actorID),
				"reject_reason": stringPtrIfNotEmpty(reason),
			}).Error
		if err != nil {
			return err
		}
		return tx.Model(&DocumentVersionModel{}).
			Where("id = ?", versionID).
			Update("status", string(domain.VersionStatusPendingApproval)).Error
	})
}

func signatureFromModel(model DigitalSignatureModel) (domain.DigitalSignature, error) {
	var metadata domain.SignatureMetadata
	if len(model.MetadataJSON) > 0 {
		if err := json.Unmarshal(model.MetadataJSON, &metadata); err != nil {
			return domain.DigitalSignature{}, fmt.Errorf("%w: signature metadata: %v", domain.ErrFormat, err)
		}
	}
	return domain.DigitalSignature{
		ID:                model.ID,
		DocumentVersionID: model.DocumentVersionID,
		SignerID:          model.SignerID,
		SignatureStampID:  model.SignatureStampID,
		DocumentHash:      model.DocumentHash,
		SignatureHash:     model.SignatureHash,
		Status:            domain.SignatureStatus(model.Status),
		VerifiedAt:        model.VerifiedAt,
		Metadata:          metadata,
		CreatedAt:         model.CreatedAt,
	}, nil
}
