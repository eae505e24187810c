package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"docvault/internal/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type DocumentRepository struct {
	db *gorm.DB
}

func NewDocumentRepository(db *gorm.DB) *DocumentRepository {
	return &DocumentRepository{db: db}
}

func (r *DocumentRepository) Create(ctx context.Context, doc domain.Document) (domain.Document, error) {
	if r.db == nil {
		return domain.Document{}, errDBUnavailable
	}
	if doc.Title == "" {
		return domain.Document{}, fmt.Errorf("%w: document title is required", domain.ErrInvalid)
	}
	if doc.ID == "" {
		id, err := newUUID()
		if err != nil {
			return domain.Document{}, err
		}
		doc.ID = id
	}
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = time.Now().UTC()
	}
	model := DocumentModel{
		ID:             doc.ID,
		Title:          doc.Title,
		Classification: doc.Classification,
		CreatedAt:      doc.CreatedAt,
	}
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.Document{}, fmt.Errorf("%w: document %s", domain.ErrConflict, doc.ID)
		}
		return domain.Document{}, err
	}
	return doc, nil
}

func (r *DocumentRepository) Get(ctx context.Context, id string) (*domain.Document, error) {
	if r.db == nil {
		return nil, errDBUnavailable
	}
	var model DocumentModel
	err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	doc := documentFromModel(model)
	return &doc, nil
}

// GetVersion loads a version and checks document ownership; a version that
// exists under a different document is reported as not found.
func (r *DocumentRepository) GetVersion(ctx context.Context, documentID, versionID string) (*domain.DocumentVersion, error) {
	if r.db == nil {
		return nil, errDBUnavailable
	}
	var model DocumentVersionModel
	err := r.db.WithContext(ctx).
		First(&model, "id = ? AND document_id = ?", versionID, documentID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	version := versionFromModel(model)
	return &version, nil
}

func (r *DocumentRepository) GetLatestVersion(ctx context.Context, documentID string) (*domain.DocumentVersion, error) {
	if r.db == nil {
		return nil, errDBUnavailable
	}
	var model DocumentVersionModel
	err := r.db.WithContext(ctx).
		Where("document_id = ?", documentID).
		Order("version_number DESC").
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	version := versionFromModel(model)
	return &version, nil
}

// CreateVersion allocates the next version number under a lock on the parent
// document row, so numbers stay gap-free and monotonic even under
// concurrent uploads. The first version of a document is number 1.
func (r *DocumentRepository) CreateVersion(ctx context.Context, version domain.DocumentVersion) (domain.DocumentVersion, error) {
	if r.db == nil {
		return domain.DocumentVersion{}, errDBUnavailable
	}
	if version.DocumentID == "" {
		return domain.DocumentVersion{}, fmt.Errorf("%w: document id is required", domain.ErrInvalid)
	}
	if version.ID == "" {
		id, err := newUUID()
		if err != nil {
			return domain.DocumentVersion{}, err
		}
		version.ID = id
	}
	if version.Status == "" {
		version.Status = domain.VersionStatusDraft
	}
	if version.CreatedAt.IsZero() {
		version.CreatedAt = time.Now().UTC()
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var doc DocumentModel
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&doc, "id = ?", version.DocumentID).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrNotFound
			}
			return err
		}

		var maxNumber int
		err = tx.Model(&DocumentVersionModel{}).
			Where("document_id = ?", version.DocumentID).
			Select("COALESCE(MAX(version_number), 0)").
			Scan(&maxNumber).Error
		if err != nil {
			return err
		}
		version.VersionNumber = maxNumber + 1

		model := versionToModel(version)
		return tx.Create(&model).Error
	})
	if err != nil {
		return domain.DocumentVersion{}, err
	}
	return version, nil
}

// UpdateVersionContent replaces the content fields of an unsigned version.
// A version with at least one signature is immutable and the update fails.
func (r *DocumentRepository) UpdateVersionContent(ctx context.Context, documentID, versionID string, blobKey, storedChecksum string, fileSize int64, mimeType string) error {
	if r.db == nil {
		return errDBUnavailable
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		model, err := lockVersion(tx, documentID, versionID)
		if err != nil {
			return err
		}
		if err := requireUnsigned(tx, model.ID); err != nil {
			return err
		}
		updates := map[string]any{
			"blob_key":        stringPtrIfNotEmpty(blobKey),
			"stored_checksum": stringPtrIfNotEmpty(storedChecksum),
			"file_size":       fileSize,
			"mime_type":       mimeType,
		}
		return tx.Model(&DocumentVersionModel{}).Where("id = ?", model.ID).Updates(updates).Error
	})
}

// DeleteVersion removes an unsigned version. Signed versions and the sole
// remaining version of a document cannot be deleted.
func (r *DocumentRepository) DeleteVersion(ctx context.Context, documentID, versionID string) error {
	if r.db == nil {
		return errDBUnavailable
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		model, err := lockVersion(tx, documentID, versionID)
		if err != nil {
			return err
		}
		if err := requireUnsigned(tx, model.ID); err != nil {
			return err
		}
		var siblings int64
		err = tx.Model(&DocumentVersionModel{}).
			Where("document_id = ?", documentID).
			Count(&siblings).Error
		if err != nil {
			return err
		}
		if siblings <= 1 {
			return fmt.Errorf("%w: cannot delete the only version of document %s", domain.ErrInvalid, documentID)
		}
		return tx.Delete(&DocumentVersionModel{}, "id = ?", model.ID).Error
	})
}

func lockVersion(tx *gorm.DB, documentID, versionID string) (*DocumentVersionModel, error) {
	var model DocumentVersionModel
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&model, "id = ? AND document_id = ?", versionID, documentID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &model, nil
}

func requireUnsigned(tx *gorm.DB, versionID string) error {
	var count int64
	err := tx.Model(&DigitalSignatureModel{}).
		Where("document_version_id = ?", versionID).
		Count(&count).Error
	if err != nil {
		return err
	}
	if count > 0 {
		return fmt.Errorf("%w: version %s is signed and immutable", domain.ErrInvalid, versionID)
	}
	return nil
}

func documentFromModel(model DocumentModel) domain.Document {
	return domain.Document{
		ID:             model.ID,
		Title:          model.Title,
		Classification: model.Classification,
		CreatedAt:      model.CreatedAt,
	}
}

func versionFromModel(model DocumentVersionModel) domain.DocumentVersion {
	return domain.DocumentVersion{
		ID:             model.ID,
		DocumentID:     model.DocumentID,
		VersionNumber:  model.VersionNumber,
		BlobKey:        derefString(model.BlobKey),
		StoredChecksum: derefString(model.StoredChecksum),
		FileSize:       model.FileSize,
		MimeType:       model.MimeType,
		Status:         domain.VersionStatus(model.Status),
		CreatedAt:      model.CreatedAt,
	}
}

func versionToModel(version domain.DocumentVersion) DocumentVersionModel {
	return DocumentVersionModel{
		ID:             version.ID,
		DocumentID:     version.DocumentID,
		VersionNumber:  version.VersionNumber,
		BlobKey:        stringPtrIfNotEmpty(version.BlobKey),
		StoredChecksum: stringPtrIfNotEmpty(version.StoredChecksum),
		FileSize:       version.FileSize,
		MimeType:       version.MimeType,
		Status:         string(version.Status),
		CreatedAt:      version.CreatedAt,
	}
}
