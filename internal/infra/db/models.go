package db

import "time"

type DocumentModel struct {
	ID             string    `gorm:"type:uuid;primaryKey"`
	Title          string    `gorm:"not null"`
	Classification string    `gorm:"not null"`
	CreatedAt      time.Time `gorm:"not null"`
}

func (DocumentModel) TableName() string {
	return "documents"
}

type DocumentVersionModel struct {
	ID             string `gorm:"type:uuid;primaryKey"`
	DocumentID     string `gorm:"type:uuid;uniqueIndex:ux_document_version;index;not null"`
	VersionNumber  int    `gorm:"uniqueIndex:ux_document_version;not null"`
	BlobKey        *string
	StoredChecksum *string
	FileSize       int64     `gorm:"not null"`
	MimeType       string    `gorm:"not null"`
	Status         string    `gorm:"not null"`
	CreatedAt      time.Time `gorm:"not null"`
}

func (DocumentVersionModel) TableName() string {
	return "document_versions"
}

type SignatureStampModel struct {
	ID        string `gorm:"type:uuid;primaryKey"`
	Name      string `gorm:"uniqueIndex;not null"`
	ImageKey  string
	IsActive  bool      `gorm:"not null"`
	CreatedAt time.Time `gorm:"not null"`
}

func (SignatureStampModel) TableName() string {
	return "signature_stamps"
}

// DigitalSignatureModel enforces the one-row-per-(version, signer) invariant
// with a composite unique index; concurrent writers collide there and the
// loser retries as an update.
type DigitalSignatureModel struct {
	ID                string `gorm:"type:uuid;primaryKey"`
	DocumentVersionID string `gorm:"type:uuid;uniqueIndex:ux_version_signer;index;not null"`
	SignerID          string `gorm:"uniqueIndex:ux_version_signer;not null"`
	SignatureStampID  string `gorm:"type:uuid;not null"`
	DocumentHash      string `gorm:"not null"`
	SignatureHash     string `gorm:"not null"`
	Status            string `gorm:"not null"`
	VerifiedAt        time.Time
	MetadataJSON      []byte `gorm:"type:jsonb;not null"`
	RejectedAt        *time.Time
	RejectedBy        *string
	RejectReason      *string
	CreatedAt         time.Time `gorm:"not null"`
}

func (DigitalSignatureModel) TableName() string {
	return "digital_signatures"
}
