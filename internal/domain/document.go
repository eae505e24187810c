package domain

import "time"

type VersionStatus string

const (
	VersionStatusDraft           VersionStatus = "DRAFT"
	VersionStatusPendingApproval VersionStatus = "PENDING_APPROVAL"
	VersionStatusApproved        VersionStatus = "APPROVED"
	VersionStatusRejected        VersionStatus = "REJECTED"
)

type Document struct {
	ID             string
	Title          string
	Classification string
	CreatedAt      time.Time
}

// DocumentVersion is one immutable content snapshot of a document. Version
// numbers are positive, gap-free, and strictly increasing per document.
// Once at least one DigitalSignature references a version, its content
// fields (BlobKey, StoredChecksum, FileSize, MimeType) are frozen; only
// Status may change, through the reject path.
type DocumentVersion struct {
	ID             string
	DocumentID     string
	VersionNumber  int
	BlobKey        string // empty if content was never uploaded
	StoredChecksum string // hex digest recorded at upload time, may be empty
	FileSize       int64
	MimeType       string
	Status         VersionStatus
	CreatedAt      time.Time
}

// HasBlob reports whether the version has uploaded content to verify.
func (v DocumentVersion) HasBlob() bool {
	return v.BlobKey != ""
}
