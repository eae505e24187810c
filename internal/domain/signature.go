package domain

import "time"

type SignatureStatus string

const (
	SignatureStatusValid   SignatureStatus = "VALID"
	SignatureStatusInvalid SignatureStatus = "INVALID"
	SignatureStatusError   SignatureStatus = "ERROR"
)

// SignatureMetadataSchema versions the structured metadata stored with each
// signature so schema evolution stays explicit.
const SignatureMetadataSchema = "docvault/signature-meta/v1"

// SignatureStamp is a reusable signer identity mark. Deactivated stamps can
// no longer be applied but stay referenced by historical signatures.
type SignatureStamp struct {
	ID        string
	Name      string
	ImageKey  string
	IsActive  bool
	CreatedAt time.Time
}

// SignatureMetadata records the signing context alongside the proof itself.
type SignatureMetadata struct {
	Schema        string    `json:"schema"`
	StampName     string    `json:"stamp_name"`
	StampImageKey string    `json:"stamp_image_key,omitempty"`
	Algorithm     string    `json:"algorithm"`
	VersionNumber int       `json:"version_number"`
	Reason        string    `json:"reason,omitempty"`
	AppliedAt     time.Time `json:"applied_at"`
}

// DigitalSignature binds one signer to one version's content digest at one
// point in time. At most one row exists per (DocumentVersionID, SignerID);
// re-signing updates the existing row.
type DigitalSignature struct {
	ID                string
	DocumentVersionID string
	SignerID          string
	SignatureStampID  string
	DocumentHash      string // hex digest of blob content at signing time
	SignatureHash     string // hex signature over DocumentHash
	Status            SignatureStatus
	VerifiedAt        time.Time
	Metadata          SignatureMetadata
	CreatedAt         time.Time
}
