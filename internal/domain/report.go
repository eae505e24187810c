package domain

import "fmt"

type SignatureCheckStatus string

const (
	SignatureCheckValid        SignatureCheckStatus = "VALID"
	SignatureCheckInvalid      SignatureCheckStatus = "SIGNATURE_INVALID"
	SignatureCheckFileModified SignatureCheckStatus = "FILE_MODIFIED"
	SignatureCheckError        SignatureCheckStatus = "ERROR"
)

// SignatureCheck is the per-signature verdict inside a ValidationReport.
type SignatureCheck struct {
	SignatureID  string               `json:"signature_id"`
	SignerID     string               `json:"signer_id"`
	StampName    string               `json:"stamp_name,omitempty"`
	Status       SignatureCheckStatus `json:"status"`
	RecordedHash string               `json:"recorded_hash,omitempty"`
	Detail       string               `json:"detail,omitempty"`
}

// ValidationReport is the result of auditing one document version. A report
// with IsValid=false is a successful validation outcome, not an error.
type ValidationReport struct {
	DocumentID      string           `json:"document_id"`
	VersionID       string           `json:"version_id"`
	VersionNumber   int              `json:"version_number"`
	IsValid         bool             `json:"is_valid"`
	Verifiable      bool             `json:"verifiable"`
	FileExists      bool             `json:"file_exists"`
	ChecksumMatch   bool             `json:"checksum_match"`
	ActualChecksum  string           `json:"actual_checksum,omitempty"`
	SignatureChecks []SignatureCheck `json:"signature_checks"`
	Issues          []string         `json:"issues"`
	Warnings        []string         `json:"warnings,omitempty"`
	Summary         string           `json:"summary"`
}

// Finalize derives IsValid from the collected issues and renders the
// human-readable summary count.
func (r *ValidationReport) Finalize() {
	r.IsValid = len(r.Issues) == 0
	if r.IsValid {
		r.Summary = fmt.Sprintf("version %d verified: %d signature(s) checked, no issues",
			r.VersionNumber, len(r.SignatureChecks))
		return
	}
	r.Summary = fmt.Sprintf("version %d failed validation: %d issue(s) across %d signature(s)",
		r.VersionNumber, len(r.Issues), len(r.SignatureChecks))
}
