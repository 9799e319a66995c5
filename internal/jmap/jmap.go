// Package jmap implements the mail-management API method objects for sieve
// script validation: request parsing and the response envelope.
//
// Requests are decoded token by token. Field names are resolved once through
// a property table and then dispatched on the resulting enum, so adding a
// property is a table entry plus a switch arm. Unknown fields are skipped
// without error; clients from newer servers keep working against this one.
package jmap

// ValidateSieveScriptRequest asks the server to check a previously uploaded
// script blob. Both identifiers are opaque to this layer.
type ValidateSieveScriptRequest struct {
	AccountID string
	BlobID    string
}

// ValidateSieveScriptResponse echoes the account id back. Error is nil when
// the script validated.
type ValidateSieveScriptResponse struct {
	AccountID string    `json:"accountId"`
	Error     *SetError `json:"error"`
}

// SetError describes why the referenced content failed validation.
type SetError struct {
	Type        string `json:"type"`
	Description string `json:"description,omitempty"`
}

// SetError types returned by the validate method.
const (
	ErrTypeInvalidScript = "invalidScript"
	ErrTypeBlobNotFound  = "blobNotFound"
)

// InvalidScript returns the SetError for a script that failed compilation.
func InvalidScript(description string) *SetError {
	return &SetError{Type: ErrTypeInvalidScript, Description: description}
}

// BlobNotFound returns the SetError for an unknown blob id.
func BlobNotFound(blobID string) *SetError {
	return &SetError{Type: ErrTypeBlobNotFound, Description: "no such blob: " + blobID}
}
