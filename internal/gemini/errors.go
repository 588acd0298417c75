package gemini

import (
	"context"
	"errors"
	"fmt"
)

// ErrNoCandidates indicates a 200 response with an empty candidate list.
var ErrNoCandidates = errors.New("no response generated")

// APIError is a non-200 response from the generation or files endpoint,
// with the raw body kept for diagnostics.
type APIError struct {
	Status int
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API error (%d): %s", e.Status, e.Body)
}

// SessionStartError is a failed resumable-upload handshake: a non-200
// status, or a 200 without the upload-session location header.
type SessionStartError struct {
	Status int
	Body   string
}

func (e *SessionStartError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("upload session failed: %d", e.Status)
	}
	return fmt.Sprintf("upload session failed: %d - %s", e.Status, e.Body)
}

// TransferError is a failed content transfer or finalize step.
type TransferError struct {
	Status int
	Body   string
}

func (e *TransferError) Error() string {
	return fmt.Sprintf("upload failed: %d - %s", e.Status, e.Body)
}

// FileTooLargeError is raised before any network call when a file
// exceeds MaxUploadBytes.
type FileTooLargeError struct {
	Size int64
}

func (e *FileTooLargeError) Error() string {
	return fmt.Sprintf("file too large: %.1fGB (max 2GB)", float64(e.Size)/(1<<30))
}

// IsTimeout reports whether err was caused by an expired deadline.
func IsTimeout(err error) bool {
	return errors.Is(err, context.DeadlineExceeded)
}
