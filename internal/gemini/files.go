package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gemchat/internal/logging"
)

// MaxUploadBytes is the hard cap on a single upload (2 GiB). Checked
// before any network call so an oversized file costs no transfer.
const MaxUploadBytes = 2 << 30

// UploadedFile describes a successfully transferred file. The remote
// side may still be processing it; see WaitForProcessing.
type UploadedFile struct {
	Name     string
	URI      string
	MimeType string
	Size     int64
}

// ProcessingState is the terminal outcome of the processing wait.
type ProcessingState int

const (
	// StateUnknown means polling stopped on a transport error before
	// any terminal remote state was observed.
	StateUnknown ProcessingState = iota
	// StateActive means the file is referenceable in chat requests.
	StateActive
	// StateFailed means server-side processing failed; do not retry.
	StateFailed
	// StateTimedOut means the poll budget ran out. Soft: the URI is
	// still usable, the remote side may finish later.
	StateTimedOut
)

func (s ProcessingState) String() string {
	switch s {
	case StateActive:
		return "active"
	case StateFailed:
		return "failed"
	case StateTimedOut:
		return "timed out"
	default:
		return "unknown"
	}
}

// Upload transfers a local file through the resumable upload protocol:
// a session-start handshake declaring size and type, then a single
// upload+finalize request streaming the content. There is no chunking
// or resumption; a failed transfer is terminal.
func (c *Client) Upload(ctx context.Context, path, mimeType string) (*UploadedFile, error) {
	if c.cfg.APIKey == "" {
		return nil, fmt.Errorf("API key not configured")
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}
	size := stat.Size()
	if size > MaxUploadBytes {
		return nil, &FileTooLargeError{Size: size}
	}

	if mimeType == "" {
		mimeType = "application/octet-stream"
	}

	logging.Files("[Files] Upload: path=%s size=%d mime=%s", path, size, mimeType)

	sessionURL, err := c.startUploadSession(ctx, filepath.Base(path), size, mimeType)
	if err != nil {
		return nil, err
	}

	uploaded, err := c.transferContent(ctx, sessionURL, f, size)
	if err != nil {
		return nil, err
	}
	uploaded.MimeType = mimeType
	uploaded.Size = size

	logging.Files("[Files] Upload success: name=%s uri=%s", uploaded.Name, uploaded.URI)
	return uploaded, nil
}

// startUploadSession negotiates the upload session. Success is HTTP 200
// with a server-supplied session location header; anything else is a
// terminal SessionStartError.
func (c *Client) startUploadSession(ctx context.Context, displayName string, size int64, mimeType string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.ChatTimeout)
	defer cancel()

	// The files endpoint lives under /upload for resumable sessions.
	uploadBase := strings.Replace(c.cfg.BaseURL, "/v1beta", "/upload/v1beta", 1)
	url := fmt.Sprintf("%s/files?key=%s", uploadBase, c.cfg.APIKey)

	var meta uploadMetadata
	meta.File.DisplayName = displayName
	jsonMeta, err := json.Marshal(meta)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewReader(jsonMeta))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Goog-Upload-Protocol", "resumable")
	req.Header.Set("X-Goog-Upload-Command", "start")
	req.Header.Set("X-Goog-Upload-Header-Content-Length", fmt.Sprintf("%d", size))
	req.Header.Set("X-Goog-Upload-Header-Content-Type", mimeType)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("upload start request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		logging.FilesError("[Files] session start: status=%d body=%s", resp.StatusCode, body)
		return "", &SessionStartError{Status: resp.StatusCode, Body: string(body)}
	}

	sessionURL := resp.Header.Get("X-Goog-Upload-URL")
	if sessionURL == "" {
		return "", &SessionStartError{Status: resp.StatusCode, Body: "no upload URL returned in headers"}
	}
	return sessionURL, nil
}

// transferContent streams the file to the session location in a single
// upload+finalize request and parses the resulting file resource.
func (c *Client) transferContent(ctx context.Context, sessionURL string, f *os.File, size int64) (*UploadedFile, error) {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.UploadTimeout)
	defer cancel()

	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("failed to rewind file: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", sessionURL, f)
	if err != nil {
		return nil, err
	}
	req.ContentLength = size
	req.Header.Set("Content-Length", fmt.Sprintf("%d", size))
	req.Header.Set("X-Goog-Upload-Offset", "0")
	req.Header.Set("X-Goog-Upload-Command", "upload, finalize")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("upload data failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		logging.FilesError("[Files] transfer: status=%d body=%s", resp.StatusCode, body)
		return nil, &TransferError{Status: resp.StatusCode, Body: string(body)}
	}

	var result uploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to parse upload response: %w", err)
	}
	if result.File.URI == "" {
		return nil, &TransferError{Status: resp.StatusCode, Body: "no file uri found in upload response"}
	}
	return &UploadedFile{Name: result.File.Name, URI: result.File.URI}, nil
}

// GetFile retrieves the current resource state for an uploaded file.
func (c *Client) GetFile(ctx context.Context, name string) (*File, error) {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.StatusTimeout)
	defer cancel()

	url := fmt.Sprintf("%s/%s?key=%s", c.cfg.BaseURL, resourceName(name), c.cfg.APIKey)
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, &APIError{Status: resp.StatusCode, Body: string(body)}
	}

	var file File
	if err := json.NewDecoder(resp.Body).Decode(&file); err != nil {
		return nil, err
	}
	return &file, nil
}

// WaitForProcessing polls the file's state at the fixed interval until
// it leaves PROCESSING or the poll budget is spent. The budget allows
// exactly PollCeiling/PollInterval polls. The first transport error
// stops the loop; non-200 polls are tolerated and the loop continues.
func (c *Client) WaitForProcessing(ctx context.Context, name string) (ProcessingState, error) {
	if name == "" {
		return StateUnknown, fmt.Errorf("empty file name")
	}

	maxPolls := int(c.cfg.PollCeiling / c.cfg.PollInterval)
	for i := 0; i < maxPolls; i++ {
		// Sleep between polls only; the final poll decides without one.
		if i > 0 {
			time.Sleep(c.cfg.PollInterval)
		}

		file, err := c.GetFile(ctx, name)
		if err != nil {
			if _, ok := err.(*APIError); ok {
				// Status endpoint hiccup; the file may still land.
				logging.FilesDebug("[Files] poll %d: %v", i+1, err)
				continue
			}
			logging.FilesWarn("[Files] poll %d transport error: %v", i+1, err)
			return StateUnknown, err
		}

		switch file.State {
		case FileStateActive:
			logging.Files("[Files] %s active after %d polls", name, i+1)
			return StateActive, nil
		case FileStateFailed:
			logging.FilesError("[Files] %s processing failed", name)
			return StateFailed, nil
		}
	}

	logging.FilesWarn("[Files] %s still processing after %v; continuing anyway", name, c.cfg.PollCeiling)
	return StateTimedOut, nil
}

// Delete removes an uploaded file. Success is exactly HTTP 204; any
// other outcome, including transport failure, reports false and the
// caller decides whether to retry.
func (c *Client) Delete(ctx context.Context, name string) bool {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.StatusTimeout)
	defer cancel()

	url := fmt.Sprintf("%s/%s?key=%s", c.cfg.BaseURL, resourceName(name), c.cfg.APIKey)
	req, err := http.NewRequestWithContext(ctx, "DELETE", url, nil)
	if err != nil {
		return false
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logging.FilesDebug("[Files] delete %s: %v", name, err)
		return false
	}
	defer resp.Body.Close()

	return resp.StatusCode == http.StatusNoContent
}

// resourceName normalises a file identifier to the "files/..." resource
// form the API expects.
func resourceName(name string) string {
	if strings.HasPrefix(name, "files/") {
		return name
	}
	return "files/" + name
}
