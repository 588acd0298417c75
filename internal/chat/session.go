package chat

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gemchat/internal/classify"
	"gemchat/internal/gemini"
	"gemchat/internal/logging"
	"gemchat/internal/sandbox"
)

const analysisPromptFmt = "I've shared the file %s with you. Please analyze it and tell me about its contents."

// Session ties the conversation state to the remote client. Every
// user-visible failure comes back as a prefixed string, never as an
// error value; the shell just prints whatever it gets.
type Session struct {
	guard   *sandbox.Guard
	client  *gemini.Client
	history *History
	uploads *UploadSet
	out     io.Writer
}

// NewSession builds a session. Progress lines for long-running uploads
// are written to out; pass nil to discard them.
func NewSession(guard *sandbox.Guard, client *gemini.Client, out io.Writer) *Session {
	if out == nil {
		out = io.Discard
	}
	return &Session{
		guard:   guard,
		client:  client,
		history: NewHistory(),
		uploads: NewUploadSet(),
		out:     out,
	}
}

// History exposes the transcript for tests and the shell.
func (s *Session) History() *History { return s.history }

// Uploads exposes the upload records for tests and the shell.
func (s *Session) Uploads() *UploadSet { return s.uploads }

// Send appends the prompt as a user turn, sends the entire transcript
// to the model, records the reply, and returns it.
func (s *Session) Send(ctx context.Context, prompt string) string {
	s.history.Append(gemini.Content{
		Role:  "user",
		Parts: []gemini.Part{gemini.TextPart(prompt)},
	})

	reply, err := s.client.GenerateContent(ctx, s.history.Snapshot())
	if err != nil {
		return chatErrorMessage(err)
	}

	s.history.Append(gemini.Content{
		Role:  "model",
		Parts: []gemini.Part{gemini.TextPart(reply)},
	})
	return reply
}

// chatErrorMessage converts the generation failure taxonomy to the
// user-visible form. None of these terminate the process.
func chatErrorMessage(err error) string {
	switch {
	case err == gemini.ErrNoCandidates:
		return "❌ No response generated"
	case gemini.IsTimeout(err):
		return "❌ Request timed out. Please try again."
	default:
		if apiErr, ok := err.(*gemini.APIError); ok {
			return fmt.Sprintf("❌ API Error (%d): %s", apiErr.Status, apiErr.Body)
		}
		return fmt.Sprintf("❌ Network error: %v", err)
	}
}

// ReadFile attaches a local file as a user turn and asks the model to
// analyze it. Inaccessible or unreadable paths produce an error string
// without any remote call.
func (s *Session) ReadFile(ctx context.Context, path string) string {
	part, errMsg := s.attachPart(ctx, path)
	if errMsg != "" {
		return errMsg
	}

	s.history.Append(gemini.Content{
		Role:  "user",
		Parts: []gemini.Part{part},
	})
	return s.Send(ctx, fmt.Sprintf(analysisPromptFmt, path))
}

// attachPart turns a local file into a content part according to its
// category. The returned error string is user-visible and means no
// part was produced.
func (s *Session) attachPart(ctx context.Context, path string) (gemini.Part, string) {
	if !s.guard.Allows(path) {
		return gemini.Part{}, fmt.Sprintf("❌ Cannot access file: %s", path)
	}
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return gemini.Part{}, fmt.Sprintf("❌ Cannot access file: %s", path)
	}

	switch classify.Classify(path) {
	case classify.Video:
		return s.attachVideo(ctx, path, info.Size())

	case classify.TextLike:
		content, err := os.ReadFile(path)
		if err != nil {
			return gemini.Part{}, fmt.Sprintf("❌ Error reading file %s: %v", path, err)
		}
		return gemini.TextPart(fmt.Sprintf("File: %s\n\n%s", path, content)), ""

	case classify.Image:
		data, err := os.ReadFile(path)
		if err != nil {
			return gemini.Part{}, fmt.Sprintf("❌ Error reading file %s: %v", path, err)
		}
		return gemini.Part{InlineData: &gemini.InlineData{
			MimeType: classify.GuessMimeType(path),
			Data:     base64.StdEncoding.EncodeToString(data),
		}}, ""

	default:
		return gemini.TextPart(fmt.Sprintf("File exists: %s (binary file, %s)", path, classify.GuessMimeType(path))), ""
	}
}

// attachVideo runs the upload state machine for a video file and, on
// success, returns a file-reference part. Processing timeouts are soft:
// the reference is used anyway.
func (s *Session) attachVideo(ctx context.Context, path string, size int64) (gemini.Part, string) {
	if size > gemini.MaxUploadBytes {
		err := &gemini.FileTooLargeError{Size: size}
		return gemini.Part{}, "❌ " + err.Error()
	}

	fmt.Fprintf(s.out, "📤 Uploading video file (%.1fMB)...\n", float64(size)/(1<<20))

	uploaded, err := s.client.Upload(ctx, path, classify.VideoMimeType(path))
	if err != nil {
		return gemini.Part{}, "❌ Failed to upload video: " + err.Error()
	}

	s.uploads.Put(path, Record{
		URI:      uploaded.URI,
		Name:     uploaded.Name,
		MimeType: uploaded.MimeType,
		Size:     uploaded.Size,
	})

	fmt.Fprintln(s.out, "⏳ Processing video...")
	state, waitErr := s.client.WaitForProcessing(ctx, uploaded.Name)
	switch state {
	case gemini.StateActive:
		fmt.Fprintln(s.out, "✅ Video processing complete!")
	case gemini.StateFailed:
		fmt.Fprintln(s.out, "❌ Video processing failed")
		return gemini.Part{}, fmt.Sprintf("❌ Video processing failed: %s", path)
	case gemini.StateTimedOut:
		fmt.Fprintln(s.out, "⚠️ Processing timeout - continuing anyway")
	default:
		logging.FilesWarn("[Session] status polling aborted for %s: %v", path, waitErr)
		fmt.Fprintln(s.out, "⚠️ Error checking processing status - continuing anyway")
	}

	return gemini.Part{FileData: &gemini.FileData{
		MimeType: uploaded.MimeType,
		FileURI:  uploaded.URI,
	}}, ""
}

// ListDir renders a directory listing with per-category icons.
func (s *Session) ListDir(dir string) string {
	if dir == "" {
		dir = "."
	}
	if !s.guard.Allows(dir) {
		return fmt.Sprintf("Directory %s is not accessible", dir)
	}
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return fmt.Sprintf("Directory %s does not exist", dir)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Sprintf("Error listing directory %s: %v", dir, err)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	var lines []string
	for _, e := range entries {
		if e.IsDir() {
			lines = append(lines, fmt.Sprintf("📁 %s/", e.Name()))
			continue
		}
		fi, err := e.Info()
		if err != nil {
			continue
		}
		if classify.IsVideo(e.Name()) {
			lines = append(lines, fmt.Sprintf("🎬 %s (%.1fMB)", e.Name(), float64(fi.Size())/(1<<20)))
		} else {
			lines = append(lines, fmt.Sprintf("📄 %s (%d bytes)", e.Name(), fi.Size()))
		}
	}

	return fmt.Sprintf("Contents of %s:\n%s", dir, strings.Join(lines, "\n"))
}

// ClearHistory empties the transcript. Upload records are untouched.
func (s *Session) ClearHistory() string {
	s.history.Clear()
	return "🧹 Conversation history cleared"
}

// CleanupUploads deletes every uploaded file remotely (best effort) and
// forgets all records. The transcript is untouched.
func (s *Session) CleanupUploads(ctx context.Context) string {
	cleaned := s.uploads.Cleanup(func(name string) bool {
		return s.client.Delete(ctx, name)
	})
	return fmt.Sprintf("🧹 Cleaned up %d uploaded files", cleaned)
}

// ListUploads reports the currently tracked uploads.
func (s *Session) ListUploads() string {
	if s.uploads.Len() == 0 {
		return "📁 No uploaded files"
	}
	var lines []string
	for _, path := range s.uploads.Paths() {
		rec, _ := s.uploads.Get(path)
		lines = append(lines, fmt.Sprintf("🎬 %s (%.1fMB)", filepath.Base(path), float64(rec.Size)/(1<<20)))
	}
	return "📁 Uploaded files:\n" + strings.Join(lines, "\n")
}

// ListRoots reports the allowed directories.
func (s *Session) ListRoots() string {
	return "📁 Allowed directories:\n" + strings.Join(s.guard.Roots(), "\n")
}

// Teardown best-effort deletes every uploaded file. Used on interrupt
// and end-of-input; failures are ignored.
func (s *Session) Teardown(ctx context.Context) {
	n := s.uploads.Cleanup(func(name string) bool {
		return s.client.Delete(ctx, name)
	})
	logging.SessionDebug("[Session] teardown deleted %d uploads", n)
}
