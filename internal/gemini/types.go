package gemini

// Wire structs for the generativelanguage REST API (v1beta). The API
// accepts camelCase field names; pointer fields keep the Part variant
// tagged so exactly one member is serialised per part.

// Content is one conversation turn: a role plus ordered parts.
type Content struct {
	Role  string `json:"role,omitempty"`
	Parts []Part `json:"parts"`
}

// Part is a tagged variant: plain text, inlined binary, or a reference
// to a previously uploaded file.
type Part struct {
	Text       string      `json:"text,omitempty"`
	InlineData *InlineData `json:"inlineData,omitempty"`
	FileData   *FileData   `json:"fileData,omitempty"`
}

// TextPart builds a text-only part.
func TextPart(text string) Part {
	return Part{Text: text}
}

// InlineData carries base64-encoded bytes with their mime type.
type InlineData struct {
	MimeType string `json:"mimeType"`
	Data     string `json:"data"`
}

// FileData references an uploaded file by URI.
type FileData struct {
	MimeType string `json:"mimeType"`
	FileURI  string `json:"fileUri"`
}

// GenerationConfig holds the generation parameters sent with every
// chat request.
type GenerationConfig struct {
	Temperature     float64 `json:"temperature"`
	TopK            int     `json:"topK"`
	TopP            float64 `json:"topP"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

// Request is the generateContent request body.
type Request struct {
	Contents         []Content        `json:"contents"`
	GenerationConfig GenerationConfig `json:"generationConfig"`
}

// Response is the generateContent response body.
type Response struct {
	Candidates []Candidate `json:"candidates"`
	Error      *ErrorBody  `json:"error,omitempty"`
}

// Candidate is one generated reply.
type Candidate struct {
	Content struct {
		Parts []Part `json:"parts"`
		Role  string `json:"role"`
	} `json:"content"`
	FinishReason string `json:"finishReason"`
}

// ErrorBody is the structured error the API embeds in failure responses.
type ErrorBody struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Status  string `json:"status"`
}

// File is the Files API resource. State is PROCESSING until server-side
// transcoding finishes, then ACTIVE or FAILED.
type File struct {
	Name     string `json:"name"`
	URI      string `json:"uri"`
	MimeType string `json:"mimeType"`
	State    string `json:"state"`
}

// Remote file states reported by the Files API.
const (
	FileStateProcessing = "PROCESSING"
	FileStateActive     = "ACTIVE"
	FileStateFailed     = "FAILED"
)

// uploadMetadata is the session-start request body.
type uploadMetadata struct {
	File struct {
		DisplayName string `json:"displayName"`
	} `json:"file"`
}

// uploadResponse is the finalize response body.
type uploadResponse struct {
	File File `json:"file"`
}
