package chat

import (
	"context"
	"strings"
)

// exitKeywords end the shell loop; matched case-insensitively on the
// trimmed line before routing.
var exitKeywords = map[string]bool{
	"/quit": true,
	"/exit": true,
	"quit":  true,
	"exit":  true,
}

// IsExitCommand reports whether line is an exit keyword.
func IsExitCommand(line string) bool {
	return exitKeywords[strings.ToLower(strings.TrimSpace(line))]
}

// HandleInput dispatches one line of user input by command prefix.
// Exactly one branch runs and every branch produces an explicit
// response; unrecognized input is a chat message.
func (s *Session) HandleInput(ctx context.Context, input string) string {
	input = strings.TrimSpace(input)

	switch {
	case strings.HasPrefix(input, "/read "):
		return s.ReadFile(ctx, strings.TrimSpace(strings.TrimPrefix(input, "/read ")))

	case strings.HasPrefix(input, "/ls") || strings.HasPrefix(input, "/list"):
		dir := "."
		if fields := strings.SplitN(input, " ", 2); len(fields) > 1 {
			if arg := strings.TrimSpace(fields[1]); arg != "" {
				dir = arg
			}
		}
		return s.ListDir(dir)

	case strings.HasPrefix(input, "/help"):
		return helpText

	case strings.HasPrefix(input, "/clear"):
		return s.ClearHistory()

	case strings.HasPrefix(input, "/cleanup"):
		return s.CleanupUploads(ctx)

	case strings.HasPrefix(input, "/uploads"):
		return s.ListUploads()

	case strings.HasPrefix(input, "/dirs"):
		return s.ListRoots()

	default:
		return s.Send(ctx, input)
	}
}

const helpText = `🤖 Gemini Terminal Chat Commands:

💬 Chat Commands:
  • Just type your message to chat with Gemini
  • /clear - Clear conversation history

📁 File Commands:
  • /read <file_path> - Read and analyze a file (text, code, images, videos)
  • /ls [directory] - List files in directory (default: current)
  • /list [directory] - Same as /ls
  • /dirs - Show allowed directories

🎬 Video Commands:
  • /read video.mp4 - Upload and analyze video content
  • /uploads - Show currently uploaded files
  • /cleanup - Delete all uploaded files from Gemini

❓ Other:
  • /help - Show this help
  • /quit or /exit - Exit the chat
  • Ctrl+C - Exit

Supported Video Formats:
  • MP4, AVI, MOV, MKV, WebM, FLV, WMV, M4V
  • Max size: 2GB per video

Examples:
  • /read demo.mp4
  • /read presentation.mov
  • What happens in this video?
  • Describe the key scenes in the video
  • Extract text from this video`
