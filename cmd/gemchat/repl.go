package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/charmbracelet/glamour"

	"gemchat/internal/chat"
	"gemchat/internal/logging"
	"gemchat/internal/sandbox"
)

// runShell runs the blocking read-route-print loop. One user turn is
// fully processed, including any nested upload/poll sequence, before
// the next line is read.
func runShell(ctx context.Context, session *chat.Session, guard *sandbox.Guard) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigch := make(chan os.Signal, 1)
	signal.Notify(sigch, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigch)
	go func() {
		<-sigch
		cancel()
	}()

	// Stdin reader goroutine feeding lines into a channel; the loop
	// itself stays single-threaded.
	scanner := newLineScanner(os.Stdin)
	inputCh := make(chan string)
	go func() {
		for scanner.Scan() {
			inputCh <- scanner.Text()
		}
		close(inputCh)
	}()

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		renderer = nil
	}

	printBanner(guard)

	for {
		fmt.Print("\n" + userStyle.Render("💬 You:") + " ")

		var (
			line string
			ok   bool
		)
		select {
		case <-ctx.Done():
			// Interrupt: best-effort deletion of uploaded files.
			fmt.Println("\n🧹 Cleaning up uploaded files...")
			session.Teardown(context.Background())
			fmt.Println("👋 Goodbye!")
			return nil
		case line, ok = <-inputCh:
			if !ok {
				// End of input, or the reader gave up on a bad stream.
				fmt.Println()
				if err := scanner.Err(); err != nil {
					fmt.Printf("⚠️ Input error: %v\n", err)
				}
				session.Teardown(context.Background())
				fmt.Println("👋 Goodbye!")
				return nil
			}
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if chat.IsExitCommand(line) {
			fmt.Println("👋 Goodbye!")
			return nil
		}

		fmt.Println("\n" + modelStyle.Render("🤖 Gemini:"))
		response := session.HandleInput(ctx, line)
		printResponse(renderer, response)
	}
}

// newLineScanner builds the prompt line reader. The default Scanner
// token limit is 64 KiB, which a pasted code block can exceed; that
// must not end the session, so the buffer ceiling is raised to 4 MiB.
func newLineScanner(r io.Reader) *bufio.Scanner {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	return scanner
}

// printResponse renders the reply as markdown when a renderer is
// available, falling back to the raw text.
func printResponse(renderer *glamour.TermRenderer, response string) {
	if renderer != nil {
		if rendered, err := renderer.Render(response); err == nil {
			fmt.Print(rendered)
			return
		}
	}
	fmt.Println(response)
}

func printBanner(guard *sandbox.Guard) {
	rule := strings.Repeat("=", 55)
	fmt.Println(bannerStyle.Render("🤖 Gemini Terminal Chat with Video Support"))
	fmt.Println(rule)
	fmt.Printf("📁 Allowed directories: %s\n", strings.Join(guard.Roots(), ", "))
	fmt.Println("🎬 Supports: MP4, AVI, MOV, MKV, WebM, FLV, WMV, M4V")
	fmt.Println(dimStyle.Render("Type /help for commands or just start chatting!"))
	fmt.Println(rule)
	logging.SessionDebug("[Shell] banner printed")
}
