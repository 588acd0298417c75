// Package main provides the gemchat CLI entry point.
package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"gemchat/internal/chat"
	"gemchat/internal/config"
	"gemchat/internal/gemini"
	"gemchat/internal/logging"
	"gemchat/internal/sandbox"
)

var (
	// Global flags
	apiKey  string
	dirs    []string
	model   string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "gemchat",
	Short: "Terminal chat with the Gemini API and local file access",
	Long: `gemchat is an interactive terminal chat client for the Gemini API.

It keeps a linear conversation transcript and can attach local files as
context: text and source files are inlined, images are sent as base64,
and videos are uploaded through the Files API (resumable upload plus a
processing wait) before being referenced in the conversation.

File access is restricted to the configured allowed directories.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := logging.Init(verbose); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logging.Sync()
	},
	RunE: runChat,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiKey, "api-key", "", "Gemini API key (or set GEMINI_API_KEY)")
	rootCmd.PersistentFlags().StringSliceVar(&dirs, "dirs", nil, "allowed directories for file access (default: current directory)")
	rootCmd.PersistentFlags().StringVar(&model, "model", "", "model name (default "+gemini.DefaultModel+")")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

// errMissingAPIKey signals the already-reported missing-key exit so
// main can skip the generic error line.
var errMissingAPIKey = errors.New("missing API key")

func runChat(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		// The Config still carries the environment values.
		fmt.Fprintf(os.Stderr, "warning: failed to load config file: %v\n", err)
	}

	key := apiKey
	if key == "" {
		key = cfg.APIKey
	}
	if key == "" {
		fmt.Println("❌ Error: Please provide Gemini API key via --api-key or GEMINI_API_KEY environment variable")
		fmt.Println("Get your API key from: https://makersuite.google.com/app/apikey")
		return errMissingAPIKey
	}

	allowed := dirs
	if len(allowed) == 0 {
		allowed = cfg.Dirs
	}
	guard, err := sandbox.NewGuard(allowed)
	if err != nil {
		return fmt.Errorf("failed to resolve allowed directories: %w", err)
	}

	clientCfg := gemini.DefaultConfig(key)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	if m := firstNonEmpty(model, cfg.Model); m != "" {
		clientCfg.Model = m
	}
	client := gemini.NewClient(clientCfg)

	session := chat.NewSession(guard, client, os.Stdout)
	logging.Session("[Shell] starting model=%s roots=%s", client.Model(), strings.Join(guard.Roots(), ","))

	return runShell(cmd.Context(), session, guard)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

func main() {
	err := rootCmd.Execute()
	// Cobra skips PersistentPostRun when RunE fails, so flush here too.
	logging.Sync()
	if err != nil {
		if !errors.Is(err, errMissingAPIKey) {
			fmt.Fprintf(os.Stderr, "❌ Unexpected error: %v\n", err)
		}
		os.Exit(1)
	}
}
