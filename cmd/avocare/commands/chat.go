package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/chokolattee/avocare/internal/backend"
	"github.com/chokolattee/avocare/internal/config"
	"github.com/chokolattee/avocare/internal/locale"
	"github.com/chokolattee/avocare/internal/session"
	"github.com/chokolattee/avocare/internal/tui"
)

var (
	chatLanguage string
	chatAPIURL   string
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start the interactive assistant",
	Long: `Start an interactive chat session with the AvoCare assistant.

Examples:
  avocare chat
  avocare chat --language taglish
  avocare chat --api-url https://avocare.example.com`,
	RunE: runChat,
}

func init() {
	chatCmd.Flags().StringVarP(&chatLanguage, "language", "l", "", "assistant language: english, filipino, taglish")
	chatCmd.Flags().StringVar(&chatAPIURL, "api-url", "", "AvoCare service base URL")
}

func runChat(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := config.EnsureDirs(); err != nil {
		return fmt.Errorf("failed to create directories: %w", err)
	}

	baseURL := cfg.API.BaseURL
	if chatAPIURL != "" {
		baseURL = chatAPIURL
	}

	lang := locale.Language(cfg.Chat.Language)
	if chatLanguage != "" {
		lang = locale.Language(chatLanguage)
	}
	if !locale.Valid(lang) {
		return fmt.Errorf("unknown language %q (supported: english, filipino, taglish)", lang)
	}

	client, err := backend.New(backend.Config{BaseURL: baseURL})
	if err != nil {
		return err
	}

	ctrl := session.New(session.Config{
		Backend:  client,
		Language: lang,
		Timeout:  time.Duration(cfg.API.TimeoutSeconds) * time.Second,
	})

	return tui.RunChat(ctrl)
}
