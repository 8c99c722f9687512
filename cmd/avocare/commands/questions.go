package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/chokolattee/avocare/internal/backend"
	"github.com/chokolattee/avocare/internal/config"
	"github.com/chokolattee/avocare/internal/locale"
)

var (
	questionsLanguage string
	questionsRemote   bool
)

var questionsCmd = &cobra.Command{
	Use:   "questions",
	Short: "Show quick questions",
	Long: `Show the pre-authored quick questions offered in the chat panel.

By default the built-in per-language list is shown; --remote fetches the
service's suggestion list instead.

Examples:
  avocare questions
  avocare questions --language filipino
  avocare questions --remote`,
	RunE: runQuestions,
}

func init() {
	questionsCmd.Flags().StringVarP(&questionsLanguage, "language", "l", "", "language: english, filipino, taglish")
	questionsCmd.Flags().BoolVar(&questionsRemote, "remote", false, "fetch suggestions from the service")
}

func runQuestions(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	if questionsRemote {
		client, err := backend.New(backend.Config{BaseURL: cfg.API.BaseURL})
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
		defer cancel()

		suggestions, err := client.Suggestions(ctx)
		if err != nil {
			return fmt.Errorf("failed to fetch suggestions: %w", err)
		}

		if jsonOut {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(suggestions)
		}

		for _, s := range suggestions {
			fmt.Printf("%d. [%s] %s\n", s.ID, s.Category, s.Question)
		}
		return nil
	}

	lang := locale.Language(cfg.Chat.Language)
	if questionsLanguage != "" {
		lang = locale.Language(questionsLanguage)
	}
	if !locale.Valid(lang) {
		return fmt.Errorf("unknown language %q (supported: english, filipino, taglish)", lang)
	}

	questions := locale.ConfigFor(lang).QuickQuestions
	if jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(questions)
	}

	for i, q := range questions {
		fmt.Printf("%d. %s\n", i+1, q)
	}
	return nil
}
