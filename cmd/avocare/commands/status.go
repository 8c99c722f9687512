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
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Check the chatbot service health",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		client, err := backend.New(backend.Config{BaseURL: cfg.API.BaseURL})
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
		defer cancel()

		health, err := client.Health(ctx)
		if err != nil {
			return fmt.Errorf("health check failed: %w", err)
		}

		if jsonOut {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(health)
		}

		fmt.Printf("Service: %s\n", health.Service)
		fmt.Printf("Status:  %s\n", health.Status)
		fmt.Printf("Message: %s\n", health.Message)
		return nil
	},
}
