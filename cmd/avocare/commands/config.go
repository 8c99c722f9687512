package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/chokolattee/avocare/internal/config"
	"github.com/chokolattee/avocare/internal/locale"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Long: `Manage avocare configuration.

Subcommands:
  get [key]           Show configuration value(s)
  set <key> <value>   Set a configuration value
  edit                Open config in $EDITOR
  path                Show config file path`,
}

func init() {
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configEditCmd)
	configCmd.AddCommand(configPathCmd)
}

var configGetCmd = &cobra.Command{
	Use:   "get [key]",
	Short: "Show configuration",
	Long: `Show configuration values.

Examples:
  avocare config get                 # Show all config
  avocare config get api.base_url
  avocare config get chat.language`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		if len(args) == 0 {
			if jsonOut {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(cfg)
			}

			enc := toml.NewEncoder(os.Stdout)
			return enc.Encode(cfg)
		}

		key := args[0]
		value := getConfigValue(cfg, key)
		if value == nil {
			return fmt.Errorf("key not found: %s", key)
		}

		if jsonOut {
			enc := json.NewEncoder(os.Stdout)
			return enc.Encode(value)
		}

		fmt.Printf("%v\n", value)
		return nil
	},
}

func getConfigValue(cfg *config.Config, key string) interface{} {
	parts := strings.Split(key, ".")

	switch parts[0] {
	case "api":
		if len(parts) == 1 {
			return cfg.API
		}
		switch parts[1] {
		case "base_url":
			return cfg.API.BaseURL
		case "timeout_seconds":
			return cfg.API.TimeoutSeconds
		}

	case "chat":
		if len(parts) == 1 {
			return cfg.Chat
		}
		switch parts[1] {
		case "language":
			return cfg.Chat.Language
		}
	}

	return nil
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long: `Set a configuration value.

Examples:
  avocare config set api.base_url https://avocare.example.com
  avocare config set chat.language taglish
  avocare config set api.timeout_seconds 30`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key := args[0]
		value := args[1]

		cfg, err := config.Load()
		if err != nil {
			return err
		}

		if err := setConfigValue(cfg, key, value); err != nil {
			return err
		}

		if err := cfg.Save(); err != nil {
			return fmt.Errorf("failed to save config: %w", err)
		}

		fmt.Printf("Set %s = %s\n", key, value)
		return nil
	},
}

func setConfigValue(cfg *config.Config, key, value string) error {
	parts := strings.Split(key, ".")

	switch parts[0] {
	case "api":
		if len(parts) != 2 {
			return fmt.Errorf("invalid key: %s", key)
		}
		switch parts[1] {
		case "base_url":
			cfg.API.BaseURL = value
		case "timeout_seconds":
			secs, err := strconv.Atoi(value)
			if err != nil || secs <= 0 {
				return fmt.Errorf("invalid timeout: %s", value)
			}
			cfg.API.TimeoutSeconds = secs
		default:
			return fmt.Errorf("unknown key: %s", key)
		}

	case "chat":
		if len(parts) != 2 {
			return fmt.Errorf("invalid key: %s", key)
		}
		switch parts[1] {
		case "language":
			if !locale.Valid(locale.Language(value)) {
				return fmt.Errorf("unknown language %q (supported: english, filipino, taglish)", value)
			}
			cfg.Chat.Language = value
		default:
			return fmt.Errorf("unknown key: %s", key)
		}

	default:
		return fmt.Errorf("unknown section: %s", parts[0])
	}

	return nil
}

var configEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Open config in editor",
	RunE: func(cmd *cobra.Command, args []string) error {
		editor := os.Getenv("EDITOR")
		if editor == "" {
			editor = "vim"
		}

		configPath := config.ConfigPath()

		// Ensure config exists
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		if err := cfg.Save(); err != nil {
			return err
		}

		c := exec.Command(editor, configPath)
		c.Stdin = os.Stdin
		c.Stdout = os.Stdout
		c.Stderr = os.Stderr

		return c.Run()
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Show config file path",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(config.ConfigPath())
	},
}
