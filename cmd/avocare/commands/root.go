package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var jsonOut bool

var rootCmd = &cobra.Command{
	Use:   "avocare",
	Short: "avocare - AvoCare farming assistant client",
	Long: `avocare is a terminal client for the AvoCare avocado farming assistant.

Commands:
  avocare chat         Interactive assistant chat
  avocare questions    Show quick questions
  avocare status       Check the chatbot service health
  avocare config       Manage configuration`,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "output as JSON")

	// Add commands
	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(questionsCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}

func Execute(ver string) error {
	version = ver
	return rootCmd.Execute()
}

var version string

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("avocare %s\n", version)
	},
}
