package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zjrosen/rounds/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the rounds configuration file",
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long: fmt.Sprintf(`Set one value in the config file, keeping its comments and layout.
The file is the one rounds read at startup, or .rounds/config.yaml.

Keys: %s

Examples:
  rounds config set api.hospital_code H42
  rounds config set tracing.enabled true`, strings.Join(config.SettableKeys, ", ")),
	Args: cobra.ExactArgs(2),
	RunE: func(_ *cobra.Command, args []string) error {
		path := configFileUsed()
		if err := config.SetValue(path, args[0], args[1]); err != nil {
			return err
		}
		_, err := fmt.Fprintf(os.Stdout, "%s = %s (%s)\n", args[0], args[1], path)
		return err
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file in use",
	RunE: func(_ *cobra.Command, _ []string) error {
		_, err := fmt.Fprintln(os.Stdout, configFileUsed())
		return err
	},
}

func init() {
	configCmd.AddCommand(configSetCmd, configPathCmd)
	rootCmd.AddCommand(configCmd)
}
