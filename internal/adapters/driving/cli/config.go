package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/discovery-updater/internal/adapters/driven/config/file"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage updater configuration",
	Long: `View and change the settings stored in the config file.
Environment variables still take precedence over stored values.`,
	RunE: runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show stored settings",
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

var configSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Store a setting",
	Args:  cobra.ExactArgs(2),
	RunE:  runConfigSet,
}

var configKeysCmd = &cobra.Command{
	Use:   "keys",
	Short: "List the supported keys",
	Args:  cobra.NoArgs,
	RunE:  runConfigKeys,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configKeysCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	if configStore == nil {
		return errors.New("config store not configured")
	}

	cmd.Printf("Config file: %s\n", configStore.Path())
	cmd.Println()

	keys := configStore.Keys()
	if len(keys) == 0 {
		cmd.Println("No settings stored; defaults apply.")
		return nil
	}

	for _, key := range keys {
		val, _ := configStore.Get(key)
		if file.IsSecretKey(key) {
			val = maskToken(fmt.Sprint(val))
		}
		cmd.Printf("  %s = %v\n", key, val)
	}
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	if configStore == nil {
		return errors.New("config store not configured")
	}

	key, value := args[0], args[1]
	if _, ok := file.DescribeKey(key); !ok {
		return fmt.Errorf("unknown key %q (see 'config keys')", key)
	}

	if err := configStore.Set(key, value); err != nil {
		return fmt.Errorf("failed to save setting: %w", err)
	}

	if file.IsSecretKey(key) {
		value = maskToken(value)
	}
	cmd.Printf("Set %s = %s\n", key, value)
	return nil
}

func runConfigKeys(cmd *cobra.Command, _ []string) error {
	for _, key := range file.KnownKeys() {
		desc, _ := file.DescribeKey(key)
		cmd.Printf("  %-22s %s\n", key, desc)
	}
	return nil
}

// maskToken hides all but the edges of a credential.
func maskToken(token string) string {
	if len(token) <= 8 {
		return "****"
	}
	return token[:4] + "..." + token[len(token)-4:]
}
