// Package cli implements the khatactl command tree.
package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"customer-ledger/internal/client"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	logger = log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: false,
		Prefix:          "khatactl",
	})

	serverFlag  string
	verboseFlag bool
)

// NewRootCmd builds the full command tree.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "khatactl",
		Short:         "Command-line client for the customer-ledger server",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verboseFlag {
				logger.SetLevel(log.DebugLevel)
			}
		},
	}

	root.PersistentFlags().StringVar(&serverFlag, "server", "", "server base URL (default from config)")
	root.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "debug logging")

	root.AddCommand(
		newRegisterCmd(),
		newLoginCmd(),
		newLogoutCmd(),
		newMeCmd(),
		newListCmd(),
		newAddCmd(),
		newEditCmd(),
		newDeleteCmd(),
		newImportCmd(),
		newExportCmd(),
		newStatsCmd(),
	)
	return root
}

// configDir returns (and creates) the khatactl config directory.
func configDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("config dir: %w", err)
	}
	dir := filepath.Join(base, "khatactl")
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", fmt.Errorf("create config dir: %w", err)
	}
	return dir, nil
}

// loadConfig reads server URL and token from the config file, with the
// --server flag taking precedence.
func loadConfig() (*viper.Viper, error) {
	dir, err := configDir()
	if err != nil {
		return nil, err
	}
	v := viper.New()
	v.SetConfigFile(filepath.Join(dir, "config.yaml"))
	v.SetDefault("server", "http://localhost:8080")
	if err := v.ReadInConfig(); err != nil {
		if !os.IsNotExist(err) {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}
	return v, nil
}

// newClient builds a client from the stored config.
func newClient() (*client.Client, error) {
	v, err := loadConfig()
	if err != nil {
		return nil, err
	}
	server := v.GetString("server")
	if serverFlag != "" {
		server = serverFlag
	}
	return client.New(server, v.GetString("token")), nil
}

// saveToken persists the session token after login/logout.
func saveToken(token string) error {
	v, err := loadConfig()
	if err != nil {
		return err
	}
	v.Set("token", token)
	if serverFlag != "" {
		v.Set("server", serverFlag)
	}
	if err := v.WriteConfig(); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// signInHint translates an authorization failure into the prompt for the
// operation at hand; other errors pass through unchanged.
func signInHint(err error, operation string) error {
	if client.IsUnauthorized(err) {
		return fmt.Errorf("Please sign in to %s", operation)
	}
	return err
}
