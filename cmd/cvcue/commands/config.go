package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/netkit-io/cvcue/internal/constants"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// fileConfig is the shape of $HOME/.cvcue/config.yml. The key value is never
// written; it belongs in the environment or a prompt.
type fileConfig struct {
	BaseURL     string `yaml:"base_url,omitempty"`
	KeyID       string `yaml:"key_id,omitempty"`
	ClientID    string `yaml:"client_id,omitempty"`
	SessionFile string `yaml:"session_file,omitempty"`
	Output      string `yaml:"output,omitempty"`
}

// NewConfigCommand creates the config command group.
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage CLI configuration",
		Long:  "View and initialize the cvcue configuration file",
	}

	cmd.AddCommand(newConfigViewCommand())
	cmd.AddCommand(newConfigInitCommand())

	return cmd
}

func newConfigViewCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "view",
		Short: "Show the effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			effective := fileConfig{
				BaseURL:     viper.GetString("base_url"),
				KeyID:       viper.GetString("key_id"),
				ClientID:    viper.GetString("client_id"),
				SessionFile: viper.GetString("session_file"),
				Output:      viper.GetString("output"),
			}

			data, err := yaml.Marshal(effective)
			if err != nil {
				return fmt.Errorf("encoding configuration: %w", err)
			}

			if viper.GetString("key_value") != "" {
				cmd.Printf("key_value: %s\n", constants.MaskedSecret)
			}

			cmd.Print(string(data))

			return nil
		},
	}
}

func newConfigInitCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Write the current settings to the configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			home, err := os.UserHomeDir()
			if err != nil {
				return fmt.Errorf("resolving home directory: %w", err)
			}

			dir := filepath.Join(home, ".cvcue")

			err = os.MkdirAll(dir, constants.ConfigDirPerm)
			if err != nil {
				return fmt.Errorf("creating config directory: %w", err)
			}

			content := fileConfig{
				BaseURL:     viper.GetString("base_url"),
				KeyID:       viper.GetString("key_id"),
				ClientID:    viper.GetString("client_id"),
				SessionFile: viper.GetString("session_file"),
				Output:      viper.GetString("output"),
			}

			data, err := yaml.Marshal(content)
			if err != nil {
				return fmt.Errorf("encoding configuration: %w", err)
			}

			path := filepath.Join(dir, "config.yml")

			err = os.WriteFile(path, data, constants.ConfigFilePerm)
			if err != nil {
				return fmt.Errorf("writing configuration: %w", err)
			}

			cmd.Printf("Wrote %s\n", path)

			return nil
		},
	}
}
