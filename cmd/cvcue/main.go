package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/netkit-io/cvcue/cmd/cvcue/commands"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "cvcue",
	Short: "CV-CUE WiFi management CLI",
	Long: `A command-line interface for the CV-CUE WiFi-management REST API.

Authenticates with API-key credentials, caches the session cookie across
invocations, and exposes managed devices, wireless clients, and locations.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringP("config", "c", "", "config file (default is $HOME/.cvcue/config.yml)")
	rootCmd.PersistentFlags().String("base-url", "", "API base URL")
	rootCmd.PersistentFlags().String("key-id", "", "API key id")
	rootCmd.PersistentFlags().String("key-value", "", "API key value")
	rootCmd.PersistentFlags().String("client-id", "", "API client id")
	rootCmd.PersistentFlags().String("session-file", "", "session cookie file (default .session)")
	rootCmd.PersistentFlags().StringP("output", "o", "table", "output format (table, json, compact)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")

	// Bind flags to viper
	_ = viper.BindPFlag("base_url", rootCmd.PersistentFlags().Lookup("base-url"))
	_ = viper.BindPFlag("key_id", rootCmd.PersistentFlags().Lookup("key-id"))
	_ = viper.BindPFlag("key_value", rootCmd.PersistentFlags().Lookup("key-value"))
	_ = viper.BindPFlag("client_id", rootCmd.PersistentFlags().Lookup("client-id"))
	_ = viper.BindPFlag("session_file", rootCmd.PersistentFlags().Lookup("session-file"))
	_ = viper.BindPFlag("output", rootCmd.PersistentFlags().Lookup("output"))
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))

	// Add commands
	rootCmd.AddCommand(commands.NewVersionCommand(version, commit, date))
	rootCmd.AddCommand(commands.NewSessionCommand())
	rootCmd.AddCommand(commands.NewManagedDevicesCommand())
	rootCmd.AddCommand(commands.NewClientDevicesCommand())
	rootCmd.AddCommand(commands.NewLocationsCommand())
	rootCmd.AddCommand(commands.NewConfigCommand())
}

func initConfig() {
	// Optional .env next to the working directory, for local development.
	_ = godotenv.Load()

	configFile, _ := rootCmd.PersistentFlags().GetString("config")
	if configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".cvcue"))
			viper.SetConfigName("config")
			viper.SetConfigType("yml")
		}
	}

	viper.SetEnvPrefix("CV_CUE")
	viper.AutomaticEnv()

	_ = viper.ReadInConfig()
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
