// Command journal runs the wellness journal API server and a command-line
// client for it.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

const (
	appName = "journal"

	defaultServerURL = "http://localhost:5000"
)

// Version is set at build time with -ldflags.
var Version = "dev"

// globals are the flags shared by every subcommand.
type globals struct {
	configPath  string
	envFile     string
	logLevel    string
	serverURL   string
	sessionPath string
}

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	g := &globals{}

	cmd := &cobra.Command{
		Use:   appName,
		Short: "Wellness journal server and client",
		Long: `journal keeps notes and a daily mood for each user.

Run "journal serve" to start the API server. The remaining commands talk to a
running server over HTTP and remember the login session between invocations.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVarP(&g.configPath, "config", "c", "", "Server config file (YAML)")
	cmd.PersistentFlags().StringVar(&g.envFile, "env-file", ".env", "Dotenv file read by the server")
	cmd.PersistentFlags().StringVar(&g.logLevel, "log-level", "", "Log level override (debug, info, warn, error)")
	cmd.PersistentFlags().StringVarP(&g.serverURL, "server", "s", envOr("JOURNAL_SERVER", defaultServerURL), "API server base URL")
	cmd.PersistentFlags().StringVar(&g.sessionPath, "session", "", "Session file path (defaults to the user config dir)")

	cmd.AddCommand(
		serveCmd(g),
		migrateCmd(g),
		versionCmd(),
		registerCmd(g),
		loginCmd(g),
		logoutCmd(g),
		whoamiCmd(g),
		notesCmd(g),
		moodCmd(g),
	)

	return cmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s version %s\n", appName, Version)
		},
	}
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
