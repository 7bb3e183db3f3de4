// Package cli implements the wfcctl command-line client for the church
// portal backend. It shares the session, gateway, and list controller
// packages with the web portal; only the credential storage differs, using
// named profiles in ~/.wfc/config.yaml instead of cookies.
package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"wfc-portal/internal/backend"
	"wfc-portal/internal/session"
)

var version = "dev"

const defaultHost = "http://localhost:8000/api/v1"

// Execute runs the CLI and returns the process exit code.
func Execute() int {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		output, _ := rootCmd.PersistentFlags().GetString("output")
		if output == "json" {
			_ = printJSON(os.Stdout, map[string]any{"error": err.Error()})
		} else {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		return 1
	}
	return 0
}

// rootState carries the flag/env/profile-resolved settings shared by every
// subcommand.
type rootState struct {
	host    string
	output  string
	profile string
	admin   bool
}

// client builds a gateway client for the resolved host.
func (s *rootState) client() *backend.Client {
	return backend.New(s.host, 30*time.Second)
}

// sessionStore builds a session store bound to the active profile's saved
// credentials.
func (s *rootState) sessionStore() *session.Store {
	scope := session.ScopeMember
	if s.admin {
		scope = session.ScopeAdmin
	}
	return session.New(s.client(), newProfileStorage(s.profile), scope)
}

func newRootCmd() *cobra.Command {
	state := &rootState{}

	rootCmd := &cobra.Command{
		Use:           "wfcctl",
		Short:         "Church portal CLI",
		Long:          "Command-line client for the Word of Faith Church portal backend.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := LoadUserConfig()
			if err != nil {
				return err
			}
			name, p := cfg.ActiveProfile(state.profile)
			state.profile = name

			// Precedence: flag > env > profile > default.
			if !cmd.Flags().Changed("host") {
				if v := os.Getenv("WFC_HOST"); v != "" {
					state.host = v
				} else if p.Host != "" {
					state.host = p.Host
				}
			}
			if !cmd.Flags().Changed("output") {
				if v := os.Getenv("WFC_OUTPUT"); v != "" {
					state.output = v
				} else if p.Output != "" {
					state.output = p.Output
				}
			}
			if !cmd.Flags().Changed("admin") && p.Admin {
				state.admin = true
			}

			return validateOutputFormat(state.output)
		},
	}

	rootCmd.PersistentFlags().StringVar(&state.host, "host", defaultHost, "Backend API base URL")
	rootCmd.PersistentFlags().StringVarP(&state.output, "output", "o", "table", "Output format (table, json)")
	rootCmd.PersistentFlags().StringVarP(&state.profile, "profile", "p", "", "Config profile to use")
	rootCmd.PersistentFlags().BoolVar(&state.admin, "admin", false, "Use the admin endpoints and admin session")

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newAuthCmd())
	rootCmd.AddCommand(newLoginCmd(state))
	rootCmd.AddCommand(newLogoutCmd(state))
	rootCmd.AddCommand(newWhoamiCmd(state))
	rootCmd.AddCommand(newUsersCmd(state))
	rootCmd.AddCommand(newSermonsCmd(state))

	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the CLI version",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "wfcctl "+version)
		},
	}
}
