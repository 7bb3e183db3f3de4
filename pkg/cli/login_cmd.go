package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"wfc-portal/internal/backend"
	"wfc-portal/internal/session"
)

func newLoginCmd(state *rootState) *cobra.Command {
	var (
		email    string
		password string
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and save the session to the active profile",
		Example: `  # Member login, password prompted
  wfcctl login --email alice@example.com

  # Admin login against a non-default host
  wfcctl login --admin --email admin@example.com --host https://portal.example.com/api/v1`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if password == "" {
				pw, err := promptPassword(cmd)
				if err != nil {
					return err
				}
				password = pw
			}

			store := state.sessionStore()
			res := store.Login(cmd.Context(), backend.Credentials{Email: email, Password: password})
			if !res.Success {
				switch res.Outcome {
				case session.OutcomePendingApproval:
					return errors.New("account is pending approval; try again once an administrator approves it")
				case session.OutcomeRevoked:
					return errors.New("account access has been revoked")
				default:
					return errors.New(res.Error)
				}
			}

			// Pin the resolved host and scope so later invocations reuse them.
			cfg, prof := newProfileStorage(state.profile).load()
			prof.Host = state.host
			prof.Admin = state.admin
			if err := newProfileStorage(state.profile).save(cfg, prof); err != nil {
				return err
			}

			sess, _ := store.Current()
			fmt.Fprintf(cmd.OutOrStdout(), "Signed in as %s (%s)\n", sess.DisplayName, sess.Email)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Account email")
	cmd.Flags().StringVar(&password, "password", "", "Account password (prompted when omitted)")
	_ = cmd.MarkFlagRequired("email")

	return cmd
}

func promptPassword(cmd *cobra.Command) (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return "", errors.New("no terminal for password prompt; pass --password")
	}
	fmt.Fprint(cmd.ErrOrStderr(), "Password: ")
	raw, err := term.ReadPassword(fd)
	fmt.Fprintln(cmd.ErrOrStderr())
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	return strings.TrimSpace(string(raw)), nil
}

func newLogoutCmd(state *rootState) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out and clear the saved session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			store := state.sessionStore()
			store.Logout(cmd.Context())
			fmt.Fprintln(cmd.OutOrStdout(), "Signed out.")
			return nil
		},
	}
}

func newWhoamiCmd(state *rootState) *cobra.Command {
	var refresh bool

	cmd := &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in account",
		RunE: func(cmd *cobra.Command, _ []string) error {
			storage := newProfileStorage(state.profile)

			if refresh {
				store := state.sessionStore()
				store.Initialize(cmd.Context())
				if _, ok := store.Current(); !ok {
					return errors.New("not signed in; run `wfcctl login` first")
				}
			}

			user, ok := storage.Profile()
			if !ok {
				return errors.New("not signed in; run `wfcctl login` first")
			}

			if state.output == "json" {
				return printJSON(cmd.OutOrStdout(), user)
			}
			return printTable(cmd.OutOrStdout(),
				[]string{"NAME", "EMAIL", "STATUS", "ROLE"},
				[][]string{{user.DisplayName(), user.Email, string(user.Status), string(user.Role)}},
			)
		},
	}

	cmd.Flags().BoolVar(&refresh, "refresh", false, "Revalidate the session against the backend first")

	return cmd
}
