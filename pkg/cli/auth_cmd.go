package cli

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/spf13/cobra"
)

func newAuthCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Authentication helpers",
	}

	cmd.AddCommand(newAuthDevTokenCmd())
	return cmd
}

// newAuthDevTokenCmd mints an HS256 token accepted by a backend running in
// dev mode, so local portal work does not need the full login flow.
func newAuthDevTokenCmd() *cobra.Command {
	var (
		email   string
		secret  string
		admin   bool
		expires time.Duration
	)

	cmd := &cobra.Command{
		Use:   "dev-token",
		Short: "Generate a dev-mode JWT and save it to the active profile",
		Example: `  # Member token with the default dev secret
  wfcctl auth dev-token --email alice@example.com --secret dev-secret

  # Admin token with custom expiry
  wfcctl auth dev-token --email admin@example.com --admin --secret dev-secret --expires 48h`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			now := time.Now()
			claims := jwt.MapClaims{
				"sub": email,
				"iat": now.Unix(),
				"exp": now.Add(expires).Unix(),
			}
			if admin {
				claims["role"] = "admin"
			}

			token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
			signed, err := token.SignedString([]byte(secret))
			if err != nil {
				return fmt.Errorf("sign token: %w", err)
			}

			cfg, err := LoadUserConfig()
			if err != nil {
				return err
			}
			name := cfg.CurrentProfile
			if name == "" {
				name = "default"
				cfg.CurrentProfile = name
			}
			p := cfg.Profiles[name]
			p.AccessToken = signed
			p.Admin = admin
			cfg.Profiles[name] = p
			if err := SaveUserConfig(cfg); err != nil {
				return fmt.Errorf("save config: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), signed)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Account email (JWT sub claim)")
	cmd.Flags().StringVar(&secret, "secret", "", "JWT signing secret (HS256)")
	cmd.Flags().BoolVar(&admin, "admin", false, "Include the admin role claim")
	cmd.Flags().DurationVar(&expires, "expires", 24*time.Hour, "Token expiry duration")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("secret")

	return cmd
}
