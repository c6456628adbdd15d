package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/binhbb2204/movie-stats-viz/cli/config"
	"github.com/binhbb2204/movie-stats-viz/pkg/utils"
)

var (
	tokenSubject string
	tokenTTL     time.Duration
	tokenSecret  string
	tokenPrint   bool
)

var adminCmd = &cobra.Command{
	Use:   "admin",
	Short: "Administrative helpers",
}

var adminTokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Mint an admin token",
	Long: `Sign an admin JWT for /api/admin endpoints and store it in the config.
The secret must match the API server's JWT_SECRET; it is read from --secret or auth.jwt_secret.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			printError("Configuration not initialized")
			return err
		}

		secret := tokenSecret
		if secret == "" {
			secret = cfg.Auth.JWTSecret
		}
		if secret == "" {
			return fmt.Errorf("no secret: pass --secret or run: movieviz config set auth.jwt_secret <secret>")
		}

		token, err := utils.GenerateJWT(tokenSubject, utils.RoleAdmin, secret, tokenTTL)
		if err != nil {
			return err
		}

		cfg.Auth.Token = token
		if err := config.Save(cfg); err != nil {
			return fmt.Errorf("failed to save token: %w", err)
		}

		if tokenPrint {
			fmt.Println(token)
		}
		printSuccess(fmt.Sprintf("Admin token for %q saved (expires in %s)", tokenSubject, tokenTTL))
		return nil
	},
}

func init() {
	adminTokenCmd.Flags().StringVar(&tokenSubject, "subject", "cli", "token subject")
	adminTokenCmd.Flags().DurationVar(&tokenTTL, "ttl", 24*time.Hour, "token lifetime")
	adminTokenCmd.Flags().StringVar(&tokenSecret, "secret", "", "signing secret (defaults to auth.jwt_secret)")
	adminTokenCmd.Flags().BoolVar(&tokenPrint, "print", false, "also print the token")
	adminCmd.AddCommand(adminTokenCmd)
}
