package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	jwttoken "github.com/chiboi241-boop/EduScience/internal/jwt_token"
	"github.com/chiboi241-boop/EduScience/internal/platform/config"
	"github.com/chiboi241-boop/EduScience/pkg/domain"
)

var tokenTTL time.Duration

// tokenCmd mints an access token for a principal
var tokenCmd = &cobra.Command{
	Use:   "token <principal>",
	Short: "Mint a registry access token",
	Long: `Sign an HS256 access token whose subject is the given principal, using
the JWT_* settings the server reads from the environment.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		principal, err := domain.ParsePrincipal(args[0])
		if err != nil {
			return err
		}
		cfg, err := config.FromEnv()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		ttl := tokenTTL
		if ttl <= 0 {
			ttl = cfg.JWT.TokenTTL
		}
		svc := jwttoken.NewJWTService(cfg.JWT.SigningKey, cfg.JWT.Issuer, cfg.JWT.Audience)
		token, err := svc.GenerateAccessToken(principal, ttl)
		if err != nil {
			return fmt.Errorf("failed to sign token: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), token)
		return nil
	},
}

func init() {
	tokenCmd.Flags().DurationVar(&tokenTTL, "ttl", 0, "token lifetime (defaults to JWT_TOKEN_TTL)")
}
