package main

import (
	"context"
	"errors"
	"time"

	"github.com/spf13/cobra"

	"github.com/maf-y/ArardaHospital-Frontend/config"
	"github.com/maf-y/ArardaHospital-Frontend/internal/bootstrap"
	domainauth "github.com/maf-y/ArardaHospital-Frontend/internal/domain/auth"
)

const defaultProbeTimeout = 15 * time.Second

func newProbeCmd() *cobra.Command {
	var (
		token   string
		timeout time.Duration
	)
	cmd := &cobra.Command{
		Use:   "probe",
		Short: "Resolve a backend token against the identity API",
		Long: `probe calls the identity API's session endpoint with --token, as the portal does
when it resolves a session, and prints who the token belongs to and where the guard
would send them.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if token == "" {
				return errors.New("--token is required")
			}
			cfg, err := bootstrap.LoadConfig()
			if err != nil {
				return err
			}
			return runProbe(cmd, &cfg, token, timeout)
		},
	}
	cmd.Flags().StringVar(&token, "token", "", "Backend bearer token to probe")
	cmd.Flags().DurationVar(&timeout, "timeout", defaultProbeTimeout, "Probe timeout")
	return cmd
}

func runProbe(cmd *cobra.Command, cfg *config.AppConfig, token string, timeout time.Duration) error {
	logger := cliLogger(cmd.ErrOrStderr())
	identity, err := bootstrap.BuildIdentityClient(bootstrap.AuthConfig{
		Auth:    cfg.Auth,
		Backend: cfg.Backend,
		Logger:  logger,
	})
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if timeout <= 0 {
		timeout = defaultProbeTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	p, err := identity.Me(ctx, domainauth.Credential{Token: token})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if err := writef(out, "user:  %s\nname:  %s\nemail: %s\nrole:  %s\n",
		p.Identity.UserID, p.Identity.DisplayName(), p.Identity.Email, p.Role); err != nil {
		return err
	}

	role, err := domainauth.ParseRole(p.Role)
	if err != nil {
		return writef(out, "the portal would treat this session as anonymous: %v\n", err)
	}
	view, err := loadRegistry(cmd)
	if err != nil {
		return err
	}
	landing := view.guard.LandingFor(domainauth.Authenticated(p.Identity, role))
	if landing == "" {
		return writef(out, "landing: none (%s has no dashboard)\n", role.Label())
	}
	return writef(out, "landing: %s\n", landing)
}
