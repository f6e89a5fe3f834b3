package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/maf-y/ArardaHospital-Frontend/internal/domain/access"
	domainauth "github.com/maf-y/ArardaHospital-Frontend/internal/domain/auth"
)

func newDecideCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "decide <role|anonymous|unresolved> <path>",
		Short: "Evaluate the route guard for a session and path",
		Example: `  arada-admin decide Doctor /doctor/assigned-records
  arada-admin decide anonymous /triage/unassigned`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := sessionFor(args[0])
			if err != nil {
				return err
			}
			view, err := loadRegistry(cmd)
			if err != nil {
				return err
			}
			d := view.guard.Decide(access.NavigationRequest{TargetPath: args[1], Session: sess})
			out := cmd.OutOrStdout()
			if err := writef(out, "outcome:  %s\nroute:    %s\n", d.Outcome, d.Kind); err != nil {
				return err
			}
			if d.Location != "" {
				return writef(out, "location: %s\n", d.Location)
			}
			return nil
		},
	}
}

// sessionFor turns the first decide argument into a session.
func sessionFor(arg string) (domainauth.Session, error) {
	switch strings.ToLower(strings.TrimSpace(arg)) {
	case "anonymous", "anon", "-":
		return domainauth.Anonymous(), nil
	case "unresolved":
		return domainauth.Unresolved(), nil
	}
	role, err := domainauth.ParseRole(arg)
	if err != nil {
		return domainauth.Session{}, fmt.Errorf("unknown role %q: %w", arg, err)
	}
	return domainauth.Authenticated(domainauth.Identity{UserID: "cli"}, role), nil
}
