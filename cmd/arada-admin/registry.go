package main

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/maf-y/ArardaHospital-Frontend/internal/domain/access"
	domainauth "github.com/maf-y/ArardaHospital-Frontend/internal/domain/auth"
)

type registryView struct {
	reg    *access.Registry
	routes *access.Routes
	guard  *access.Guard
}

func newRegistryView(reg *access.Registry) *registryView {
	routes := access.DefaultRoutes(reg)
	return &registryView{reg: reg, routes: routes, guard: access.NewGuard(reg, routes)}
}

func newRoutesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "routes",
		Short: "Print the role registry and the public and shared routes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			view, err := loadRegistry(cmd)
			if err != nil {
				return err
			}
			return view.printRoutes(cmd.OutOrStdout())
		},
	}
}

func (v *registryView) printRoutes(out io.Writer) error {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	if err := writef(tw, "ROLE\tLANDING\tSHELL\tPREFIXES\tMENU\n"); err != nil {
		return err
	}
	for _, d := range v.reg.Descriptors() {
		menu := make([]string, 0, len(d.Menu))
		for _, e := range d.Menu {
			menu = append(menu, e.Label)
		}
		if err := writef(tw, "%s\t%s\t%s\t%s\t%s\n",
			d.Role, d.LandingRoute, d.Shell,
			strings.Join(d.AllowedPrefixes, ","),
			strings.Join(menu, ", "),
		); err != nil {
			return err
		}
	}
	for _, r := range v.reg.Unconfigured() {
		if err := writef(tw, "%s\t-\t-\t-\tno dashboard\n", r); err != nil {
			return err
		}
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	if err := writef(out, "\npublic: %s\n", strings.Join(v.routes.Public(), " ")); err != nil {
		return err
	}
	return writef(out, "shared: %s\n", strings.Join(v.routes.Shared(), " "))
}

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Check that every role is accounted for and every dashboard page is reachable",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			view, err := loadRegistry(cmd)
			if err != nil {
				return err
			}
			problems := view.check()
			out := cmd.OutOrStdout()
			for _, p := range problems {
				if err := writef(out, "FAIL %s\n", p); err != nil {
					return err
				}
			}
			if len(problems) > 0 {
				return fmt.Errorf("%d registry problem(s)", len(problems))
			}
			return writef(out, "ok: %d roles with dashboards, %d without\n",
				len(view.reg.Descriptors()), len(view.reg.Unconfigured()))
		},
	}
}

// check reports roles missing from the registry and landing or menu routes the guard
// would not let their own role open.
func (v *registryView) check() []string {
	var problems []string
	for _, role := range domainauth.AllRoles() {
		_, err := v.reg.DescriptorFor(role)
		if err != nil && !errors.Is(err, access.ErrRoleNotConfigured) {
			problems = append(problems, fmt.Sprintf("role %s: %v", role, err))
		}
	}

	for _, d := range v.reg.Descriptors() {
		sess := domainauth.Authenticated(domainauth.Identity{UserID: "check"}, d.Role)
		paths := []string{d.LandingRoute}
		for _, e := range d.Menu {
			paths = append(paths, e.Path)
			for _, c := range e.Children {
				paths = append(paths, c.Path)
			}
		}
		for _, p := range paths {
			dec := v.guard.Decide(access.NavigationRequest{TargetPath: p, Session: sess})
			if dec.Outcome != access.Allow {
				problems = append(problems, fmt.Sprintf("role %s: %s is %s", d.Role, p, dec.Outcome))
			}
		}
		if got := v.guard.LandingFor(sess); got != d.LandingRoute {
			problems = append(problems, fmt.Sprintf("role %s: landing resolves to %q", d.Role, got))
		}
	}
	return problems
}
