package cmd

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"example.com/backstage/services/campaign/internal/domain"
)

var (
	roleUser string
	roleName string
)

var rolesCmd = &cobra.Command{
	Use:   "roles",
	Short: "Inspect and assign user roles",
}

var rolesGrantCmd = &cobra.Command{
	Use:   "grant",
	Short: "Assign a role to a user",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp("campaign-cli", func(ctx context.Context, a *app) error {
			if err := a.services.Roles.Grant(ctx, roleUser, domain.Role(roleName)); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s is now %s\n", roleUser, roleName)
			return nil
		})
	},
}

var rolesShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the role and capabilities of a user",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp("campaign-cli", func(ctx context.Context, a *app) error {
			caps, err := a.services.Roles.Resolve(ctx, roleUser)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "user:                  %s\n", roleUser)
			fmt.Fprintf(out, "role:                  %s\n", caps.Role)
			fmt.Fprintf(out, "can_register_members:  %t\n", caps.CanRegisterMembers)
			fmt.Fprintf(out, "can_add_deliveries:    %t\n", caps.CanAddDeliveries)
			fmt.Fprintf(out, "can_manage_payments:   %t\n", caps.CanManagePayments)
			fmt.Fprintf(out, "can_capture_snapshots: %t\n", caps.CanCaptureSnapshots)
			return nil
		})
	},
}

func init() {
	rolesCmd.PersistentFlags().StringVar(&roleUser, "user", "", "user id (the token subject)")
	_ = rolesCmd.MarkPersistentFlagRequired("user")
	rolesGrantCmd.Flags().StringVar(&roleName, "role", "", "admin or user")
	_ = rolesGrantCmd.MarkFlagRequired("role")

	rolesCmd.AddCommand(rolesGrantCmd, rolesShowCmd)
	rootCmd.AddCommand(rolesCmd)
}

// withApp runs fn against a fully wired app and releases it afterwards
func withApp(source string, fn func(ctx context.Context, a *app) error) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	a, err := newApp(cfg, source)
	if err != nil {
		return err
	}

	runErr := fn(context.Background(), a)
	if err := a.Close(); err != nil && runErr == nil {
		return errors.Wrap(err, "failed to release resources")
	}
	return runErr
}
