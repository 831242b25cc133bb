package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"inventoryManagement/internal/auth"
	"inventoryManagement/models"
)

var createUserRole string

var createUserCmd = &cobra.Command{
	Use:   "create-user <username> <password>",
	Short: "Create a login account",
	Args:  cobra.ExactArgs(2),
	RunE:  runCreateUser,
}

func init() {
	createUserCmd.Flags().StringVar(&createUserRole, "role", models.RoleStaff, "account role: admin or staff")
	rootCmd.AddCommand(createUserCmd)
}

func runCreateUser(cmd *cobra.Command, args []string) error {
	if createUserRole != models.RoleAdmin && createUserRole != models.RoleStaff {
		return fmt.Errorf("invalid role %q: must be admin or staff", createUserRole)
	}
	_, d, _, users, err := openRepos()
	if err != nil {
		return err
	}
	defer d.Close()

	u, err := users.Create(cmd.Context(), args[0], auth.HashPassword(args[1]), createUserRole)
	if err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	fmt.Printf("User %q created with role %q (id %d)\n", u.Username, u.Role, u.ID)
	return nil
}
