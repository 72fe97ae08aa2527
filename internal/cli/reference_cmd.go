package cli

import (
	"fmt"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/alexanderramin/timesheet/internal/cli/formatter"
	"github.com/alexanderramin/timesheet/internal/domain"
	"github.com/alexanderramin/timesheet/internal/picker"
)

func newCustomerCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "customer",
		Aliases: []string{"client"},
		Short:   "Manage clients",
	}
	cmd.AddCommand(newCustomerListCmd(app), newCustomerCreateCmd(app))
	return cmd
}

func newCustomerListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List clients",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			customers, err := app.API.ListCustomers(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatCustomers(customers))
			return nil
		},
	}
}

func newCustomerCreateCmd(app *App) *cobra.Command {
	form := &picker.ClientForm{}

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a client",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !form.Valid() {
				return fmt.Errorf("%w: %s", picker.ErrInvalid, joinErrors(form.Errors()))
			}
			c, err := form.Submit(cmd.Context(), app.API)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.Success(fmt.Sprintf("Created client %s [%s] (id %d).", formatter.Bold(c.Name), c.Code, c.ID)))
			return nil
		},
	}

	cmd.Flags().StringVar(&form.Name, "name", "", "Client name")
	cmd.Flags().StringVar(&form.Code, "code", "", "Client code")
	cmd.Flags().StringVar(&form.Address, "address", "", "Client address")
	return cmd
}

func newUserCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Browse users",
	}
	cmd.AddCommand(newUserListCmd(app))
	return cmd
}

func newUserListCmd(app *App) *cobra.Command {
	var branch, userType, search string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List users that can join a project team",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var types []domain.UserType
			if userType != "" && userType != "all" {
				t, err := domain.ParseUserType(userType)
				if err != nil {
					return err
				}
				types = append(types, t)
			}
			users, err := app.API.ListUsers(cmd.Context())
			if err != nil {
				return err
			}
			keep := picker.All(picker.ByBranch(branch), picker.ByType(types...), picker.BySearch(search))
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatUsers(lo.Filter(users, func(u domain.User, _ int) bool { return keep(u) })))
			return nil
		},
	}

	cmd.Flags().StringVar(&branch, "branch", picker.AllBranches, "Branch name, or all")
	cmd.Flags().StringVar(&userType, "type", "all", "User type: staff, internship, collaborator or all")
	cmd.Flags().StringVarP(&search, "search", "s", "", "Search by name or email")
	return cmd
}

func newTaskCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Browse tasks",
	}

	var search string
	list := &cobra.Command{
		Use:   "list",
		Short: "List tasks that can be assigned to a project",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tasks, err := app.API.ListTasks(cmd.Context())
			if err != nil {
				return err
			}
			keep := picker.All(picker.TaskSearch(search))
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatTasks(lo.Filter(tasks, func(t domain.Task, _ int) bool { return keep(t) })))
			return nil
		},
	}
	list.Flags().StringVarP(&search, "search", "s", "", "Search by task name")

	cmd.AddCommand(list)
	return cmd
}

func newBranchCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "branch",
		Short: "Browse branches",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List branches",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			branches, err := app.API.ListBranches(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatBranches(branches))
			return nil
		},
	})
	return cmd
}
