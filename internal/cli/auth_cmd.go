package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/alexanderramin/timesheet/internal/cli/formatter"
)

func newLoginCmd(app *App) *cobra.Command {
	var user, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and remember the session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if (strings.TrimSpace(user) == "" || password == "") && app.interactive() {
				if err := promptCredentials(&user, &password); err != nil {
					return err
				}
			}
			if _, err := app.Session.Login(cmd.Context(), user, password); err != nil {
				return err
			}
			sess, _ := app.Session.Current()
			fmt.Fprintln(cmd.OutOrStdout(), formatter.Success("Logged in as "+formatter.Bold(sess.UserName)+"."))
			return nil
		},
	}

	cmd.Flags().StringVarP(&user, "user", "u", "", "User name or email address")
	cmd.Flags().StringVarP(&password, "password", "p", "", "Password")
	return cmd
}

// promptCredentials asks for whatever the flags did not provide.
func promptCredentials(user, password *string) error {
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("User name or email").Value(user),
			huh.NewInput().Title("Password").EchoMode(huh.EchoModePassword).Value(password),
		),
	).WithTheme(timesheetHuhTheme()).WithShowHelp(false)
	return form.Run()
}

func newLogoutCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Session.Logout(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out.")
			return nil
		},
	}
}

func newWhoamiCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, ok := app.Session.Current()
			if !ok {
				return fmt.Errorf("no active session")
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatSession(sess, app.now()))
			return nil
		},
	}
}
