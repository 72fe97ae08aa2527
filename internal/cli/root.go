package cli

import (
	"context"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/alexanderramin/timesheet/internal/api"
	"github.com/alexanderramin/timesheet/internal/domain"
	"github.com/alexanderramin/timesheet/internal/service"
	"github.com/alexanderramin/timesheet/internal/session"
)

// Gateway is the part of the API the commands call directly.
type Gateway interface {
	ListCustomers(ctx context.Context) ([]domain.Customer, error)
	SaveCustomer(ctx context.Context, in api.SaveCustomerRequest) (domain.Customer, error)
	ListUsers(ctx context.Context) ([]domain.User, error)
	ListTasks(ctx context.Context) ([]domain.Task, error)
	ListBranches(ctx context.Context) ([]domain.Branch, error)
	ProjectQuantities(ctx context.Context) ([]domain.ProjectQuantity, error)
}

// App holds references to everything the commands and views use.
type App struct {
	Session    *session.Store
	API        Gateway
	Projects   service.ProjectListService
	References service.ReferenceService
	Toolbar    *service.Toolbar
	Creator    service.ProjectCreateService
	Logger     *zap.Logger

	// IsInteractive reports whether stdin is a terminal. The bare command
	// starts the TUI only when it returns true.
	IsInteractive func() bool

	// Now defaults to time.Now.
	Now func() time.Time
}

func (a *App) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

func (a *App) logger() *zap.Logger {
	if a.Logger == nil {
		return zap.NewNop()
	}
	return a.Logger
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

// NewRootCmd creates the top-level "timesheet" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "timesheet",
		Short:         "Terminal client for the Timesheet project API",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !app.interactive() {
				return cmd.Help()
			}
			return runTUI(app)
		},
	}

	root.AddCommand(
		newLoginCmd(app),
		newLogoutCmd(app),
		protected(app, newWhoamiCmd(app)),
		protected(app, newProjectCmd(app)),
		protected(app, newCustomerCmd(app)),
		protected(app, newUserCmd(app)),
		protected(app, newTaskCmd(app)),
		protected(app, newBranchCmd(app)),
	)

	return root
}

// protected installs the login guard on cmd and its subcommands.
func protected(app *App, cmd *cobra.Command) *cobra.Command {
	cmd.PersistentPreRunE = session.RequireAuth(app.Session)
	return cmd
}
