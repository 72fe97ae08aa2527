package cli

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/alexanderramin/timesheet/internal/cli/formatter"
	"github.com/alexanderramin/timesheet/internal/domain"
	"github.com/alexanderramin/timesheet/internal/draft"
	"github.com/alexanderramin/timesheet/internal/picker"
)

// ErrIncompleteProject is returned by "project create" when the flags do
// not describe a submittable project.
var ErrIncompleteProject = errors.New("project is incomplete")

func newProjectCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Manage projects",
	}

	cmd.AddCommand(
		newProjectListCmd(app),
		newProjectQuantityCmd(app),
		newProjectCreateCmd(app),
	)

	return cmd
}

func newProjectListCmd(app *App) *cobra.Command {
	var status, search string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List projects grouped by client",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			filter, err := domain.ParseStatusFilter(status)
			if err != nil {
				return err
			}
			res, err := app.Projects.Load(cmd.Context(), filter, search)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, formatter.Header(filter.Label()))
			fmt.Fprintln(out, formatter.FormatQuantities(res.Quantities))
			fmt.Fprintln(out)
			fmt.Fprintln(out, formatter.FormatProjectGroups(res))
			return nil
		},
	}

	cmd.Flags().StringVar(&status, "status", "active", "Status filter: active, deactive or all")
	cmd.Flags().StringVarP(&search, "search", "s", "", "Search by project name, code or client")
	return cmd
}

func newProjectQuantityCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "quantity",
		Short: "Show project counts per status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			qs, err := app.API.ProjectQuantities(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatQuantities(qs))
			return nil
		},
	}
}

// projectFlags are the create-dialog fields as command-line flags.
type projectFlags struct {
	customerID  int64
	name        string
	code        string
	start       string
	end         string
	projectType string
	note        string
	allUsers    bool
	members     []string
	tasks       []string
	channel     string
	notify      []string
}

func (f *projectFlags) flagSet() *pflag.FlagSet {
	fs := pflag.NewFlagSet("project", pflag.ContinueOnError)
	fs.Int64Var(&f.customerID, "customer", 0, "Client ID")
	fs.StringVar(&f.name, "name", "", "Project name")
	fs.StringVar(&f.code, "code", "", "Project code")
	fs.StringVar(&f.start, "start", "", "Start date (YYYY-MM-DD)")
	fs.StringVar(&f.end, "end", "", "End date (YYYY-MM-DD)")
	fs.StringVar(&f.projectType, "type", string(domain.ProjectTimeAndMaterials), "Project type: "+projectTypeList())
	fs.StringVar(&f.note, "note", "", "Note")
	fs.BoolVar(&f.allUsers, "all-users", false, "Every user belongs to the project")
	fs.StringArrayVar(&f.members, "member", nil, "Team member as ID[:ROLE[:temp]], repeatable")
	fs.StringArrayVar(&f.tasks, "task", nil, "Task as ID[:nonbill], repeatable")
	fs.StringVar(&f.channel, "channel", "", "Notification channel ID")
	fs.StringArrayVar(&f.notify, "notify", nil, "Notification event number (1-5), repeatable")
	return fs
}

func projectTypeList() string {
	names := make([]string, len(domain.ProjectTypes))
	for i, t := range domain.ProjectTypes {
		names[i] = string(t)
	}
	return strings.Join(names, ", ")
}

// apply fills d from the flags. Member and task IDs must exist in the
// reference lists the draft was built from.
func (f *projectFlags) apply(d *draft.Draft) error {
	d.UpdateGeneral(func(g *draft.General) {
		g.CustomerID = f.customerID
		g.Name = f.name
		g.Code = f.code
		g.StartDate = f.start
		g.EndDate = f.end
		g.ProjectType = f.projectType
		g.Note = f.note
		g.AllUser = f.allUsers
	})

	for _, raw := range f.members {
		id, role, status, err := parseMember(raw)
		if err != nil {
			return err
		}
		var found bool
		d.EditTeam(func(t *picker.TeamPicker) {
			if found = t.Select(id); !found {
				return
			}
			if role != "" {
				t.SetRole(id, role)
			}
			t.SetStatus(id, status)
		})
		if !found {
			return fmt.Errorf("member %d: unknown or duplicate user", id)
		}
	}

	for _, raw := range f.tasks {
		id, billable, err := parseTask(raw)
		if err != nil {
			return err
		}
		var found bool
		d.EditTasks(func(t *picker.TaskPicker) {
			if found = t.Select(id); found {
				t.SetBillable(id, billable)
			}
		})
		if !found {
			return fmt.Errorf("task %d: unknown or duplicate task", id)
		}
	}

	var events []string
	for _, n := range f.notify {
		i, err := strconv.Atoi(strings.TrimSpace(n))
		if err != nil || i < 1 || i > len(domain.NotificationEvents) {
			return fmt.Errorf("notify %q: use a number from 1 to %d", n, len(domain.NotificationEvents))
		}
		events = append(events, domain.NotificationEvents[i-1])
	}
	d.UpdateNotification(func(n *draft.Notification) {
		n.ChannelID = f.channel
		for _, e := range events {
			if !n.Has(e) {
				n.Toggle(e)
			}
		}
	})
	return nil
}

// parseMember splits "ID[:ROLE[:temp]]". An empty role keeps the picker's
// default (PM for the first member).
func parseMember(raw string) (int64, domain.ProjectRole, domain.MemberStatus, error) {
	parts := strings.Split(raw, ":")
	id, err := strconv.ParseInt(strings.TrimSpace(parts[0]), 10, 64)
	if err != nil {
		return 0, "", "", fmt.Errorf("member %q: invalid user ID", raw)
	}
	var role domain.ProjectRole
	if len(parts) > 1 && parts[1] != "" {
		role, err = parseRole(parts[1])
		if err != nil {
			return 0, "", "", fmt.Errorf("member %q: %w", raw, err)
		}
	}
	status := domain.MemberOfficial
	if len(parts) > 2 {
		switch strings.ToLower(parts[2]) {
		case "temp":
			status = domain.MemberTemp
		case "official", "":
		default:
			return 0, "", "", fmt.Errorf("member %q: status must be official or temp", raw)
		}
	}
	return id, role, status, nil
}

func parseRole(s string) (domain.ProjectRole, error) {
	for _, r := range domain.ProjectRoles {
		if strings.EqualFold(string(r), s) {
			return r, nil
		}
	}
	return "", fmt.Errorf("unknown role %q", s)
}

// parseTask splits "ID[:nonbill]".
func parseTask(raw string) (int64, bool, error) {
	idPart, flag, _ := strings.Cut(raw, ":")
	id, err := strconv.ParseInt(strings.TrimSpace(idPart), 10, 64)
	if err != nil {
		return 0, false, fmt.Errorf("task %q: invalid task ID", raw)
	}
	switch strings.ToLower(flag) {
	case "", "bill", "billable":
		return id, true, nil
	case "nonbill", "non-bill":
		return id, false, nil
	}
	return 0, false, fmt.Errorf("task %q: use ID or ID:nonbill", raw)
}

func newProjectCreateCmd(app *App) *cobra.Command {
	flags := &projectFlags{}

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a project",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			refs, err := app.References.Load(ctx)
			if err != nil {
				return err
			}
			d := draft.New(refs.Users, refs.Tasks, app.logger())
			d.Open()
			if err := flags.apply(d); err != nil {
				return err
			}
			if !d.CanSubmit() {
				return fmt.Errorf("%w: %s", ErrIncompleteProject, joinErrors(d.Errors()))
			}

			res, list, err := app.Creator.Create(ctx, d)
			if res == nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, formatter.Success(fmt.Sprintf("Created project %s (id %d).", formatter.Bold(res.Name), res.ID)))
			if err != nil {
				return err
			}
			if list != nil {
				fmt.Fprintln(out, formatter.FormatQuantities(list.Quantities))
			}
			return nil
		},
	}

	cmd.Flags().AddFlagSet(flags.flagSet())
	return cmd
}

// joinErrors renders a field error map in a stable order.
func joinErrors(errs map[string]string) string {
	keys := make([]string, 0, len(errs))
	for k := range errs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+errs[k])
	}
	return strings.Join(parts, "; ")
}
