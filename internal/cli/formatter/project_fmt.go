package formatter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/timesheet/internal/domain"
	"github.com/alexanderramin/timesheet/internal/service"
)

// ProjectHeaders are the column titles of a project row.
var ProjectHeaders = []string{"ID", "CODE", "NAME", "PM", "MEMBERS", "DATES", "STATUS"}

// ProjectRow renders one project as table cells matching ProjectHeaders.
func ProjectRow(p domain.Project) []string {
	return []string{
		Dim(strconv.FormatInt(p.ID, 10)),
		StyleGreen.Render(p.Code),
		Bold(p.Name),
		OrDash(p.PMList()),
		strconv.Itoa(p.ActiveMember),
		OrDash(p.DateRange()),
		StatusPill(p.Status),
	}
}

// GroupHeading renders "CUSTOMER (n)".
func GroupHeading(g service.CustomerGroup) string {
	return StylePurple.Render(g.Customer) + " " + Dim(fmt.Sprintf("(%d)", len(g.Projects)))
}

// FormatProjectGroups renders the Manage Projects list: one table per
// customer, or the empty-list message.
func FormatProjectGroups(res *service.ListResult) string {
	if res == nil || res.Empty() {
		return Dim(service.NoProjectsMessage)
	}
	var b strings.Builder
	for i, g := range res.Groups {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(GroupHeading(g) + "\n")
		rows := make([][]string, 0, len(g.Projects))
		for _, p := range g.Projects {
			rows = append(rows, ProjectRow(p))
		}
		b.WriteString(RenderTable(ProjectHeaders, rows))
	}
	return strings.TrimRight(b.String(), "\n")
}

// FormatQuantities renders the per-status counts, for example
// "Active 7 · Deactive 2 · All 9".
func FormatQuantities(qs []domain.ProjectQuantity) string {
	active := domain.QuantityFor(qs, domain.ProjectActive)
	deactive := domain.QuantityFor(qs, domain.ProjectDeactive)
	parts := []string{
		StyleGreen.Render("Active") + " " + strconv.Itoa(active),
		Dim("Deactive") + " " + strconv.Itoa(deactive),
		Bold("All") + " " + strconv.Itoa(active+deactive),
	}
	return strings.Join(parts, Dim(" · "))
}

// FormatProjectDetail renders the read-only detail card of a listed project.
func FormatProjectDetail(p domain.Project) string {
	pairs := [][2]string{
		{"Code", StyleGreen.Render(p.Code)},
		{"Client", OrDash(p.CustomerName)},
		{"Type", OrDash(p.ProjectType)},
		{"Status", StatusPill(p.Status)},
		{"PM", OrDash(p.PMList())},
		{"Members", strconv.Itoa(p.ActiveMember)},
		{"Dates", OrDash(p.DateRange())},
	}
	return RenderBox(p.Name, KeyValue(pairs))
}
