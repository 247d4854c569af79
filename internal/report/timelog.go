package report

import (
	"fmt"
	"strings"

	"github.com/ovenlight/toastctl/internal/daterange"
	"github.com/ovenlight/toastctl/internal/models"
	"github.com/ovenlight/toastctl/internal/timelog"
)

// TimeLogText renders per-employee hour totals for a week.
func TimeLogText(summaries []*timelog.EmployeeSummary, r daterange.Range) string {
	var b strings.Builder

	b.WriteString(strings.Repeat("=", 60) + "\n")
	fmt.Fprintf(&b, "EMPLOYEE HOURS: %s\n", r)
	b.WriteString(strings.Repeat("=", 60) + "\n\n")

	fmt.Fprintf(&b, "%-28s %8s %9s %8s %7s\n", "Employee", "Regular", "Overtime", "Total", "Shifts")
	b.WriteString(strings.Repeat("-", 64) + "\n")
	for _, s := range summaries {
		fmt.Fprintf(&b, "%-28s %8.2f %9.2f %8.2f %7d\n",
			s.Name, s.RegularHours, s.OvertimeHours, s.TotalHours(), s.Entries)
	}

	regular, overtime := timelog.GrandTotals(summaries)
	b.WriteString(strings.Repeat("-", 64) + "\n")
	fmt.Fprintf(&b, "%-28s %8.2f %9.2f %8.2f\n", "TOTAL", regular, overtime, regular+overtime)
	return b.String()
}

// EmployeeListText renders the roster with GUIDs for use in follow-up
// timelog queries.
func EmployeeListText(employees []*models.Employee) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%-30s %s\n", "Name", "GUID")
	b.WriteString(strings.Repeat("-", 68) + "\n")
	for _, emp := range employees {
		if emp == nil {
			continue
		}
		fmt.Fprintf(&b, "%-30s %s\n", emp.FullName(), emp.GUID)
	}
	return b.String()
}
