// Package timelog rolls clock entries up into per-employee hour totals.
package timelog

import "github.com/ovenlight/toastctl/internal/models"

// EmployeeSummary is the weekly hour rollup for one employee.
type EmployeeSummary struct {
	EmployeeGUID  string
	Name          string
	RegularHours  float64
	OvertimeHours float64
	Entries       int
}

func (s *EmployeeSummary) TotalHours() float64 {
	return s.RegularHours + s.OvertimeHours
}

// FilterByEmployee returns the entries belonging to the given employee GUID.
func FilterByEmployee(entries []*models.TimeEntry, employeeGUID string) []*models.TimeEntry {
	var filtered []*models.TimeEntry
	for _, entry := range entries {
		if entry != nil && entry.EmployeeReference.GUID == employeeGUID {
			filtered = append(filtered, entry)
		}
	}
	return filtered
}

// Summarize totals hours per requested employee, preserving the GUID order.
// Employees with no entries still appear with zero totals so the report can
// name them.
func Summarize(entries []*models.TimeEntry, employeeGUIDs []string, employees []*models.Employee) []*EmployeeSummary {
	names := make(map[string]string, len(employees))
	for _, emp := range employees {
		names[emp.GUID] = emp.FullName()
	}

	summaries := make([]*EmployeeSummary, 0, len(employeeGUIDs))
	for _, guid := range employeeGUIDs {
		s := &EmployeeSummary{EmployeeGUID: guid, Name: names[guid]}
		if s.Name == "" {
			s.Name = "Unknown Employee"
		}
		for _, entry := range FilterByEmployee(entries, guid) {
			s.RegularHours += entry.RegularHours
			s.OvertimeHours += entry.OvertimeHours
			s.Entries++
		}
		summaries = append(summaries, s)
	}
	return summaries
}

// GrandTotals sums hours across all summaries.
func GrandTotals(summaries []*EmployeeSummary) (regular, overtime float64) {
	for _, s := range summaries {
		regular += s.RegularHours
		overtime += s.OvertimeHours
	}
	return regular, overtime
}
