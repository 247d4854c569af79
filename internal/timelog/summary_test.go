package timelog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ovenlight/toastctl/internal/models"
)

func entry(employeeGUID string, regular, overtime float64) *models.TimeEntry {
	return &models.TimeEntry{
		EmployeeReference: models.EntityRef{GUID: employeeGUID},
		RegularHours:      regular,
		OvertimeHours:     overtime,
	}
}

var roster = []*models.Employee{
	{GUID: "emp-1", FirstName: "Ana", LastName: "Reyes"},
	{GUID: "emp-2", FirstName: "Sam", LastName: "Okafor"},
}

func TestFilterByEmployee(t *testing.T) {
	entries := []*models.TimeEntry{
		entry("emp-1", 8, 0),
		nil,
		entry("emp-2", 6, 0),
		entry("emp-1", 4, 1),
	}

	filtered := FilterByEmployee(entries, "emp-1")
	assert.Len(t, filtered, 2)
}

func TestSummarize(t *testing.T) {
	entries := []*models.TimeEntry{
		entry("emp-1", 8, 0),
		entry("emp-1", 7.5, 2),
		entry("emp-2", 6, 0),
	}

	summaries := Summarize(entries, []string{"emp-2", "emp-1"}, roster)
	require.Len(t, summaries, 2)

	// Requested GUID order is preserved.
	assert.Equal(t, "Sam Okafor", summaries[0].Name)
	assert.Equal(t, 6.0, summaries[0].RegularHours)
	assert.Equal(t, 1, summaries[0].Entries)

	assert.Equal(t, "Ana Reyes", summaries[1].Name)
	assert.Equal(t, 15.5, summaries[1].RegularHours)
	assert.Equal(t, 2.0, summaries[1].OvertimeHours)
	assert.Equal(t, 17.5, summaries[1].TotalHours())
	assert.Equal(t, 2, summaries[1].Entries)
}

func TestSummarizeZeroHourEmployeesStillListed(t *testing.T) {
	summaries := Summarize(nil, []string{"emp-1"}, roster)
	require.Len(t, summaries, 1)
	assert.Equal(t, 0.0, summaries[0].TotalHours())
	assert.Zero(t, summaries[0].Entries)
}

func TestSummarizeUnknownEmployeeName(t *testing.T) {
	summaries := Summarize(nil, []string{"ghost"}, roster)
	require.Len(t, summaries, 1)
	assert.Equal(t, "Unknown Employee", summaries[0].Name)
}

func TestGrandTotals(t *testing.T) {
	summaries := []*EmployeeSummary{
		{RegularHours: 10, OvertimeHours: 1},
		{RegularHours: 20, OvertimeHours: 0.5},
	}
	regular, overtime := GrandTotals(summaries)
	assert.Equal(t, 30.0, regular)
	assert.Equal(t, 1.5, overtime)
}
