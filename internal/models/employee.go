package models

import "strings"

type Employee struct {
	GUID      string `json:"guid"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
}

// FullName joins first and last name, trimming when either is empty.
func (e *Employee) FullName() string {
	return strings.TrimSpace(e.FirstName + " " + e.LastName)
}

// TimeEntry is a clock-in/clock-out record from /labor/v1/timeEntries.
type TimeEntry struct {
	GUID              string    `json:"guid"`
	EmployeeReference EntityRef `json:"employeeReference"`
	Job               JobRef    `json:"job"`
	BusinessDate      string    `json:"businessDate"`
	InDate            string    `json:"inDate"`
	OutDate           string    `json:"outDate"`
	RegularHours      float64   `json:"regularHours"`
	OvertimeHours     float64   `json:"overtimeHours"`
}

type JobRef struct {
	GUID  string `json:"guid"`
	Title string `json:"title"`
}
