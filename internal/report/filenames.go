package report

import (
	"fmt"
	"strings"

	"github.com/ovenlight/toastctl/internal/daterange"
)

// SummaryFilename derives the JSON summary filename from the date range, or
// normalizes a user-supplied override to a .json extension.
func SummaryFilename(r daterange.Range, override string) string {
	if override != "" {
		if !strings.HasSuffix(override, ".json") {
			override += ".json"
		}
		return override
	}
	if r.SingleDay() {
		return fmt.Sprintf("sales_summary_business_date_%s.json", r.Start.Format("2006-01-02"))
	}
	return fmt.Sprintf("sales_summary_%s_to_%s.json",
		r.Start.Format("2006-01-02"), r.End.Format("2006-01-02"))
}

// ExportFilename derives the flat-export filename for a given extension.
func ExportFilename(r daterange.Range, ext string) string {
	if r.SingleDay() {
		return fmt.Sprintf("sales_export_%s.%s", r.Start.Format("2006-01-02"), ext)
	}
	return fmt.Sprintf("sales_export_%s_to_%s.%s",
		r.Start.Format("2006-01-02"), r.End.Format("2006-01-02"), ext)
}

// MenuFilename derives the takeout menu filename for a format, tagging 3pd
// variants.
func MenuFilename(format string, with3pd bool) string {
	suffix := ""
	if with3pd {
		suffix = "_with3pd"
	}
	base := "takeout_menu"
	if format == "html" {
		base = "preview_menu"
	}
	return fmt.Sprintf("%s%s.%s", base, suffix, format)
}

// TimeLogFilename derives the detailed time-entry export filename.
func TimeLogFilename(r daterange.Range) string {
	return fmt.Sprintf("time_logs_detailed_%s_to_%s.json",
		r.Start.Format("2006-01-02"), r.End.Format("2006-01-02"))
}
