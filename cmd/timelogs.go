package cmd

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/ovenlight/toastctl/internal/daterange"
	"github.com/ovenlight/toastctl/internal/report"
	"github.com/ovenlight/toastctl/internal/timelog"
)

var timelogFlags struct {
	start     string
	end       string
	employees []string
	detailed  bool
}

var timelogsCmd = &cobra.Command{
	Use:   "timelogs",
	Short: "Summarize employee hours for a week",
	Long: `Fetches clock entries and prints regular, overtime and total hours per
employee. Without -s/-e the most recently completed Sunday-to-Saturday week
is used. --employee limits and orders the report; without it every employee
on the roster appears.`,
	RunE: runTimelogs,
}

var employeesCmd = &cobra.Command{
	Use:   "employees",
	Short: "List employees and their GUIDs",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		client := newClient(false)

		employees, err := client.Employees(ctx)
		if err != nil {
			return err
		}
		text := report.EmployeeListText(employees)
		fmt.Println(text)

		sink, _, err := newSink(ctx)
		if err != nil {
			return err
		}
		path, err := sink.Write(ctx, "employee.txt", []byte(text))
		if err != nil {
			return err
		}
		logger.Infow("employee list saved", "path", path)
		return nil
	},
}

func init() {
	f := timelogsCmd.Flags()
	f.StringVarP(&timelogFlags.start, "start", "s", "", "week start date (YYYY-MM-DD)")
	f.StringVarP(&timelogFlags.end, "end", "e", "", "week end date (YYYY-MM-DD)")
	f.StringSliceVar(&timelogFlags.employees, "employee", nil, "employee GUIDs to include, in report order")
	f.BoolVar(&timelogFlags.detailed, "detailed", false, "also save the raw time entries as JSON")

	rootCmd.AddCommand(timelogsCmd, employeesCmd)
}

func runTimelogs(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	r, err := timelogRange()
	if err != nil {
		return err
	}

	client := newClient(false)
	employees, err := client.Employees(ctx)
	if err != nil {
		return err
	}
	entries, err := client.TimeEntries(ctx, r.Start, r.End)
	if err != nil {
		return err
	}
	logger.Debugw("retrieved time entries", "count", len(entries))

	guids := timelogFlags.employees
	if len(guids) == 0 {
		for _, emp := range employees {
			if emp != nil {
				guids = append(guids, emp.GUID)
			}
		}
	}

	summaries := timelog.Summarize(entries, guids, employees)
	fmt.Println(report.TimeLogText(summaries, r))

	if timelogFlags.detailed {
		sink, _, err := newSink(ctx)
		if err != nil {
			return err
		}
		payload, err := json.MarshalIndent(entries, "", "  ")
		if err != nil {
			return fmt.Errorf("encoding time entries: %w", err)
		}
		path, err := sink.Write(ctx, report.TimeLogFilename(r), payload)
		if err != nil {
			return err
		}
		logger.Infow("time entries saved", "path", path)
	}
	return nil
}

// timelogRange resolves -s/-e, defaulting to the last completed week. Both
// flags must be given together.
func timelogRange() (daterange.Range, error) {
	if timelogFlags.start == "" && timelogFlags.end == "" {
		return daterange.PreviousWeek(time.Now()), nil
	}
	if timelogFlags.start == "" || timelogFlags.end == "" {
		return daterange.Range{}, fmt.Errorf("both --start and --end are required when either is given")
	}

	start, err := daterange.ParseDay(timelogFlags.start)
	if err != nil {
		return daterange.Range{}, err
	}
	end, err := daterange.ParseDay(timelogFlags.end)
	if err != nil {
		return daterange.Range{}, err
	}
	if end.Before(start) {
		return daterange.Range{}, daterange.ErrEndBeforeStart
	}
	return daterange.Range{Start: start, End: end}, nil
}
