package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/ovenlight/toastctl/internal/daterange"
	"github.com/ovenlight/toastctl/internal/models"
	"github.com/ovenlight/toastctl/internal/report"
	"github.com/ovenlight/toastctl/internal/sales"
	"github.com/ovenlight/toastctl/internal/toast"
)

var salesFlags struct {
	today     bool
	yesterday bool
	date      string
	rangeArgs []string
	thisWeek  bool
	lastWeek  bool
	thisMonth bool
	lastMonth bool
	thisYear  bool
	lastYear  bool
	compare   bool

	showAll  bool
	debug    bool
	file     string
	fromFile string
	export   string
}

var salesCmd = &cobra.Command{
	Use:   "sales",
	Short: "Fetch orders and print a sales summary",
	Long: `Fetches orders for the selected window, aggregates them into a sales
summary, prints it and saves the summary JSON.

Exactly one date selection may be given; with none, today is assumed.
--compare reports against the same weekday of the previous week and only
works with single-day selections.`,
	RunE: runSales,
}

func init() {
	f := salesCmd.Flags()
	f.BoolVar(&salesFlags.today, "today", false, "today's orders")
	f.BoolVar(&salesFlags.yesterday, "yesterday", false, "yesterday's orders")
	f.StringVar(&salesFlags.date, "date", "", "a specific date (YYYY-MM-DD)")
	f.StringSliceVar(&salesFlags.rangeArgs, "range", nil, "start and end dates (YYYY-MM-DD,YYYY-MM-DD)")
	f.BoolVar(&salesFlags.thisWeek, "this-week", false, "Sunday through today")
	f.BoolVar(&salesFlags.lastWeek, "last-week", false, "previous Sunday-to-Saturday week")
	f.BoolVar(&salesFlags.thisMonth, "this-month", false, "first of the month through today")
	f.BoolVar(&salesFlags.lastMonth, "last-month", false, "the previous calendar month")
	f.BoolVar(&salesFlags.thisYear, "this-year", false, "January 1st through today")
	f.BoolVar(&salesFlags.lastYear, "last-year", false, "the previous calendar year")
	f.BoolVar(&salesFlags.compare, "compare", false, "compare with the same weekday last week")
	f.BoolVar(&salesFlags.showAll, "all", false, "include payment, discount, dining-option and source breakdowns")
	f.BoolVar(&salesFlags.debug, "debug", false, "dump raw order pages to disk")
	f.StringVar(&salesFlags.file, "file", "", "override the summary output filename")
	f.StringVar(&salesFlags.fromFile, "from-file", "", "aggregate a previously saved orders JSON file instead of calling the API")
	f.StringVar(&salesFlags.export, "export", "", "also export flattened payments (csv, json or parquet)")

	rootCmd.AddCommand(salesCmd)
}

func runSales(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	current, compare, err := daterange.Resolve(daterange.Selection{
		Today:     salesFlags.today,
		Yesterday: salesFlags.yesterday,
		Date:      salesFlags.date,
		RangeArgs: salesFlags.rangeArgs,
		ThisWeek:  salesFlags.thisWeek,
		LastWeek:  salesFlags.lastWeek,
		ThisMonth: salesFlags.thisMonth,
		LastMonth: salesFlags.lastMonth,
		ThisYear:  salesFlags.thisYear,
		LastYear:  salesFlags.lastYear,
		Compare:   salesFlags.compare,
	}, time.Now())
	if err != nil {
		return err
	}

	switch salesFlags.export {
	case "", "csv", "json", "parquet":
	default:
		return fmt.Errorf("unsupported export format %q (use csv, json or parquet)", salesFlags.export)
	}

	var (
		client        *toast.Client
		diningOptions models.DiningOptionMap
		orders        []*models.Order
	)

	if salesFlags.fromFile != "" {
		orders, err = models.LoadOrdersFromFile(salesFlags.fromFile)
		if err != nil {
			return err
		}
		logger.Infow("loaded orders from file", "file", salesFlags.fromFile, "count", len(orders))
		diningOptions = models.DiningOptionMap{}
	} else {
		client = newClient(salesFlags.debug)
		diningOptions = fetchDiningOptions(ctx, client)
		orders, err = fetchOrders(ctx, client, current)
		if err != nil {
			return err
		}
	}

	if len(orders) == 0 {
		fmt.Printf("No orders found for %s\n", current)
		return nil
	}

	aggregator := sales.NewAggregator(diningOptions)
	summary := aggregator.Summarize(orders)

	fmt.Println(report.SalesText(summary, current, salesFlags.showAll))

	if compare != nil {
		prevOrders, err := fetchOrders(ctx, client, *compare)
		if err != nil {
			return fmt.Errorf("fetching comparison window: %w", err)
		}
		prevSummary := aggregator.Summarize(prevOrders)
		fmt.Println(report.ComparisonText(sales.Compare(summary, prevSummary), current, *compare))
	}

	sink, _, err := newSink(ctx)
	if err != nil {
		return err
	}

	payload, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding summary: %w", err)
	}
	path, err := sink.Write(ctx, report.SummaryFilename(current, salesFlags.file), payload)
	if err != nil {
		return err
	}
	logger.Infow("summary saved", "path", path)

	if salesFlags.export != "" {
		if err := exportPayments(ctx, sink, orders, diningOptions, current); err != nil {
			return err
		}
	}
	return nil
}

// fetchDiningOptions loads the GUID-to-name mapping, degrading to raw GUIDs
// when the config API is unavailable.
func fetchDiningOptions(ctx context.Context, client *toast.Client) models.DiningOptionMap {
	options, err := client.DiningOptions(ctx)
	if err != nil {
		logger.Warnw("could not fetch dining options; names will show as GUIDs", "err", err)
		return models.DiningOptionMap{}
	}
	return options
}

func fetchOrders(ctx context.Context, client *toast.Client, r daterange.Range) ([]*models.Order, error) {
	if client == nil {
		return nil, fmt.Errorf("--compare cannot be used with --from-file")
	}
	if r.SingleDay() {
		return client.OrdersForBusinessDate(ctx, r.Start)
	}
	return client.OrdersForDateRange(ctx, r.Start, r.End)
}

func exportPayments(ctx context.Context, sink report.Sink, orders []*models.Order, diningOptions models.DiningOptionMap, r daterange.Range) error {
	rows := report.FlattenPayments(orders, diningOptions)
	logger.Infow("exporting payments", "format", salesFlags.export, "rows", len(rows))

	switch salesFlags.export {
	case "csv":
		data, err := report.PaymentsCSV(rows)
		if err != nil {
			return err
		}
		path, err := sink.Write(ctx, report.ExportFilename(r, "csv"), data)
		if err != nil {
			return err
		}
		logger.Infow("export saved", "path", path)
	case "json":
		data, err := json.MarshalIndent(rows, "", "  ")
		if err != nil {
			return fmt.Errorf("encoding payments: %w", err)
		}
		path, err := sink.Write(ctx, report.ExportFilename(r, "json"), data)
		if err != nil {
			return err
		}
		logger.Infow("export saved", "path", path)
	case "parquet":
		// Parquet writes straight to disk; the S3 mirror does not apply.
		local := report.NewFileSink(cfg.OutputDir)
		path := local.Path(report.ExportFilename(r, "parquet"))
		if err := report.PaymentsParquet(rows, path); err != nil {
			return err
		}
		logger.Infow("export saved", "path", path)
	}
	return nil
}
