package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ovenlight/toastctl/internal/menu"
	"github.com/ovenlight/toastctl/internal/report"
	"github.com/ovenlight/toastctl/internal/toast"
)

var menuFlags struct {
	refresh bool

	withPrice bool
	filter3pd bool
	format    string
	groups    []string
	logo      string
}

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Generate and inspect the restaurant menu",
}

var menuGenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Render the takeout menu as text, HTML or PDF",
	RunE:  runMenuGenerate,
}

var menuGroupsCmd = &cobra.Command{
	Use:   "groups",
	Short: "List all menu group names",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc := newMenuService()
		names, err := svc.GroupNames(cmd.Context(), menuFlags.refresh)
		if err != nil {
			return err
		}
		for _, name := range names {
			fmt.Println(name)
		}
		return nil
	},
}

var menuSearchCmd = &cobra.Command{
	Use:   "search <term>",
	Short: "Find menu items by name",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc := newMenuService()
		results, err := svc.Search(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if len(results) == 0 {
			fmt.Printf("No items matching %q\n", args[0])
			return nil
		}
		for _, r := range results {
			price := r.Item.FormattedPrice()
			if price == "" {
				price = "-"
			}
			fmt.Printf("%-40s %10s  (%s / %s)\n", r.Item.Name, price, r.Menu, r.Group)
		}
		return nil
	},
}

var menuPricingCmd = &cobra.Command{
	Use:   "pricing",
	Short: "Show price distribution statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc := newMenuService()
		stats, ok, err := svc.Pricing(cmd.Context())
		if err != nil {
			return err
		}
		if !ok {
			fmt.Println("No priced items found")
			return nil
		}
		fmt.Printf("Priced items: %d\n", stats.Count)
		fmt.Printf("Average:      $%s\n", stats.Average.StringFixed(2))
		fmt.Printf("Min:          $%s\n", stats.Min.StringFixed(2))
		fmt.Printf("Max:          $%s\n", stats.Max.StringFixed(2))
		fmt.Println("\nPrice bands:")
		for _, band := range stats.Bands {
			fmt.Printf("  %-12s %d\n", band.Label, band.Count)
		}
		return nil
	},
}

func init() {
	menuCmd.PersistentFlags().BoolVar(&menuFlags.refresh, "refresh", false, "bypass the menu cache")

	f := menuGenerateCmd.Flags()
	f.BoolVar(&menuFlags.withPrice, "with-price", false, "include item prices")
	f.BoolVar(&menuFlags.filter3pd, "filter-3pd", false, "use third-party-delivery menus instead of in-house ones")
	f.StringVar(&menuFlags.format, "format", "txt", "output format: txt, html, pdf or all")
	f.StringSliceVar(&menuFlags.groups, "groups", nil, "group names in render order (default: all groups, sorted)")
	f.StringVar(&menuFlags.logo, "logo", "", "logo image for the PDF header")

	menuCmd.AddCommand(menuGenerateCmd, menuGroupsCmd, menuSearchCmd, menuPricingCmd)
	rootCmd.AddCommand(menuCmd)
}

func newMenuService() *menu.Service {
	client := newClient(false)
	cache := toast.NewDataCache(cfg.MenuCacheFile, logger)
	return menu.NewService(client, cache, logger)
}

func runMenuGenerate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	switch menuFlags.format {
	case "txt", "html", "pdf", "all":
	default:
		return fmt.Errorf("unsupported format %q (use txt, html, pdf or all)", menuFlags.format)
	}

	svc := newMenuService()
	data, err := svc.MenuData(ctx, menuFlags.refresh)
	if err != nil {
		return err
	}

	groupOrder := menuFlags.groups
	if len(groupOrder) == 0 {
		groupOrder = menu.GroupNames(data)
	}

	layout := report.MenuLayout{
		Restaurant: *cfg,
		GroupOrder: groupOrder,
		Groups:     menu.GroupedItems(data, groupOrder, menuFlags.filter3pd, menuFlags.withPrice),
		ShowPrices: menuFlags.withPrice,
	}

	sink, local, err := newSink(ctx)
	if err != nil {
		return err
	}

	formats := []string{menuFlags.format}
	if menuFlags.format == "all" {
		formats = []string{"txt", "html", "pdf"}
	}
	for _, format := range formats {
		if err := writeMenu(ctx, sink, local, layout, format); err != nil {
			return err
		}
	}
	return nil
}

func writeMenu(ctx context.Context, sink report.Sink, local *report.FileSink, layout report.MenuLayout, format string) error {
	name := report.MenuFilename(format, menuFlags.filter3pd)

	switch format {
	case "txt":
		path, err := sink.Write(ctx, name, []byte(report.MenuText(layout)))
		if err != nil {
			return err
		}
		logger.Infow("menu saved", "path", path)
	case "html":
		html, err := report.MenuHTML(layout)
		if err != nil {
			return err
		}
		path, err := sink.Write(ctx, name, []byte(html))
		if err != nil {
			return err
		}
		logger.Infow("menu saved", "path", path)
	case "pdf":
		// fpdf writes straight to disk; the S3 mirror does not apply.
		path := local.Path(name)
		if err := report.MenuPDF(layout, menuFlags.logo, path); err != nil {
			return err
		}
		logger.Infow("menu saved", "path", path)
	}
	return nil
}
