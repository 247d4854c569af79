// Package cmd wires the CLI. Each subcommand builds its collaborators from
// the shared config and tears them down when the run ends.
package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/ovenlight/toastctl/internal/models"
	"github.com/ovenlight/toastctl/internal/report"
	"github.com/ovenlight/toastctl/internal/toast"
)

var (
	cfgFile string
	verbose bool

	cfg    *models.Config
	logger *zap.SugaredLogger
)

var rootCmd = &cobra.Command{
	Use:   "toastctl",
	Short: "Sales, menu and labor reporting for a Toast-powered restaurant",
	Long: `toastctl pulls orders, menus and time entries from the Toast API and
turns them into sales summaries, printable menus and labor reports.

Credentials come from the environment (TOAST_HOSTNAME, TOAST_CLIENT_ID,
TOAST_CLIENT_SECRET, TOAST_RESTAURANT_GUID) or an optional .env file.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		logger, err = newLogger(verbose)
		if err != nil {
			return err
		}

		cfg, err = models.LoadConfig(cfgFile)
		if err != nil {
			return err
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func Execute() {
	// Monetary fields serialize as JSON numbers, not strings.
	decimal.MarshalJSONWithoutQuotes = true

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./.env)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

// newLogger builds a console logger. Reports go to stdout; logs stay on
// stderr so output can be piped cleanly.
func newLogger(verbose bool) (*zap.SugaredLogger, error) {
	level := zap.InfoLevel
	if verbose {
		level = zap.DebugLevel
	}

	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encCfg),
		zapcore.Lock(os.Stderr),
		level,
	)
	return zap.New(core).Sugar(), nil
}

// newAuthenticator assembles the token cache and authenticator stack.
func newAuthenticator() *toast.Authenticator {
	tokenCache := toast.NewTokenCache(cfg.TokenCacheFile, logger)
	return toast.NewAuthenticator(cfg, &http.Client{Timeout: cfg.APITimeout}, tokenCache, logger)
}

func newClient(debug bool) *toast.Client {
	return toast.NewClient(cfg, nil, newAuthenticator(), logger, debug)
}

// newSink returns the local sink, wrapped with S3 mirroring when uploads are
// enabled in config.
func newSink(ctx context.Context) (report.Sink, *report.FileSink, error) {
	local := report.NewFileSink(cfg.OutputDir)
	if !cfg.UploadEnabled {
		return local, local, nil
	}
	s3sink, err := report.NewS3Sink(ctx, local, cfg.S3Bucket, cfg.S3Region, "reports", logger)
	if err != nil {
		return nil, nil, err
	}
	return s3sink, local, nil
}
