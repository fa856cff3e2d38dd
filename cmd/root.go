package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/gkatanacio/artifact-fetcher/config"
	"github.com/gkatanacio/artifact-fetcher/download"
	"github.com/gkatanacio/artifact-fetcher/install"
	"github.com/gkatanacio/artifact-fetcher/progress"
)

const exitInterrupted = 130

// fetchFlags are the root command flags. Flags that were set override
// the environment configuration.
type fetchFlags struct {
	version    string
	force      bool
	output     string
	installDir string
	rateLimit  int
	quiet      bool
	logLevel   string
	trace      bool
}

var fetchOpts fetchFlags

var rootCmd = &cobra.Command{
	Use:          "afetch [URL]",
	Short:        "Resilient downloader that fetches a single artifact and verifies its size and checksum.",
	Example:      "./afetch -v 5.2.0 -o appc.tar.gz https://registry.example.com/appc/download",
	SilenceUsage: true,
	Args:         cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		logger := newLogger(cfg)
		opts := download.Options{
			TempDir:      cfg.TempDir,
			Retry:        cfg.RetryPolicy(),
			MaxRedirects: cfg.MaxRedirects,
			RateLimit:    cfg.RateLimit,
			HTTPClient:   newHTTPClient(cfg),
			Locator:      install.Dir{Root: cfg.InstallDir, Binary: cfg.Binary},
			Reporter:     newReporter(cmd, cfg),
			Logger:       logger,
		}
		if fetchOpts.trace {
			tp, err := newTracerProvider(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer tp.Shutdown(context.WithoutCancel(cmd.Context()))
			opts.TracerProvider = tp
		}
		svc := download.NewService(opts)

		var outcome error
		err = svc.Start(cmd.Context(), fetchOpts.force, args[0], fetchOpts.version, func(res *download.Result, err error) {
			if err != nil {
				outcome = err
				return
			}
			outcome = report(cmd, res, fetchOpts.output)
		})
		if err != nil {
			return err
		}

		return outcome
	},
}

// shutdownContext ends when the controlling terminal hangs up. Interrupts
// are left to the download session.
func shutdownContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGHUP)
}

func Execute() {
	ctx, stop := shutdownContext()
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if errors.Is(err, download.ErrInterrupted) {
		os.Exit(exitInterrupted)
	}
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().StringVarP(&fetchOpts.version, "version", "v", "", "version to download (default: latest)")
	rootCmd.Flags().BoolVar(&fetchOpts.force, "force", false, "download even if the version is already installed")
	rootCmd.Flags().StringVarP(&fetchOpts.output, "output", "o", "", "move the verified download to this path")
	rootCmd.PersistentFlags().StringVar(&fetchOpts.installDir, "install-dir", "", "directory holding installed versions")
	rootCmd.Flags().IntVar(&fetchOpts.rateLimit, "rate-limit", 0, "cap transfer rate in bytes per second")
	rootCmd.Flags().BoolVarP(&fetchOpts.quiet, "quiet", "q", false, "log progress instead of drawing a progress bar")
	rootCmd.PersistentFlags().StringVar(&fetchOpts.logLevel, "log-level", "", "debug, info, warn or error")
	rootCmd.Flags().BoolVar(&fetchOpts.trace, "trace", false, "write a trace span per download attempt to stderr")

	rootCmd.AddCommand(verifyCmd, listCmd)
}

// loadConfig reads the environment and applies the flags that were set.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, err
	}

	flags := cmd.Flags()
	if flags.Changed("install-dir") {
		cfg.InstallDir = fetchOpts.installDir
	}
	if flags.Changed("rate-limit") {
		cfg.RateLimit = fetchOpts.rateLimit
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = fetchOpts.logLevel
	}

	return cfg, cfg.Validate()
}

func newLogger(cfg config.Config) *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.Level()}))
}

func newHTTPClient(cfg config.Config) *http.Client {
	return &http.Client{
		Transport: &http.Transport{
			Proxy:              http.ProxyFromEnvironment,
			DialContext:        (&net.Dialer{Timeout: cfg.DialTimeout}).DialContext,
			DisableCompression: true,
		},
	}
}

func newReporter(cmd *cobra.Command, cfg config.Config) download.Reporter {
	if fetchOpts.quiet {
		return progress.NewLog(newLogger(cfg), 0)
	}

	return progress.NewTerminal(cmd.ErrOrStderr(), progress.TerminalOptions{NoColor: cfg.NoColor})
}

// report prints the outcome and moves a fresh download to output, if set.
func report(cmd *cobra.Command, res *download.Result, output string) error {
	if res.Status == download.StatusAlreadySatisfied {
		fmt.Fprintf(cmd.OutOrStdout(), "Version %s already installed: %s\n", res.Version, res.BinaryPath)
		return nil
	}

	path := res.Path
	if output != "" {
		if err := moveFile(res.Path, output); err != nil {
			return fmt.Errorf("verified download kept at %s: %w", res.Path, err)
		}
		path = output
	}

	fmt.Fprintln(cmd.OutOrStdout(), "Download complete:", path)

	return nil
}
