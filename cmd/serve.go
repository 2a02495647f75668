package cmd

import (
	"log/slog"
	"os"
	"time"

	"github.com/lehigh-university-libraries/livegallery/internal/config"
	"github.com/lehigh-university-libraries/livegallery/internal/handlers"
	"github.com/lehigh-university-libraries/livegallery/internal/logging"
	"github.com/lehigh-university-libraries/livegallery/internal/server"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

type serveOptions struct {
	configPath      string
	host            string
	port            int
	pollInterval    time.Duration
	shutdownTimeout time.Duration
	logLevel        string
	logFormat       string
}

func newServeCmd() *cobra.Command {
	opts := &serveOptions{}

	cmd := &cobra.Command{
		Use:   "serve [path]",
		Short: "Serve a folder of images as a live updating gallery",
		Long: `Starts the live gallery web interface for a folder of images.

The page polls the server every second and always shows the most recently
modified image. Subfolders one level down are listed for navigation.`,
		Example: `  # Serve ./photos on the default port 5001
  livegallery serve ./photos

  # Serve on localhost only, custom port
  livegallery serve ./photos --host 127.0.0.1 --port 8080

  # Read settings from a YAML file
  livegallery serve --config gallery.yaml`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.resolve(cmd, args)
			if err != nil {
				return err
			}

			if err := logging.Setup(os.Stderr, cfg.Logging.Level, cfg.Logging.Format); err != nil {
				return err
			}

			if err := cfg.Validate(); err != nil {
				slog.Error("Gallery root unusable", "root", cfg.Gallery.Root, "err", err)
				return err
			}

			handler, err := handlers.New(cfg.Gallery.Root, cfg.Server.PollInterval)
			if err != nil {
				return err
			}

			slog.Info("Serving gallery", "root", cfg.Gallery.Root, "url", "http://"+cfg.Addr())
			return server.ListenAndRun(cmd.Context(), cfg.Addr(), handler.Routes(), cfg.Server.ShutdownTimeout)
		},
	}

	opts.bindFlags(cmd.Flags())

	return cmd
}

func (o *serveOptions) bindFlags(flags *pflag.FlagSet) {
	flags.StringVarP(&o.configPath, "config", "c", "", "YAML config file")
	flags.StringVar(&o.host, "host", "0.0.0.0", "Interface to listen on")
	flags.IntVarP(&o.port, "port", "p", 5001, "Port to listen on")
	flags.DurationVar(&o.pollInterval, "poll-interval", time.Second, "How often the page refreshes the file list")
	flags.DurationVar(&o.shutdownTimeout, "shutdown-timeout", 5*time.Second, "Grace period for in-flight requests on shutdown")
	flags.StringVar(&o.logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	flags.StringVar(&o.logFormat, "log-format", "text", "Log format (text, json)")
}

// resolve layers the config file, LIVEGALLERY_* environment variables,
// explicitly set flags and the positional path, in that order.
func (o *serveOptions) resolve(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("host") {
		cfg.Server.Host = o.host
	}
	if flags.Changed("port") {
		cfg.Server.Port = o.port
	}
	if flags.Changed("poll-interval") {
		cfg.Server.PollInterval = o.pollInterval
	}
	if flags.Changed("shutdown-timeout") {
		cfg.Server.ShutdownTimeout = o.shutdownTimeout
	}
	if flags.Changed("log-level") {
		cfg.Logging.Level = o.logLevel
	}
	if flags.Changed("log-format") {
		cfg.Logging.Format = o.logFormat
	}
	if len(args) == 1 {
		cfg.Gallery.Root = args[0]
	}
	return cfg, nil
}
