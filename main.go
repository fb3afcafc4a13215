// TareasWeb is a web front-end to manage tasks stored by an external task service.
//
// It renders server-side HTML pages to list, create, view, edit and delete tasks
// and a statistics dashboard with aggregate charts. Every page reads from and
// writes to the task service over HTTP; the front-end keeps no state of its own.
// Rate limiting protects it against abuse, and Prometheus metrics are exposed for monitoring.
//
// The following pages are available:
//
//  1. GET / - List tasks (POST deletes the task named by the "id" field)
//  2. GET /crear - Creation form (POST creates the task)
//  3. GET /ver/{id} - Task detail
//  4. GET /editar/{id} - Edit form (POST replaces the task)
//  5. GET /estadisticas - Statistics dashboard
//  6. GET /healthz - Liveness probe
//  7. GET /metrics - Display Prometheus metrics
//
// Configuration comes from an optional TOML file (--config), a .env file,
// the environment (PORT, API_URL, LOG_LEVEL, RATE_LIMIT, RATE_BURST, REQUEST_TIMEOUT)
// and the serve command's flags, in increasing priority.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"TareasWeb/api"
	"TareasWeb/config"
	"TareasWeb/handlers"
	"TareasWeb/routes"
	"TareasWeb/views"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

// Version is set via ldflags at build time.
var Version = "dev"

var (
	log = logrus.New()

	configFile string
	port       string
	apiURL     string
	logLevel   string
)

var rootCmd = &cobra.Command{
	Use:           "tareasweb",
	Short:         "Web front-end for the task service",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          serve,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the task pages (default command)",
	RunE:  serve,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), "tareasweb", Version)
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configFile, "config", "", "path to a TOML config file")
	flags.StringVar(&port, "port", "", "port to listen on (overrides PORT)")
	flags.StringVar(&apiURL, "api-url", "", "base URL of the task service (overrides API_URL)")
	flags.StringVar(&logLevel, "log-level", "", "log level (overrides LOG_LEVEL)")
	rootCmd.AddCommand(serveCmd, versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Error(err.Error())
		os.Exit(1)
	}
}

func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return config.Config{}, err
	}
	flags := cmd.Flags()
	if flags.Changed("port") {
		cfg.Port = port
	}
	if flags.Changed("api-url") {
		cfg.APIURL = apiURL
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = logLevel
	}
	return cfg, cfg.Validate()
}

func serve(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	log.SetLevel(level)
	log.SetFormatter(&logrus.JSONFormatter{})

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	client := api.NewClient(cfg.APIURL,
		api.WithHTTPClient(&http.Client{Timeout: cfg.RequestTimeout}),
		api.WithLogger(log),
		api.WithMetrics(api.NewMetrics(reg)),
	)
	renderer, err := views.New()
	if err != nil {
		return err
	}
	pages := handlers.NewServer(routes.New(client, log).Table(), renderer, handlers.Options{
		Logger:  log,
		Metrics: handlers.NewMetrics(reg),
		Limiter: rate.NewLimiter(rate.Limit(cfg.RateLimit), cfg.RateBurst),
		Timeout: cfg.RequestTimeout,
	})

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	mux.Handle("/", pages)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.WithFields(logrus.Fields{"addr": srv.Addr, "api": client.BaseURL()}).Info("Server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
