// Command server exposes the grammar engine as a JSON REST API.
//
// Endpoints:
//
//	GET /api/inflect?part=noun&word=<w>[&tags=A][&case=2&number=pl...][&reflexive=true]
//	GET /api/paradigm?part=noun&word=<w>[&tags=A]
//	GET /api/join?kind=preposition|attribute&first=<w>&second=<w>
//	GET /api/form?part=noun&id=12   or   GET /api/form?part=noun&case=2&number=pl
//	GET /api/languages
//	GET /healthz
//	GET /metrics
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/cors"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/poeta-go/grammar"
	"github.com/poeta-go/grammar/internal/app"
	"github.com/poeta-go/grammar/internal/config"
	"github.com/poeta-go/grammar/internal/logging"
	"github.com/poeta-go/grammar/internal/metrics"
	"github.com/poeta-go/grammar/internal/reload"
)

var (
	flags     app.Flags
	addr      string
	watchFlag bool
)

var rootCmd = &cobra.Command{
	Use:   "server",
	Short: "Serve word inflection over HTTP",
	Long: `server loads a rule file and answers inflection requests as JSON.

With --watch the rule file is reloaded whenever it changes on disk; a rule
file that fails to load leaves the previous rules in place.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, _ []string) error {
		env, err := app.Setup(cmd, &flags, os.Stderr)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("addr") {
			env.Config.Server.Address = addr
		}
		if cmd.Flags().Changed("watch") {
			env.Config.Server.Watch = watchFlag
		}
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return run(ctx, env)
	},
}

func init() {
	flags.Bind(rootCmd)
	rootCmd.Flags().StringVar(&addr, "addr", config.DefaultAddress, "listen address")
	rootCmd.Flags().BoolVar(&watchFlag, "watch", false, "reload the rule file when it changes")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(ctx context.Context, env *app.Env) error {
	logger := env.Logger
	cfg := env.Config
	m := metrics.New(prometheus.NewRegistry())

	logger.Info("loading rules", "path", cfg.RulesPath(), "language", env.Language.Code())
	holder, err := reload.NewHolder(env.LoadEngine, logging.Component(logger, "reload"))
	if err != nil {
		return fmt.Errorf("failed to load rules: %w", err)
	}
	m.SetRules(app.RuleCounts(holder.Engine().Table()))
	holder.OnReload(func(e *grammar.Engine, _ *grammar.LoadReport, err error) {
		m.RecordReload(err)
		if err == nil {
			m.SetRules(app.RuleCounts(e.Table()))
		}
	})
	logger.Info("rules loaded", "rules", holder.Engine().Table().Len())

	srv := &http.Server{
		Addr:    cfg.Server.Address,
		Handler: newHandler(holder, m, logger, cfg),
	}

	var watcher *reload.Watcher
	if cfg.Server.Watch {
		watcher, err = reload.NewWatcher(cfg.RulesPath(), cfg.Server.WatchDebounce, logging.Component(logger, "watch"))
		if err != nil {
			return err
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		logger.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	})
	if watcher != nil {
		g.Go(func() error { return watcher.Watch(gctx, holder.Reload) })
	}
	return g.Wait()
}

// newHandler builds the complete HTTP handler: routes, request logging,
// metrics and CORS.
func newHandler(holder *reload.Holder, m *metrics.Metrics, logger *log.Logger, cfg *config.Config) http.Handler {
	s := &server{holder: holder, metrics: m, logger: logger}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/inflect", s.handleInflect)
	mux.HandleFunc("/api/paradigm", s.handleParadigm)
	mux.HandleFunc("/api/join", s.handleJoin)
	mux.HandleFunc("/api/form", s.handleForm)
	mux.HandleFunc("/api/languages", s.handleLanguages)
	mux.HandleFunc("/healthz", s.handleHealth)
	mux.Handle(cfg.Server.MetricsPath, m.Handler())

	c := cors.New(cors.Options{
		AllowedOrigins: cfg.Server.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		ExposedHeaders: []string{requestIDHeader},
	})
	return c.Handler(s.instrument(mux))
}
