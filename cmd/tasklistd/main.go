// Command tasklistd serves the task-management GraphQL API.
package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/graphql-go/handler"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tasklistio/tasklist/pkg/auth"
	"github.com/tasklistio/tasklist/pkg/config"
	"github.com/tasklistio/tasklist/pkg/logging"
	"github.com/tasklistio/tasklist/pkg/metrics"
	"github.com/tasklistio/tasklist/pkg/resolver"
	"github.com/tasklistio/tasklist/pkg/schema"
	"github.com/tasklistio/tasklist/pkg/store"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config file (optional)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logging.New(logging.LevelError).Errorf("failed to load config: %v", err)
		os.Exit(1)
	}

	log := logging.New(logging.ParseLevel(cfg.Log.Level))
	if err := run(cfg, log); err != nil {
		log.Errorf("server exited: %v", err)
		os.Exit(1)
	}
}

func run(cfg config.Config, log logging.Logger) error {
	connectCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	st, err := store.NewMongoStore(connectCtx, cfg.Mongo.URI, cfg.Mongo.Database)
	if err != nil {
		return err
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := st.Close(closeCtx); err != nil {
			log.Warnf("failed to close store: %v", err)
		}
	}()
	if err := st.EnsureIndexes(connectCtx); err != nil {
		return err
	}
	log.Infof("connected to mongodb database %s", cfg.Mongo.Database)

	authSvc := auth.NewService(cfg.Auth.JWTSecret, time.Duration(cfg.Auth.TokenTTL), cfg.Auth.BcryptCost)
	resolvers := resolver.New(st, authSvc, log)
	m := metrics.New()

	graphSchema, err := schema.New(resolvers, m)
	if err != nil {
		return err
	}

	graphqlHandler := handler.New(&handler.Config{
		Schema:   &graphSchema,
		Pretty:   true,
		GraphiQL: true,
	})

	mux := http.NewServeMux()
	mux.Handle("/graphql", withRequestContext(resolvers, graphqlHandler))
	mux.Handle("/metrics", promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{}))
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if err := st.Ping(r.Context()); err != nil {
			http.Error(w, "store unreachable", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	})

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Infof("listening on %s", cfg.Server.Addr)
		errCh <- srv.ListenAndServe()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-sigCh:
		log.Infof("received %s, shutting down", sig)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	log.Infof("shut down cleanly")
	return nil
}

// withRequestContext builds the per-request resolver context from the
// Authorization header. Token verification is deferred until the first
// resolver that needs an identity.
func withRequestContext(r *resolver.Resolver, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		token := auth.BearerToken(req.Header.Get("Authorization"))
		rc := r.NewRequestContext(token)
		next.ServeHTTP(w, req.WithContext(schema.WithRequestContext(req.Context(), rc)))
	})
}
