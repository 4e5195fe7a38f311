// Command linguflowd starts the LinguFlow HTTP API server.
//
// Usage:
//
//	linguflowd [flags]
//
// Flags:
//
//	-addr string
//	    Server address (default ":8080")
//	-read-timeout duration
//	    HTTP read timeout (default 30s)
//	-write-timeout duration
//	    HTTP write timeout (default 30s)
//	-max-execution-time duration
//	    Maximum interaction execution time (default 5m)
//	-max-node-executions int
//	    Maximum block invocations per interaction (default 10000)
//
// DATABASE_URL, if set, is logged but otherwise ignored: only the
// in-memory repository is implemented. The endpoints served are:
//
//	POST   /applications                                  - create an application
//	GET    /applications                                  - list applications for ?user=
//	DELETE /applications/{id}                             - soft-delete an application
//	POST   /applications/{id}/versions                    - create a version
//	GET    /applications/{id}/versions                    - list an application's versions
//	POST   /applications/{id}/versions/{version_id}/activate - activate a version
//	POST   /applications/{id}/async_run                   - start an interaction
//	GET    /interactions/{id}                              - poll an interaction
//	GET    /health, /health/live, /health/ready            - health checks
//	GET    /metrics                                        - Prometheus metrics
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/linguflow/linguflow/pkg/blocks"
	"github.com/linguflow/linguflow/pkg/config"
	"github.com/linguflow/linguflow/pkg/invoker"
	"github.com/linguflow/linguflow/pkg/logging"
	"github.com/linguflow/linguflow/pkg/observer"
	"github.com/linguflow/linguflow/pkg/registry"
	"github.com/linguflow/linguflow/pkg/repository"
	"github.com/linguflow/linguflow/pkg/scheduler"
	"github.com/linguflow/linguflow/pkg/server"
	"github.com/linguflow/linguflow/pkg/telemetry"
)

func main() {
	addr := flag.String("addr", ":8080", "Server address")
	readTimeout := flag.Duration("read-timeout", 30*time.Second, "HTTP read timeout")
	writeTimeout := flag.Duration("write-timeout", 30*time.Second, "HTTP write timeout")
	maxExecutionTime := flag.Duration("max-execution-time", 5*time.Minute, "Maximum interaction execution time")
	maxNodeExecutions := flag.Int("max-node-executions", 10000, "Maximum block invocations per interaction")
	flag.Parse()

	if dbURL := os.Getenv("DATABASE_URL"); dbURL != "" {
		fmt.Printf("DATABASE_URL is set but only the in-memory repository is implemented; ignoring it\n")
	}

	cfg := config.Default()
	cfg.MaxExecutionTime = *maxExecutionTime
	cfg.MaxNodeExecutions = *maxNodeExecutions

	logger := logging.New(logging.DefaultConfig())

	reg, caller, err := blocks.Build()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to assemble block registry: %v\n", err)
		os.Exit(1)
	}
	resolver := registry.MustNewResolver(reg)

	repo := repository.NewInMemoryRepository(cfg)
	sched := scheduler.New(resolver, cfg, logger, observer.NewManager())

	telemetryProvider, err := telemetry.NewProvider(context.Background(), telemetry.DefaultConfig())
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create telemetry provider: %v\n", err)
		os.Exit(1)
	}
	decorator := telemetry.NewProviderDecorator(telemetryProvider, logger)

	inv := invoker.New(repo, resolver, sched, cfg, logger, decorator)
	caller.Wire(repo, inv, cfg)

	serverConfig := server.Config{
		Address:            *addr,
		ReadTimeout:        *readTimeout,
		WriteTimeout:       *writeTimeout,
		ShutdownTimeout:    10 * time.Second,
		MaxRequestBodySize: 1 * 1024 * 1024,
		EnableCORS:         true,
	}
	srv := server.New(serverConfig, repo, inv, resolver, telemetryProvider)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	errChan := make(chan error, 1)
	go func() {
		fmt.Printf("Starting linguflowd on %s\n", *addr)
		fmt.Printf("Health check:     http://localhost%s/health\n", *addr)
		fmt.Printf("Metrics:          http://localhost%s/metrics\n", *addr)
		fmt.Println("\nPress Ctrl+C to shutdown")
		if err := srv.Start(); err != nil {
			errChan <- err
		}
	}()

	select {
	case err := <-errChan:
		fmt.Fprintf(os.Stderr, "server error: %v\n", err)
		os.Exit(1)
	case sig := <-sigChan:
		fmt.Printf("\nreceived signal: %v, shutting down gracefully...\n", sig)
		ctx, cancel := context.WithTimeout(context.Background(), serverConfig.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			fmt.Fprintf(os.Stderr, "shutdown error: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("server stopped")
	}
}
