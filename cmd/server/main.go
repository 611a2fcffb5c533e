package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"sysinfo-server/internal/logger"
	"sysinfo-server/internal/server"
	"sysinfo-server/internal/sysinfo"
	"sysinfo-server/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	appLog := logger.New(cfg.Server)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	collector := sysinfo.NewFromConfig(cfg.Collector, appLog)
	handler := server.NewHandler(collector, cfg.Server.ErrorStatusOK, appLog)
	router := server.NewRouter(handler, appLog)

	writeTimeout := cfg.Collector.CPUSampleWindow + cfg.Collector.GPUQueryTimeout + 10*time.Second
	srv := server.NewServer(router, cfg.Server.Address(), writeTimeout)

	appLog.Info("starting system info server",
		"address", cfg.Server.Address(),
		"disk_path", cfg.Collector.DiskPath,
		"gpu_backend", cfg.Collector.GPUBackend,
		"cost_per_kwh_cents", cfg.Collector.CostPerKWhCents)

	fmt.Printf("Server running at http://%s\n", net.JoinHostPort(displayHost(cfg.Server.Host, os.Hostname, net.LookupIP, appLog), strconv.Itoa(cfg.Server.Port)))
	fmt.Println("Press Ctrl+C to stop the server")

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			appLog.Error("server shutdown error", "error", err)
		}

	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLog.Error("server failed", "error", err)
			os.Exit(1)
		}
	}

	appLog.Info("server stopped")
}

// displayHost resolves a wildcard bind address to this machine's LAN address
// so the printed URL can be typed into the dashboard.
func displayHost(bindHost string, hostname func() (string, error), lookupIP func(string) ([]net.IP, error), log *slog.Logger) string {
	if ip := net.ParseIP(bindHost); ip == nil || !ip.IsUnspecified() {
		return bindHost
	}

	name, err := hostname()
	if err != nil {
		log.Debug("hostname lookup failed", "error", err)
		return "localhost"
	}

	ips, err := lookupIP(name)
	if err != nil {
		log.Debug("address lookup failed", "hostname", name, "error", err)
		return "localhost"
	}
	for _, ip := range ips {
		if ip.To4() != nil && !ip.IsLoopback() {
			return ip.String()
		}
	}
	if len(ips) > 0 {
		return ips[0].String()
	}
	return "localhost"
}
