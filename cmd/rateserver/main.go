package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"VexlConverter/internal/collector"
	"VexlConverter/internal/config"
	"VexlConverter/internal/rateserver"
	"VexlConverter/internal/scheduler"
	"VexlConverter/internal/store"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] rate server starting...")

	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}

	// Init store
	var st store.Store
	if err := os.MkdirAll(filepath.Dir(cfg.Server.SQLitePath), 0o755); err != nil {
		log.Printf("[WARN] create data dir: %v", err)
	}
	sq, err := store.NewSQLiteStore(cfg.Server.SQLitePath)
	if err != nil {
		log.Printf("[WARN] init sqlite store failed, using memory: %v", err)
		st = store.NewMemoryStore()
	} else {
		st = sq
	}
	defer st.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Init refresh job
	source := collector.NewCoinGecko(cfg.CoinGecko.BaseURL, cfg.Proxy, cfg.CoinGecko.Timeout)
	job := rateserver.NewRefreshJob(source, st)

	sched := scheduler.NewScheduler(ctx)
	if err := sched.Every("price refresh", cfg.Server.RefreshInterval, job.Task); err != nil {
		log.Fatalf("[FATAL] register refresh job: %v", err)
	}
	if err := sched.RunAfter("price refresh", cfg.Server.InitialDelay); err != nil {
		log.Fatalf("[FATAL] schedule initial refresh: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	srv := &http.Server{
		Addr:              cfg.Server.Listen,
		Handler:           rateserver.NewServer(st).Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		log.Printf("[INFO] listening on %s", cfg.Server.Listen)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("[FATAL] http server: %v", err)
		}
	}()

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[INFO] shutdown signal received, stopping...")
	shutdownCtx, done := context.WithTimeout(context.Background(), 5*time.Second)
	defer done()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("[ERROR] http shutdown: %v", err)
	}
	cancel()
	log.Println("[INFO] rate server stopped")
}
