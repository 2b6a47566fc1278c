package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"VexlConverter/internal/collector"
	"VexlConverter/internal/config"
	"VexlConverter/internal/console"
	"VexlConverter/internal/converter"
	"VexlConverter/internal/currency"
	"VexlConverter/internal/eventloop"
	"VexlConverter/internal/history"
	"VexlConverter/internal/scheduler"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.SetOutput(os.Stderr)
	log.Println("[INFO] Vexl Converter starting...")

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

	backend := collector.NewBackendClient(cfg.Backend.BaseURL, cfg.Proxy, cfg.Backend.Timeout)
	quotes := collector.NewCoinGecko(cfg.CoinGecko.BaseURL, cfg.Proxy, cfg.CoinGecko.Timeout)
	log.Printf("[INFO] backend: %s, extra rates: %s", backend.BaseURL, quotes.Name())

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	loop := eventloop.New()
	go loop.Run(ctx)

	field := converter.NewField()
	pipeline := converter.New(ctx, converter.Options{
		Prices:   backend,
		Quotes:   quotes,
		Loop:     loop,
		Input:    field,
		Registry: currency.NewRegistry(),
		Debounce: cfg.Converter.Debounce,
	})
	poller := history.NewPoller(backend, cfg.History.RangeHours)

	con := console.New(ctx, pipeline, poller, backend, loop, field, os.Stdout)
	pipeline.OnChange(con.OnConverterChange)

	sched := scheduler.NewScheduler(ctx)
	if err := sched.Every("latest prices", cfg.Converter.PriceInterval, pipeline.RefreshPrices); err != nil {
		log.Fatalf("[FATAL] register price poller: %v", err)
	}
	if err := sched.Every("history", cfg.History.Interval, poller.Poll); err != nil {
		log.Fatalf("[FATAL] register history poller: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	// Initial fetches on start.
	go sched.RunNow("latest prices")
	go func() {
		sched.RunNow("history")
		poller.OnChange(con.OnHistoryChange)
	}()

	if err := con.Run(ctx, os.Stdin); err != nil {
		log.Printf("[ERROR] console: %v", err)
	}

	log.Println("[INFO] shutting down...")
	cancel()
	<-loop.Done()
	log.Println("[INFO] Vexl Converter stopped")
}
