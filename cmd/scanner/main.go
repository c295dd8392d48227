package main

// Standalone scan daemon: runs the mail and feed scanners on a fixed
// interval without serving the HTTP API.

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"hiretrack-backend/internal/bootstrap"
	"hiretrack-backend/internal/ingest"
	"hiretrack-backend/internal/scheduler"
	"hiretrack-backend/internal/shared/config"
)

func main() {
	cfg := config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := bootstrap.Build(cfg)
	if err != nil {
		log.Fatalf("bootstrap build: %v", err)
	}

	scanners := make([]ingest.Scanner, 0, len(app.MailScanners)+len(app.FeedScanners))
	scanners = append(scanners, app.MailScanners...)
	scanners = append(scanners, app.FeedScanners...)
	if len(scanners) == 0 {
		log.Fatal("no scanners configured; check gmail credentials and FEED_URLS")
	}

	sched := scheduler.New(app.IngestService, app.ResumeCorpus, scanners, cfg.ScanIntervalHrs)
	if err := sched.Start(ctx); err != nil {
		log.Fatalf("scheduler start: %v", err)
	}
	log.Printf("scanner started interval=%dh scanners=%d", cfg.ScanIntervalHrs, len(scanners))

	<-ctx.Done()
	log.Printf("shutdown requested, stopping scheduler")
	sched.Stop()
}
