package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/joho/godotenv"

	"gosurvey/adapters/excel"
	"gosurvey/app"
	"gosurvey/internal/config"
	"gosurvey/internal/report"
	"gosurvey/ui"
)

func main() {
	// .env is optional; environment variables win either way
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	service, err := app.LoadAnalyzer(ctx, excel.NewLoader(), cfg.Data.SurveyFile)
	cancel()
	if err != nil {
		log.Fatalf("load survey data: %v", err)
	}

	httpApp := ui.NewApp(service, ui.Config{
		ReportOptions: report.Options{
			Threshold: cfg.Report.Threshold,
		},
	})

	addr := ":" + cfg.Server.Port
	log.Printf("Starting survey API server on %s (snapshot %s)", addr, service.Dataset().SnapshotID)
	if err := http.ListenAndServe(addr, httpApp.Router()); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}
