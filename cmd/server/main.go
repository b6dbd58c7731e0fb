package main

import (
	"fmt"
	"log"

	"billscan/internal/config"
	"billscan/internal/engine"
	"billscan/internal/engine/gemini"
	"billscan/internal/engine/tesseract"
	"billscan/internal/extract"
	"billscan/internal/handler"
	"billscan/internal/observability/metrics"
	"billscan/internal/port"
	"billscan/internal/repository/postgres"
	"billscan/internal/router"
	"billscan/internal/service"
	s3storage "billscan/internal/storage/s3"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	// Initialize repositories
	billRepo := postgres.NewBillRepo(db)

	// Initialize storage
	s3Client, err := s3storage.NewS3Client(&cfg.S3)
	if err != nil {
		return fmt.Errorf("failed to initialize S3 client: %w", err)
	}

	// Register recognition engine providers
	engine.RegisterProvider("tesseract", func(c *config.EngineProviderConfig) (port.RecognitionEngine, error) {
		return tesseract.NewEngine(c), nil
	})
	engine.RegisterProvider("gemini", func(c *config.EngineProviderConfig) (port.RecognitionEngine, error) {
		return gemini.NewEngine(c), nil
	})

	recognizer, err := buildRecognizer(&cfg.Engine)
	if err != nil {
		return fmt.Errorf("failed to initialize recognition engine: %w", err)
	}

	parser := extract.NewParser(extract.Options{
		MathTolerance:  cfg.Extract.MathTolerance,
		MinItemNumbers: cfg.Extract.MinItemNumbers,
	})

	// Initialize services
	billSvc := service.NewBillService(billRepo, s3Client, recognizer, parser, &cfg.S3)

	// Initialize handlers and metrics
	m := metrics.NewHTTPServerMetrics()
	billH := handler.NewBillHandler(billSvc, m)
	healthH := handler.NewHealthHandler(db)

	// Setup router
	r := router.Setup(cfg, billH, healthH, m)

	log.Printf("Server starting on %s", cfg.Server.Port)
	if err := r.Run(cfg.Server.Port); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}

// buildRecognizer creates the primary engine, wrapping it in a fallback chain
// when a secondary engine is configured.
func buildRecognizer(cfg *config.EngineConfig) (port.RecognitionEngine, error) {
	primary, err := engine.NewEngine(&cfg.Primary)
	if err != nil {
		return nil, err
	}

	secondaryCfg := cfg.SecondaryConfig()
	if secondaryCfg == nil {
		return primary, nil
	}

	secondary, err := engine.NewEngine(secondaryCfg)
	if err != nil {
		return nil, err
	}

	return engine.NewFallbackEngine(
		[]port.RecognitionEngine{primary, secondary},
		[]string{cfg.Primary.Provider, secondaryCfg.Provider},
	), nil
}
