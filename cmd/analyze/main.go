// Command analyze classifies a local balance sheet file and prints the
// analysis as JSON.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"equitylens/internal/config"
	"equitylens/internal/decode"
	"equitylens/internal/domain"
	"equitylens/internal/repository/memory"
	"equitylens/internal/service"
	"equitylens/internal/vision"
	"equitylens/internal/vision/providers"
)

func main() {
	noVision := flag.Bool("no-vision", false, "skip the AI vision provider even when one is configured")
	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: analyze [-no-vision] <file>")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(1)
	}

	if err := run(flag.Arg(0), *noVision); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", domain.ReasonOf(err), err)
		os.Exit(2)
	}
}

func run(path string, noVision bool) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	adapter := vision.NewAdapter(nil, 0)
	if !noVision {
		providers.RegisterAll()
		client, err := vision.NewChain(&cfg.Vision)
		if err != nil {
			return fmt.Errorf("failed to initialize vision providers: %w", err)
		}
		adapter = vision.NewAdapter(client, cfg.Vision.Timeout())
	}

	svc := service.NewStatementService(
		service.NewIntake(adapter, decode.NewRegistry()),
		memory.NewAnalysisRepo(1),
		nil,
		service.StatementServiceConfig{MaxFileSize: cfg.Upload.MaxBytes()},
	)

	analysis, err := svc.Analyze(context.Background(), service.AnalyzeInput{
		FileName: filepath.Base(path),
		Data:     data,
	})
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(analysis); err != nil {
		log.Printf("analyze: encoding result: %v", err)
		return err
	}
	return nil
}
