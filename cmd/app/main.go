package main

import (
	"encoding/json"
	"flag"
	"log"
	"os"

	"Denominator/internal/di"
	"Denominator/pkg/config"
)

func main() {
	configPath := flag.String("config", "config/config.yaml", "config file path")
	dump := flag.Bool("dump", false, "print the synthesized series as JSON and exit")
	flag.Parse()

	cfg, err := config.LoadWithEnv(*configPath)
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}

	if *dump {
		s, err := di.ProvideSynthesizer(cfg)
		if err != nil {
			log.Fatalf("synthesizer: %v", err)
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(s.Generate().Rows()); err != nil {
			log.Fatalf("dump: %v", err)
		}
		return
	}

	app, cleanup, err := di.InitializeApp(cfg)
	if err != nil {
		log.Fatalf("app initialization failed: %v", err)
	}

	// Run application (blocks until signal)
	err = app.Run()
	cleanup()
	if err != nil {
		log.Printf("app error: %v", err)
		os.Exit(1)
	}
}
