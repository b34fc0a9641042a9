package main

import (
	"flag"
	"log"

	"github.com/nyomansunima/federation-service/internal/bootstrap"
	"github.com/nyomansunima/federation-service/internal/config"
	"github.com/nyomansunima/federation-service/internal/version"
)

func main() {
	showVersion := flag.Bool("version", false, "print version information and exit")
	flag.Parse()

	if *showVersion {
		version.App = "Federation Gateway"
		version.PrintVersion()
		return
	}

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	if err := bootstrap.RunGateway(cfg); err != nil {
		log.Fatalf("Failed to start gateway: %v", err)
	}
}
