package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"syscall"

	"github.com/google/uuid"

	"github.com/pvlab/pvassignments/internal/app"
	"github.com/pvlab/pvassignments/internal/log"
	"github.com/pvlab/pvassignments/pkg/config"
)

const version = "1.0-" + runtime.GOOS + "/" + runtime.GOARCH

func main() {
	cfgFile := flag.String("config", "pvassign.yaml", "Path to the YAML configuration file")
	envFile := flag.String("env", ".env", "Optional dotenv file with PVLAB_* overrides")
	part := flag.String("part", "all", "Part to run: 1, 2, all, or one of 1-1, 1-2, 1-3, 2-1, 2-2")
	debug := flag.Bool("debug", false, "Turn on debugging output")
	showVersion := flag.Bool("version", false, "Show version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("pvassign %s\n", version)
		os.Exit(0)
	}

	// Set up logging
	if err := log.Init(*debug); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()
	log.SetRun(uuid.NewString())

	if err := config.LoadEnvFile(*envFile); err != nil {
		log.Errorf("Failed to read %s: %v", *envFile, err)
		os.Exit(1)
	}

	parts, err := app.ParseParts(*part)
	if err != nil {
		log.Errorf("Invalid -part: %v", err)
		os.Exit(1)
	}

	filename, _ := filepath.Abs(*cfgFile)
	provider := config.NewYAMLProvider(filename)
	defer provider.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	application := app.New(provider, log.GetSugaredLogger())
	report, err := application.Run(ctx, parts)
	if err != nil {
		log.Errorf("Application error: %v", err)
		log.Sync()
		os.Exit(1)
	}

	log.Infow("finished", "figures", len(report.Figures), "config", filename)
}
