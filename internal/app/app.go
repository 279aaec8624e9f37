// Package app runs the coursework parts end to end: load datasets, compute,
// log the results and write the figures.
package app

import (
	"context"
	"fmt"

	"github.com/pvlab/pvassignments/pkg/config"
	"go.uber.org/zap"
)

// Part identifies one section of the assignment.
type Part string

const (
	PartSpectraAirMass    Part = "1-1"
	PartSpectraHorizontal Part = "1-2"
	PartSpectraWaterVapor Part = "1-3"
	PartScenario          Part = "2-1"
	PartTimeSeries        Part = "2-2"
)

// ParseParts expands a -part flag value ("1", "2", "all" or a single part
// such as "2-1") into the parts to run, in order.
func ParseParts(s string) ([]Part, error) {
	switch s {
	case "all", "":
		return []Part{PartSpectraAirMass, PartSpectraHorizontal, PartSpectraWaterVapor, PartScenario, PartTimeSeries}, nil
	case "1":
		return []Part{PartSpectraAirMass, PartSpectraHorizontal, PartSpectraWaterVapor}, nil
	case "2":
		return []Part{PartScenario, PartTimeSeries}, nil
	}
	for _, p := range []Part{PartSpectraAirMass, PartSpectraHorizontal, PartSpectraWaterVapor, PartScenario, PartTimeSeries} {
		if Part(s) == p {
			return []Part{p}, nil
		}
	}
	return nil, fmt.Errorf("unknown part %q: use 1, 2, all or one of 1-1, 1-2, 1-3, 2-1, 2-2", s)
}

// App represents the main application
type App struct {
	configProvider config.ConfigProvider
	logger         *zap.SugaredLogger
}

// New creates a new application instance
func New(configProvider config.ConfigProvider, logger *zap.SugaredLogger) *App {
	return &App{
		configProvider: configProvider,
		logger:         logger,
	}
}

// Run executes parts in order and returns what they computed. It stops at the
// first failing part and checks ctx between parts.
func (a *App) Run(ctx context.Context, parts []Part) (*Report, error) {
	cfg, err := a.configProvider.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("loading configuration: %w", err)
	}

	for name, warnings := range cfg.PanelWarnings() {
		for _, w := range warnings {
			a.logger.Warnw("implausible panel configuration", "panel", name, "issue", w.String())
		}
	}

	report := newReport()
	for _, part := range parts {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		a.logger.Infow("running part", "part", part)
		switch part {
		case PartSpectraAirMass:
			err = a.runSpectraAirMass(cfg, report)
		case PartSpectraHorizontal:
			err = a.runSpectraHorizontal(cfg, report)
		case PartSpectraWaterVapor:
			err = a.runSpectraWaterVapor(cfg, report)
		case PartScenario:
			err = a.runScenario(cfg, report)
		case PartTimeSeries:
			err = a.runTimeSeries(ctx, cfg, report)
		default:
			err = fmt.Errorf("unknown part %q", part)
		}
		if err != nil {
			return report, fmt.Errorf("part %s: %w", part, err)
		}
	}

	a.logger.Info("all parts completed")
	return report, nil
}
