package main

import (
	"github.com/aquaview/water-quality-dashboard/internal/config"
	"github.com/aquaview/water-quality-dashboard/internal/logging"
	"go.uber.org/zap"
)

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	return logging.NewLogger(cfg.ServiceName)
}
