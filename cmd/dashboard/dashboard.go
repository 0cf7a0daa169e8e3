package main

import (
	"context"
	"os"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/aquaview/water-quality-dashboard/internal/api"
	"github.com/aquaview/water-quality-dashboard/internal/config"
	"github.com/aquaview/water-quality-dashboard/internal/poller"
	"github.com/aquaview/water-quality-dashboard/internal/session"
	"github.com/aquaview/water-quality-dashboard/internal/view"
)

// startDashboard wires the views to their pollers and ties poller lifetimes
// to the application lifecycle, so navigating away (shutdown) always stops
// the timers.
func startDashboard(
	lc fx.Lifecycle,
	cfg *config.Config,
	logger *zap.Logger,
	client *api.Client,
	sessions *session.Store,
	admin *view.Admin,
	table *view.Table,
	home *view.Home,
) {
	adminPoller := poller.New("admin", cfg.Polling.AdminInterval, func(ctx context.Context) error {
		if err := admin.Load(ctx); err != nil {
			return err
		}
		return renderAdmin(os.Stdout, admin)
	}, logger)

	tablePoller := poller.New("table", cfg.Polling.TableInterval, func(ctx context.Context) error {
		if err := table.Load(ctx); err != nil {
			return err
		}
		return renderTable(os.Stdout, table)
	}, logger)

	lc.Append(fx.Hook{
		OnStart: func(startCtx context.Context) error {
			if err := sessions.Load(); err != nil {
				logger.Warn("failed to restore cached session", zap.Error(err))
			}

			if _, ok := sessions.Current(); !ok && cfg.Auth.Username != "" {
				if _, err := client.Login(startCtx, cfg.Auth.Username, cfg.Auth.Password); err != nil {
					return err
				}
			}

			// The home summary is a one-shot load; only the admin and
			// table views poll.
			if err := home.Load(startCtx); err != nil {
				logger.Warn("initial home load failed", zap.Error(err))
			} else if err := renderHome(os.Stdout, home); err != nil {
				return err
			}

			logger.Info("starting view pollers",
				zap.Duration("admin_interval", cfg.Polling.AdminInterval),
				zap.Duration("table_interval", cfg.Polling.TableInterval))

			adminPoller.Start()
			tablePoller.Start()

			// Prime both views without waiting for the first tick.
			go adminPoller.Refresh(context.Background())
			go tablePoller.Refresh(context.Background())
			return nil
		},
		OnStop: func(stopCtx context.Context) error {
			adminPoller.Stop()
			tablePoller.Stop()
			logger.Info("dashboard stopped gracefully")
			return nil
		},
	})
}

// ProvideSessionStore creates the session store backed by the cache file
func ProvideSessionStore(cfg *config.Config, logger *zap.Logger) *session.Store {
	return session.NewStore(cfg.Session.CachePath, logger)
}

// ProvideAPIClient creates the backend API client
func ProvideAPIClient(cfg *config.Config, sessions *session.Store, logger *zap.Logger) *api.Client {
	return api.NewClient(cfg.API, cfg.Session.TTL, sessions, logger)
}

// ProvideAdminView creates the admin dashboard view model
func ProvideAdminView(client *api.Client, cfg *config.Config, logger *zap.Logger) *view.Admin {
	return view.NewAdmin(client, cfg.Table, logger)
}

// ProvideTableView creates the read-only table view model
func ProvideTableView(client *api.Client, cfg *config.Config, logger *zap.Logger) *view.Table {
	return view.NewTable(client, cfg.Table, logger)
}

// ProvideHomeView creates the home summary view model
func ProvideHomeView(client *api.Client, cfg *config.Config, logger *zap.Logger) *view.Home {
	return view.NewHome(client, cfg.Table, logger)
}
