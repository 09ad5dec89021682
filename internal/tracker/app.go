package tracker

import "github.com/colonyops/ait/internal/core/config"

// App bundles the services commands depend on. It is allocated once in
// main and populated in the CLI Before hook.
type App struct {
	Items   *Service
	Metrics *MetricsService
	Config  *config.Config
}

// NewApp creates a new App.
func NewApp(items *Service, metrics *MetricsService, cfg *config.Config) *App {
	return &App{
		Items:   items,
		Metrics: metrics,
		Config:  cfg,
	}
}
