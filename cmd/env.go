package main

import (
	"go.uber.org/zap"

	"github.com/nesthunt/nesthunt/internal/catalog"
	"github.com/nesthunt/nesthunt/internal/provider"
	"github.com/nesthunt/nesthunt/internal/rent"
	"github.com/nesthunt/nesthunt/internal/suggest"
)

// pipelineEnv bundles the wired pipeline for the serve and suggest commands.
type pipelineEnv struct {
	areas     []catalog.Area
	resolver  *rent.Resolver
	providers *provider.Set
	service   *suggest.Service
}

func initPipeline() (*pipelineEnv, error) {
	areas := catalog.Default()
	if cfg.Catalog.Path != "" {
		loaded, err := catalog.Load(cfg.Catalog.Path)
		if err != nil {
			return nil, err
		}
		areas = loaded
	}
	zap.L().Info("catalog ready", zap.Int("areas", len(areas)))

	resolver := rent.NewResolver(cfg.Rent.CSVPath)
	providers := provider.New(cfg, provider.NewCaches(cfg.Suggest))
	service := suggest.NewService(cfg.Suggest, providers, resolver, catalog.NewSelector(areas))

	return &pipelineEnv{
		areas:     areas,
		resolver:  resolver,
		providers: providers,
		service:   service,
	}, nil
}
