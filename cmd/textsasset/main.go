// Command textsasset extracts translatable texts from TextsAsset JSON
// documents and merges translations back.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/custodia-labs/textsasset/internal/adapters/driven/config/file"
	"github.com/custodia-labs/textsasset/internal/adapters/driven/storage/filesystem"
	"github.com/custodia-labs/textsasset/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/textsasset/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/textsasset/internal/adapters/driving/cli"
	"github.com/custodia-labs/textsasset/internal/codecs"
	"github.com/custodia-labs/textsasset/internal/core/domain"
	"github.com/custodia-labs/textsasset/internal/core/ports/driven"
	"github.com/custodia-labs/textsasset/internal/core/ports/driving"
	"github.com/custodia-labs/textsasset/internal/core/services"
	"github.com/custodia-labs/textsasset/internal/linecodec"
	"github.com/custodia-labs/textsasset/internal/logger"
)

func main() {
	cli.SetWiring(wire)
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}

// wire builds the services for one invocation.
func wire(opts cli.Options) (*cli.Services, error) {
	var (
		store   driven.ConfigStore
		runs    driven.RunStore
		closeFn func() error
	)

	if opts.Ephemeral {
		store = memory.NewConfigStore()
		runs = memory.NewRunStore()
	} else {
		fileStore, err := file.NewConfigStore(opts.ConfigDir)
		if err != nil {
			return nil, fmt.Errorf("opening config: %w", err)
		}
		store = fileStore

		dataDir := ""
		if opts.ConfigDir != "" {
			dataDir = filepath.Join(opts.ConfigDir, "data")
		}
		db, err := sqlite.NewStore(dataDir)
		if err != nil {
			return nil, fmt.Errorf("opening history: %w", err)
		}
		runs = db.RunStore()
		closeFn = db.Close
		logger.Debug("config %s, history %s", fileStore.Path(), db.Path())
	}

	configService := services.NewConfigService(store)
	limit := domain.DefaultHistoryLimit
	if cfg, err := configService.Get(); err == nil {
		limit = cfg.HistoryLimit
	} else {
		logger.Warn("using default history limit: %v", err)
	}

	return &cli.Services{
		Config:  configService,
		History: services.NewHistoryService(runs, limit),
		NewBatch: func(cfg domain.Config) driving.BatchService {
			lines := linecodec.New(cfg.Placeholder)
			return services.NewBatchPipeline(cfg, filesystem.NewWorkspace(cfg), codecs.Defaults(lines), runs)
		},
		Close: closeFn,
	}, nil
}
