package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/gorm"

	"github.com/feral-file/ff-ownership/internal/adapter"
	"github.com/feral-file/ff-ownership/internal/autotransfer"
	"github.com/feral-file/ff-ownership/internal/bootstrap"
	"github.com/feral-file/ff-ownership/internal/config"
	"github.com/feral-file/ff-ownership/internal/logger"
	"github.com/feral-file/ff-ownership/internal/store"
)

// deps holds what a command needs once configuration is loaded
type deps struct {
	db       *gorm.DB
	services *bootstrap.Services
	engine   autotransfer.Engine
	close    func()
}

// opener builds the deps from the CLI options
type opener func(ctx context.Context, opts *options) (*deps, error)

type options struct {
	configFile string
	envPath    string
}

type cli struct {
	opts options
	open opener
	out  io.Writer
	json adapter.JSON
	rt   *deps
	root *cobra.Command
}

func newCLI(open opener, out io.Writer) *cli {
	c := &cli{open: open, out: out, json: adapter.NewJSON()}

	c.root = &cobra.Command{
		Use:          "ownershipctl",
		Short:        "Administer asset ownership",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			rt, err := c.open(cmd.Context(), &c.opts)
			if err != nil {
				return err
			}
			c.rt = rt
			return nil
		},
	}
	c.root.SetOut(out)

	c.root.PersistentFlags().StringVar(&c.opts.configFile, "config", "", "Path to configuration file")
	c.root.PersistentFlags().StringVar(&c.opts.envPath, "env", "config/", "Path to environment files")

	c.root.AddCommand(
		c.newAutoTransferCmd(),
		c.newOwnershipCmd(),
		c.newContributorsCmd(),
		c.newMigrateCmd(),
	)
	return c
}

// Execute runs the command line in args and releases the deps afterwards, also on failure
func (c *cli) Execute(ctx context.Context, args []string) error {
	c.root.SetArgs(args)
	defer func() {
		if c.rt != nil && c.rt.close != nil {
			c.rt.close()
		}
	}()
	return c.root.ExecuteContext(ctx)
}

// print writes v as indented JSON
func (c *cli) print(v any) error {
	data, err := c.json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	if _, err := fmt.Fprintln(c.out, string(data)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

// openDeps connects to the database and builds the services from the loaded configuration
func openDeps(ctx context.Context, opts *options) (*deps, error) {
	config.ChdirRepoRoot()
	cfg, err := config.LoadCLIConfig(opts.configFile, opts.envPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	err = logger.Initialize(logger.Config{
		Debug:           cfg.Debug,
		SentryDSN:       cfg.SentryDSN,
		BreadcrumbLevel: zapcore.InfoLevel,
		Tags: map[string]string{
			"service": "ownershipctl",
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	db, err := bootstrap.OpenDatabase(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}

	jsonAdapter := adapter.NewJSON()
	clock := adapter.NewClock()

	readCache, closeCache, err := bootstrap.NewCache(ctx, cfg.Cache, jsonAdapter)
	if err != nil {
		return nil, err
	}

	bus, closeSinks, err := bootstrap.NewEventBus(ctx, clock, jsonAdapter, cfg.NATS, config.PostHogConfig{})
	if err != nil {
		_ = closeCache()
		return nil, err
	}

	services := bootstrap.NewServices(store.NewPGStore(db), readCache, bus, clock, cfg.Ownership, cfg.Cache.TTL)

	return &deps{
		db:       db,
		services: services,
		engine:   services.NewAutoTransferEngine(clock, cfg.Ownership, cfg.AutoTransfer),
		close: func() {
			closeSinks()
			if err := closeCache(); err != nil {
				logger.Error(err, zap.String("component", "cache"))
			}
			if sqlDB, err := db.DB(); err == nil {
				_ = sqlDB.Close()
			}
			logger.Flush(2 * time.Second)
		},
	}, nil
}
