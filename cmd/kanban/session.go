package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/bytedance/sonic"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	pflag "github.com/spf13/pflag"

	"github.com/bft-labs/kanban/internal/adapters/redisstore"
	"github.com/bft-labs/kanban/internal/cliconfig"
	"github.com/bft-labs/kanban/pkg/kanban"
	"github.com/bft-labs/kanban/pkg/log"
)

// runner resolves configuration and opens sessions for subcommands.
type runner struct {
	cfg     *cliconfig.Config
	cfgPath *string
	log     zerolog.Logger
}

// resolve applies the config file and env beneath explicitly set flags,
// then validates.
func (r *runner) resolve(cmd *cobra.Command) error {
	cfgFile := *r.cfgPath
	if cfgFile == "" {
		cfgFile = cliconfig.DefaultConfigPath()
	}

	changed := map[string]bool{}
	cmd.Flags().Visit(func(f *pflag.Flag) { changed[f.Name] = true })

	if cfgFile != "" && cliconfig.FileExists(cfgFile) {
		fc, err := cliconfig.LoadFileConfig(cfgFile)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		if err := cliconfig.ApplyFileConfig(r.cfg, fc, changed); err != nil {
			return err
		}
	}

	if err := cliconfig.ApplyEnvConfig(r.cfg, changed); err != nil {
		return err
	}
	if err := r.cfg.Validate(); err != nil {
		return err
	}

	logger, err := r.cfg.Logger()
	if err != nil {
		return err
	}
	r.log = logger

	logCfg := *r.cfg
	if logCfg.RedisPassword != "" {
		logCfg.RedisPassword = "*****"
	}
	r.log.Debug().Interface("config", logCfg).Msg("configuration")
	return nil
}

// open builds the configured store and loads a session from it. The
// returned func releases the store.
func (r *runner) open(ctx context.Context, opts ...kanban.Option) (*kanban.Kanban, func(), error) {
	store, closeStore, err := r.store(ctx)
	if err != nil {
		return nil, nil, err
	}

	opts = append([]kanban.Option{
		kanban.WithStore(store),
		kanban.WithLogger(log.NewZerologAdapterWithLogger(r.log)),
	}, opts...)

	k, err := kanban.New(ctx, kanban.Config{
		StoreKey:    r.cfg.StoreKey,
		IDScheme:    kanban.IDScheme(r.cfg.IDScheme),
		Reorder:     kanban.ReorderPolicy(r.cfg.Reorder),
		StrictLoad:  r.cfg.StrictLoad,
		SaveTimeout: r.cfg.SaveTimeout,
	}, opts...)
	if err != nil {
		closeStore()
		return nil, nil, fmt.Errorf("open board: %w", err)
	}
	return k, closeStore, nil
}

func (r *runner) store(ctx context.Context) (kanban.Store, func(), error) {
	switch r.cfg.Store {
	case cliconfig.StoreRedis:
		s, err := redisstore.DialRetry(ctx, &redis.Options{
			Addr:     r.cfg.RedisAddr,
			Password: r.cfg.RedisPassword,
			DB:       r.cfg.RedisDB,
		}, r.cfg.RedisPrefix, 3, 200*time.Millisecond)
		if err != nil {
			return nil, nil, fmt.Errorf("connect redis %s: %w", r.cfg.RedisAddr, err)
		}
		return s, func() { _ = s.Close() }, nil
	case cliconfig.StoreMemory:
		return kanban.NewMemoryStore(), func() {}, nil
	default:
		return kanban.NewFileStore(r.cfg.StateDir), func() {}, nil
	}
}

func printJSON(w io.Writer, v interface{}) error {
	out, err := sonic.ConfigStd.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(out))
	return err
}
