package main

import (
	"fmt"
	"os"
	"runtime"
	"runtime/debug"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bft-labs/kanban/internal/cliconfig"
)

const longHelp = `Keep a kanban board of lists and cards in a file, Redis, or memory.

Every edit is an action applied to the whole board; list and card changes
are written back as one JSON snapshot. Configure via file, env, or flags.`

var exampleUsage = strings.TrimSpace(`
  kanban show
  kanban add-list "In review"
  kanban update-item 3f0c... --archived
  kanban serve --listen :8080 --store redis --redis-addr localhost:6379
`)

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "kanban:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cfg := cliconfig.DefaultConfig()
	var cfgPath string

	root := &cobra.Command{
		Use:           "kanban",
		Short:         "A kanban board with pluggable persistence",
		Long:          longHelp,
		Example:       exampleUsage,
		Version:       fmt.Sprintf("%s %s/%s", getVersion(), runtime.GOOS, runtime.GOARCH),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&cfgPath, "config", "", "path to config file (default: $HOME/.kanban/config.toml)")
	pf.StringVar(&cfg.Store, "store", cfg.Store, "store backend: file, redis, or memory")
	pf.StringVar(&cfg.StateDir, "state-dir", cfg.StateDir, "directory for the file store (default: $HOME/.kanban/data)")
	pf.StringVar(&cfg.RedisAddr, "redis-addr", cfg.RedisAddr, "redis address for the redis store")
	pf.StringVar(&cfg.RedisPassword, "redis-password", cfg.RedisPassword, "redis password")
	pf.IntVar(&cfg.RedisDB, "redis-db", cfg.RedisDB, "redis database number")
	pf.StringVar(&cfg.RedisPrefix, "redis-prefix", cfg.RedisPrefix, "prefix for redis keys")
	pf.StringVar(&cfg.StoreKey, "store-key", cfg.StoreKey, "key the board lists are stored under")
	pf.StringVar(&cfg.IDScheme, "id-scheme", cfg.IDScheme, "new list ids: counter or uuid")
	pf.StringVar(&cfg.Reorder, "reorder", cfg.Reorder, "where updated lists and cards go: append or in-place")
	pf.BoolVar(&cfg.StrictLoad, "strict-load", cfg.StrictLoad, "fail instead of starting fresh when stored lists are unreadable")
	pf.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "debug, info, warn, or error")
	pf.DurationVar(&cfg.SaveTimeout, "save-timeout", cfg.SaveTimeout, "timeout for each store write")
	if err := pf.MarkHidden("redis-prefix"); err != nil {
		fmt.Fprintln(os.Stderr, err)
	}

	r := &runner{cfg: &cfg, cfgPath: &cfgPath}
	root.AddCommand(
		r.showCmd(),
		r.addListCmd(),
		r.removeListCmd(),
		r.updateListCmd(),
		r.updateItemCmd(),
		r.serveCmd(),
		r.watchCmd(),
	)
	return root
}
