package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	pflag "github.com/spf13/pflag"

	"github.com/bft-labs/kanban/internal/app"
	"github.com/bft-labs/kanban/internal/cliconfig"
	"github.com/bft-labs/kanban/internal/httpapi"
	"github.com/bft-labs/kanban/pkg/kanban"
	"github.com/bft-labs/kanban/pkg/log"
	"github.com/bft-labs/kanban/plugins/storewatcher"
)

// dispatchCmd builds a subcommand that applies one action and prints the board.
func (r *runner) dispatchCmd(use, short string, args cobra.PositionalArgs, build func(cmd *cobra.Command, args []string) (kanban.Action, error)) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  args,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := r.resolve(cmd); err != nil {
				return err
			}
			a, err := build(cmd, args)
			if err != nil {
				return err
			}
			k, release, err := r.open(cmd.Context())
			if err != nil {
				return err
			}
			defer release()

			return printJSON(cmd.OutOrStdout(), k.Dispatch(a))
		},
	}
}

func (r *runner) showCmd() *cobra.Command {
	var listsOnly bool
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the board as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := r.resolve(cmd); err != nil {
				return err
			}
			k, release, err := r.open(cmd.Context())
			if err != nil {
				return err
			}
			defer release()

			if listsOnly {
				return printJSON(cmd.OutOrStdout(), k.State().Lists)
			}
			return printJSON(cmd.OutOrStdout(), k.State())
		},
	}
	cmd.Flags().BoolVar(&listsOnly, "lists", false, "print only the lists")
	return cmd
}

func (r *runner) addListCmd() *cobra.Command {
	return r.dispatchCmd("add-list <title>", "Append a new empty list", cobra.ExactArgs(1),
		func(_ *cobra.Command, args []string) (kanban.Action, error) {
			return kanban.AddList{Title: args[0]}, nil
		})
}

func (r *runner) removeListCmd() *cobra.Command {
	return r.dispatchCmd("remove-list <id>", "Remove a list and its cards", cobra.ExactArgs(1),
		func(_ *cobra.Command, args []string) (kanban.Action, error) {
			return kanban.RemoveList{ID: args[0]}, nil
		})
}

// patchFlags are the editable fields shared by update-list and update-item.
type patchFlags struct {
	title       string
	description string
	archived    bool
	order       int
}

func (p *patchFlags) register(cmd *cobra.Command, withDescription bool) {
	cmd.Flags().StringVar(&p.title, "title", "", "new title")
	if withDescription {
		cmd.Flags().StringVar(&p.description, "description", "", "new description")
	}
	cmd.Flags().BoolVar(&p.archived, "archived", false, "archive (or --archived=false to restore)")
	cmd.Flags().IntVar(&p.order, "order", 0, "new order value")
}

// changed reports whether at least one field flag was given.
func (p *patchFlags) changed(f *pflag.FlagSet) bool {
	for _, name := range []string{"title", "description", "archived", "order"} {
		if fl := f.Lookup(name); fl != nil && fl.Changed {
			return true
		}
	}
	return false
}

var errEmptyPatch = errors.New("nothing to update: pass at least one of the field flags")

func (r *runner) updateListCmd() *cobra.Command {
	var p patchFlags
	cmd := r.dispatchCmd("update-list <id>", "Change fields of a list", cobra.ExactArgs(1),
		func(cmd *cobra.Command, args []string) (kanban.Action, error) {
			var patch kanban.ListPatch
			f := cmd.Flags()
			if f.Changed("title") {
				patch.Title = kanban.Some(p.title)
			}
			if f.Changed("archived") {
				patch.Archived = kanban.Some(p.archived)
			}
			if f.Changed("order") {
				patch.Order = kanban.Some(p.order)
			}
			if !p.changed(f) {
				return nil, errEmptyPatch
			}
			return kanban.UpdateList{ID: args[0], Patch: patch}, nil
		})
	p.register(cmd, false)
	return cmd
}

func (r *runner) updateItemCmd() *cobra.Command {
	var p patchFlags
	cmd := r.dispatchCmd("update-item <id>", "Change fields of a card", cobra.ExactArgs(1),
		func(cmd *cobra.Command, args []string) (kanban.Action, error) {
			var patch kanban.ItemPatch
			f := cmd.Flags()
			if f.Changed("title") {
				patch.Title = kanban.Some(p.title)
			}
			if f.Changed("description") {
				patch.Description = kanban.Some(p.description)
			}
			if f.Changed("archived") {
				patch.Archived = kanban.Some(p.archived)
			}
			if f.Changed("order") {
				patch.Order = kanban.Some(p.order)
			}
			if !p.changed(f) {
				return nil, errEmptyPatch
			}
			return kanban.UpdateItem{ID: args[0], Patch: patch}, nil
		})
	p.register(cmd, true)
	return cmd
}

func (r *runner) serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the board over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := r.resolve(cmd); err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			k, release, err := r.open(ctx)
			if err != nil {
				return err
			}
			defer release()

			e := httpapi.New(k, log.NewZerologAdapterWithLogger(r.log))
			errCh := make(chan error, 1)
			go func() {
				r.log.Info().Str("listen", r.cfg.Listen).Msg("serving board")
				errCh <- e.Start(r.cfg.Listen)
			}()

			select {
			case err := <-errCh:
				if !errors.Is(err, http.ErrServerClosed) {
					return err
				}
				return nil
			case <-ctx.Done():
				r.log.Info().Msg("received signal, stopping...")
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), app.ShutdownTimeout)
			defer cancel()
			return e.Shutdown(shutdownCtx)
		},
	}
	cmd.Flags().StringVar(&r.cfg.Listen, "listen", r.cfg.Listen, "HTTP listen address")
	return cmd
}

func (r *runner) watchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Print the lists whenever the file store changes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := r.resolve(cmd); err != nil {
				return err
			}
			if r.cfg.Store != cliconfig.StoreFile {
				return errors.New("watch needs --store file")
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			out := cmd.OutOrStdout()
			k, release, err := r.open(ctx, storewatcher.WithStoreWatcher(storewatcher.Config{
				DebounceDelay: r.cfg.DebounceDelay,
				OnChange: func(lists []kanban.List) {
					if err := printJSON(out, lists); err != nil {
						r.log.Error().Err(err).Msg("print lists")
					}
				},
			}))
			if err != nil {
				return err
			}
			defer release()

			if err := k.Start(ctx); err != nil {
				return err
			}
			if err := printJSON(out, k.State().Lists); err != nil {
				return err
			}

			<-ctx.Done()
			r.log.Info().Msg("received signal, stopping...")
			return k.Stop()
		},
	}
	cmd.Flags().DurationVar(&r.cfg.DebounceDelay, "debounce", r.cfg.DebounceDelay, "delay after a change before reloading")
	return cmd
}
