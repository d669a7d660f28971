package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/bnema/layoutguard/internal/adapters/render/report"
	"github.com/bnema/layoutguard/internal/adapters/watch"
	"github.com/bnema/layoutguard/internal/application"
	"github.com/bnema/layoutguard/internal/domain"
	"github.com/spf13/cobra"
)

var (
	errNoEntities    = errors.New("no entities to check: pass entity names or --all")
	errWatchRevision = errors.New("--watch reads the working tree and cannot be combined with --rev")
)

func newCheckCmd(app *app) *cobra.Command {
	var (
		all     bool
		dryRun  bool
		watchFS bool
		fields  bool
		output  string
	)

	cmd := &cobra.Command{
		Use:   "check [entity...]",
		Short: "Compare storage layouts against their baselines",
		Long: "Extract the storage layout of each entity and compare it with the recorded baseline. " +
			"An entity seen for the first time has its layout recorded as the baseline.\n\n" +
			"Exit status is 0 when every layout is safe, 1 when any layout changed incompatibly " +
			"and 2 when any entity could not be checked.",
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := report.ParseFormat(output)
			if err != nil {
				return err
			}
			if watchFS && app.rev != "" {
				return errWatchRevision
			}

			ids, err := app.resolveEntities(cmd.Context(), args, all)
			if err != nil {
				return err
			}

			opts := application.CheckOptions{DryRun: dryRun}
			reports := app.service.CheckAll(cmd.Context(), ids, opts)
			if err := app.writeReports(cmd, format, reports, fields); err != nil {
				return err
			}

			if watchFS {
				return app.watch(cmd, ids, format, fields)
			}

			return checkExit(reports)
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Check every contract directory under --root")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Do not record baselines for first observations")
	cmd.Flags().BoolVarP(&watchFS, "watch", "w", false, "Re-check entities when their declaration changes (never records baselines)")
	cmd.Flags().BoolVar(&fields, "fields", false, "List current fields in text output")
	addOutputFlag(cmd, &output)

	return cmd
}

func (a *app) resolveEntities(ctx context.Context, args []string, all bool) ([]domain.EntityID, error) {
	ids := make([]domain.EntityID, 0, len(args))
	seen := map[domain.EntityID]bool{}
	add := func(id domain.EntityID) {
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}

	for _, arg := range args {
		add(domain.EntityID(arg))
	}

	if all {
		found, err := a.files.Entities(ctx)
		if err != nil {
			return nil, err
		}
		for _, id := range found {
			add(id)
		}
	}

	if len(ids) == 0 {
		return nil, errNoEntities
	}
	return ids, nil
}

func (a *app) writeReports(cmd *cobra.Command, format report.Format, reports []application.CheckReport, fields bool) error {
	return writeOutput(cmd, format, reports, func() (string, error) {
		rendered, err := a.reportRenderer(reports, report.RenderOptions{Verbose: fields})
		if err != nil {
			return "", fmt.Errorf("render reports: %w", err)
		}
		return rendered, nil
	})
}

func (a *app) watch(cmd *cobra.Command, ids []domain.EntityID, format report.Format, fields bool) error {
	targets := make([]watch.Target, 0, len(ids))
	for _, id := range ids {
		path, err := a.files.Path(id)
		if err != nil {
			return err
		}
		targets = append(targets, watch.Target{Entity: id, Path: path})
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var writeErr error
	watcher, err := watch.New(targets, func(ctx context.Context, id domain.EntityID) {
		checked := a.service.Check(ctx, id, application.CheckOptions{DryRun: true})
		if err := a.writeReports(cmd, format, []application.CheckReport{checked}, fields); err != nil {
			writeErr = err
			stop()
		}
	}, watch.Options{Logger: a.logger})
	if err != nil {
		return err
	}

	if err := watcher.Run(ctx); err != nil {
		return err
	}
	return writeErr
}
