package cmd

import (
	"fmt"

	"github.com/bnema/layoutguard/internal/adapters/render/report"
	"github.com/bnema/layoutguard/internal/domain"
	"github.com/spf13/cobra"
)

func newAcceptCmd(app *app) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "accept <entity>",
		Short: "Record the current storage layout as the new baseline",
		Long: "Replace the recorded baseline of an entity with its current layout. Use this only for " +
			"changes that are handled by a storage migration.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := report.ParseFormat(output)
			if err != nil {
				return err
			}

			baseline, err := app.service.Accept(cmd.Context(), domain.EntityID(args[0]))
			if err != nil {
				return err
			}

			return writeOutput(cmd, format, baseline, func() (string, error) {
				return fmt.Sprintf("accepted baseline for %s (%d fields)", baseline.Snapshot.Entity, baseline.Snapshot.Len()), nil
			})
		},
	}

	addOutputFlag(cmd, &output)
	return cmd
}
