package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func Execute() error {
	rootCmd := newRootCmd()
	err := rootCmd.Execute()

	var exitErr *exitError
	if err != nil && !errors.As(err, &exitErr) {
		_, _ = fmt.Fprintln(rootCmd.ErrOrStderr(), "Error:", err)
	}
	return err
}

func newRootCmd() *cobra.Command {
	cfg := viper.New()
	app := &app{config: cfg}

	rootCmd := &cobra.Command{
		Use:   "layoutguard",
		Short: "Guard contract storage layouts against incompatible changes",
		Long: "layoutguard extracts the ordered fields of each contract's storage struct, compares them " +
			"with the recorded baseline and reports any change that would break the on-chain layout.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return app.wire(cmd)
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			app.close()
		},
	}

	bindPersistentFlags(rootCmd, cfg)

	rootCmd.AddCommand(
		newVersionCmd(),
		newCheckCmd(app),
		newShowCmd(app),
		newAcceptCmd(app),
		newBaselineCmd(app),
	)

	return rootCmd
}
