package commands

import (
	"github.com/spf13/cobra"

	"github.com/teranos/uf90/errors"
	"github.com/teranos/uf90/sync"
)

// CheckCmd reports whether a project needs translating
var CheckCmd = newCheckCmd()

func newCheckCmd() *cobra.Command {
	var f projectFlags

	cmd := &cobra.Command{
		Use:   "check [root]",
		Short: "Exit 1 when Unicode sources need translating",
		Long: `Report Unicode sources whose translation is out of date without
writing anything.

Exits 0 when every source is up to date and 1 when at least one is
pending, so it can guard a build or a CI step.

Examples:
  uf90 check                # current directory
  uf90 check src -v         # list the pending files
  uf90 check --json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, rootArg(args), f)
		},
	}

	f.register(cmd, true)
	cmd.Flags().Bool("json", false, "Output the result as JSON")
	return cmd
}

func runCheck(cmd *cobra.Command, root string, f projectFlags) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	opts, err := f.options(cfg)
	if err != nil {
		return err
	}
	opts.Check = true

	res, err := sync.Project(contextOf(cmd), root, opts)
	if err != nil {
		return errors.Wrapf(err, "check %s", root)
	}
	if err := printSyncResult(cmd, root, opts, res); err != nil {
		return err
	}

	if res.Pending > 0 {
		return &ExitError{Code: ExitPending}
	}
	return nil
}
