package commands

import (
	"os"
	"os/exec"

	"github.com/kballard/go-shellquote"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/uf90/errors"
	"github.com/teranos/uf90/logger"
	"github.com/teranos/uf90/sync"
)

// FpmCmd syncs a project and then runs the build tool in it
var FpmCmd = newFpmCmd()

type fpmFlags struct {
	projectFlags
	root string
}

// lookPath is replaced in tests.
var lookPath = exec.LookPath

func newFpmCmd() *cobra.Command {
	var f fpmFlags

	cmd := &cobra.Command{
		Use:   "fpm [-- args...]",
		Short: "Sync, then run the Fortran build tool",
		Long: `Translate every changed Unicode source, then run the build tool
(build.tool, default fpm) in the project root.

Arguments after -- are passed to the tool unchanged. Without any,
build.default_args is used. The tool's exit code becomes uf90's exit code.

Examples:
  uf90 fpm                          # sync, then 'fpm build'
  uf90 fpm -- run --example heat    # sync, then 'fpm run --example heat'
  uf90 fpm --root ../solver -- test`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFpm(cmd, args, f)
		},
	}

	f.register(cmd, false)
	cmd.Flags().StringVar(&f.root, "root", ".", "Project root")
	return cmd
}

func runFpm(cmd *cobra.Command, toolArgs []string, f fpmFlags) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	tool := cfg.Build.Tool
	toolPath, err := lookPath(tool)
	if err != nil {
		return errors.WithHint(
			errors.Mark(errors.Wrapf(err, "build tool %q not found on PATH", tool), errors.ErrBuildToolNotFound),
			"install it or set build.tool in uf90.toml")
	}

	if len(toolArgs) == 0 {
		if toolArgs, err = cfg.BuildArgs(); err != nil {
			return err
		}
	}

	// Always a writing pass
	opts, err := f.options(cfg)
	if err != nil {
		return err
	}
	res, err := sync.Project(contextOf(cmd), f.root, opts)
	if err != nil {
		return errors.Wrapf(err, "sync %s", f.root)
	}

	log := logger.ComponentLogger("fpm")
	log.Infow("Synced before build",
		logger.FieldRoot, f.root,
		logger.FieldCount, len(res.Translated))

	stderr := cmd.ErrOrStderr()
	pterm.Info.WithWriter(stderr).Printfln("Synced %d file(s)", len(res.Translated))
	pterm.Info.WithWriter(stderr).Printfln("Running %s", shellquote.Join(append([]string{tool}, toolArgs...)...))

	run := exec.CommandContext(contextOf(cmd), toolPath, toolArgs...)
	run.Dir = f.root
	run.Stdin = os.Stdin
	run.Stdout = cmd.OutOrStdout()
	run.Stderr = stderr

	if err := run.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			code := exitErr.ExitCode()
			if code < 0 {
				// Killed by a signal
				code = 1
			}
			log.Debugw("Build tool failed",
				logger.FieldTool, tool,
				logger.FieldArgs, toolArgs,
				logger.FieldExitCode, code)
			return &ExitError{Code: code}
		}
		return errors.Wrapf(err, "failed to run %s", tool)
	}
	return nil
}
