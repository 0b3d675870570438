package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/uf90/display"
	"github.com/teranos/uf90/errors"
	"github.com/teranos/uf90/logger"
	"github.com/teranos/uf90/sync"
)

// SyncCmd translates every changed source under a project root
var SyncCmd = newSyncCmd()

type syncFlags struct {
	projectFlags
	dryRun  bool
	check   bool
	watch   bool
	workers int
}

// syncReport is the --json shape of one pass.
type syncReport struct {
	Root       string   `json:"root"`
	Mode       string   `json:"mode"`
	Pending    int      `json:"pending"`
	Files      []string `json:"pending_files"`
	Translated []string `json:"translated"`
	Pruned     int      `json:"pruned"`
	Tree       string   `json:"tree"`
	DurationMS int64    `json:"duration_ms"`
}

func newSyncCmd() *cobra.Command {
	var f syncFlags

	cmd := &cobra.Command{
		Use:   "sync [root]",
		Short: "Translate changed Unicode sources in a project",
		Long: `Translate every Unicode source under root whose content changed since
the last run.

A JSON manifest in the project root records the SHA-256 of each source at
its last successful translation. Sources whose digest matches and whose
output exists are skipped.

Examples:
  uf90 sync                        # current directory
  uf90 sync src --ext .uf          # also translate *.uf
  uf90 sync --dry-run -v           # list what would be translated
  uf90 sync --check                # exit 1 if anything is pending
  uf90 sync --watch                # retranslate on every change`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSync(cmd, rootArg(args), f)
		},
	}

	f.register(cmd, true)
	cmd.Flags().BoolVar(&f.dryRun, "dry-run", false, "Report pending sources without writing anything")
	cmd.Flags().BoolVar(&f.check, "check", false, "Report pending sources and exit 1 if any")
	cmd.Flags().BoolVar(&f.watch, "watch", false, "Keep running and sync on every change")
	cmd.Flags().IntVar(&f.workers, "workers", 0, "Concurrent translations (default from sync.workers, 0 = CPUs)")
	cmd.Flags().Bool("json", false, "Output the pass summary as JSON")
	return cmd
}

func runSync(cmd *cobra.Command, root string, f syncFlags) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	opts, err := f.options(cfg)
	if err != nil {
		return err
	}
	opts.DryRun = f.dryRun
	opts.Check = f.check
	if cmd.Flags().Changed("workers") {
		if f.workers < 0 {
			return errors.NewInvalidConfigError("--workers must be >= 0, got %d", f.workers)
		}
		opts.Workers = f.workers
	}

	if f.watch {
		if opts.ReadOnly() {
			return errors.WithHint(
				errors.New("--watch cannot be combined with --dry-run or --check"),
				"drop --watch to inspect pending sources once")
		}
		return runWatch(cmd, root, opts)
	}

	res, err := sync.Project(contextOf(cmd), root, opts)
	if err != nil {
		return errors.Wrapf(err, "sync %s", root)
	}
	if err := printSyncResult(cmd, root, opts, res); err != nil {
		return err
	}

	if opts.Check && res.Pending > 0 {
		return &ExitError{Code: ExitPending}
	}
	return nil
}

func runWatch(cmd *cobra.Command, root string, opts sync.Options) error {
	ctx, stop := signal.NotifyContext(contextOf(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()

	out := cmd.OutOrStdout()
	w, err := sync.NewWatcher(root, opts, func(res sync.Result, err error) {
		reportPass(cmd, root, opts, res, err)
	})
	if err != nil {
		return err
	}

	pterm.Info.WithWriter(out).Printfln("Watching %s (Ctrl-C to stop)", root)
	return w.Run(ctx)
}

// reportPass prints one watch pass. Errors go to stderr so the watch keeps
// running.
func reportPass(cmd *cobra.Command, root string, opts sync.Options, res sync.Result, err error) {
	if err != nil {
		ReportError(cmd.ErrOrStderr(), errors.Wrapf(err, "sync %s", root))
		return
	}
	if len(res.Translated) == 0 && res.Pruned == 0 {
		return
	}
	if err := printSyncResult(cmd, root, opts, res); err != nil {
		ReportError(cmd.ErrOrStderr(), errors.Wrap(err, "print sync result"))
	}
}

func printSyncResult(cmd *cobra.Command, root string, opts sync.Options, res sync.Result) error {
	if display.ShouldOutputJSON(cmd) {
		return display.WriteJSON(cmd.OutOrStdout(), newSyncReport(root, opts, res))
	}

	out := cmd.OutOrStdout()
	v := verbosity(cmd)

	switch {
	case opts.ReadOnly() && res.Pending == 0:
		pterm.Success.WithWriter(out).Println("Up to date")
	case opts.ReadOnly():
		pterm.Warning.WithWriter(out).Printfln("%d source(s) pending translation", res.Pending)
		if logger.ShouldOutput(v, logger.OutputFileList) {
			printFileList(out, res.PendingFiles)
		}
	case len(res.Translated) == 0 && res.Pruned == 0:
		pterm.Success.WithWriter(out).Println("Up to date")
	default:
		if logger.ShouldOutput(v, logger.OutputFileList) {
			printFileList(out, res.Translated)
		}
		msg := fmt.Sprintf("Translated %d file(s)", len(res.Translated))
		if res.Pruned > 0 {
			msg += fmt.Sprintf(", pruned %d stale manifest entries", res.Pruned)
		}
		pterm.Success.WithWriter(out).Println(msg)
	}

	if logger.ShouldOutput(v, logger.OutputTiming) {
		pterm.Fprintln(out, pterm.Gray("took "+res.Duration.String()))
	}
	return nil
}

func printFileList(w io.Writer, paths []string) {
	for _, p := range paths {
		pterm.Fprintln(w, "  "+pterm.Gray("→")+" "+pterm.LightGreen(p))
	}
}

func newSyncReport(root string, opts sync.Options, res sync.Result) syncReport {
	mode := "sync"
	switch {
	case opts.Check:
		mode = "check"
	case opts.DryRun:
		mode = "dry-run"
	}
	files, translated := res.PendingFiles, res.Translated
	if files == nil {
		files = []string{}
	}
	if translated == nil {
		translated = []string{}
	}
	return syncReport{
		Root:       root,
		Mode:       mode,
		Pending:    res.Pending,
		Files:      files,
		Translated: translated,
		Pruned:     res.Pruned,
		Tree:       res.Tree,
		DurationMS: res.Duration.Milliseconds(),
	}
}

func contextOf(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
