package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/teranos/uf90/logger"
	"github.com/teranos/uf90/translate"
)

// TranslateCmd translates one file
var TranslateCmd = newTranslateCmd()

type translateFlags struct {
	output             string
	noPreserveComments bool
	strict             bool
}

func newTranslateCmd() *cobra.Command {
	var f translateFlags

	cmd := &cobra.Command{
		Use:   "translate <src>",
		Short: "Translate one Unicode Fortran file to ASCII",
		Long: `Translate one Unicode Fortran file to ASCII.

The output defaults to the source name with .f90u replaced by .f90 and is
printed on stdout when the translation succeeds.

Examples:
  uf90 translate heat.f90u                  # writes heat.f90
  uf90 translate heat.f90u -o build/heat.f90
  uf90 translate heat.f90u --strict         # fail on unmapped symbols`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTranslate(cmd, args[0], f)
		},
	}

	cmd.Flags().StringVarP(&f.output, "output", "o", "", "Output file (default: source with .f90 extension)")
	cmd.Flags().BoolVar(&f.noPreserveComments, "no-preserve-comments", false, "Translate symbols inside trailing comments too")
	cmd.Flags().BoolVar(&f.strict, "strict", false, "Fail when non-ASCII characters remain in code")
	return cmd
}

func runTranslate(cmd *cobra.Command, src string, f translateFlags) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	opts := cfg.TranslateOptions()
	if f.noPreserveComments {
		opts.PreserveComments = false
	}
	if f.strict {
		opts.Strict = true
	}

	res, err := translate.TranslateFile(src, f.output, opts)
	if err != nil {
		return err
	}

	log := logger.ComponentLogger("translate")
	for _, u := range res.Unmapped {
		log.Warnw("Non-ASCII character left in code",
			logger.FieldFile, res.Source,
			logger.FieldPosition, fmt.Sprintf("%d:%d", u.Line, u.Column),
			logger.FieldSymbol, fmt.Sprintf("%U", u.Rune))
	}
	log.Debugw("Translated file",
		logger.FieldFile, res.Source,
		logger.FieldOutput, res.Output,
		"replaced", res.Replaced)

	fmt.Fprintln(cmd.OutOrStdout(), res.Output)
	return nil
}
