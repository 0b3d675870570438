package commands

import (
	"bytes"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/teranos/uf90/internal/util"
	"github.com/teranos/uf90/sym"
)

// TableCmd prints the symbol reference table
var TableCmd = newTableCmd()

func newTableCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "table",
		Short: "Print the Unicode to ASCII reference table",
		Long: `Print every supported symbol with its ASCII replacement, grouped by
category.

Examples:
  uf90 table                             # stdout
  uf90 table -o ` + sym.DefaultTableFile,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if output == "" {
				return sym.WriteReferenceTable(cmd.OutOrStdout())
			}

			var buf bytes.Buffer
			if err := sym.WriteReferenceTable(&buf); err != nil {
				return err
			}
			if err := util.WriteFileAtomic(output, buf.Bytes(), util.DefaultFilePermissions); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Write the table to a file instead of stdout")
	return cmd
}
