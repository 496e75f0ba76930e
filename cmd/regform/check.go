package main

import (
	"errors"

	"github.com/pot-code/regform/internal/interfaces/cli"
	"github.com/spf13/cobra"
)

var errInvalidForm = errors.New("form is invalid")

var checkOption = new(cli.CheckOption)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate a registration snapshot file (YAML or JSON)",
	Example: `  regform check --file snapshot.yaml
  cat snapshot.json | regform check --file -`,
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().StringVarP(&checkOption.File, "file", "f", "", "snapshot file, - for stdin (required)")
	checkCmd.Flags().BoolVar(&checkOption.NoColor, "no-color", false, "disable colored output")
	checkCmd.MarkFlagRequired("file")
}

func runCheck(cmd *cobra.Command, args []string) error {
	ok, err := cli.Check(checkOption, cmd.InOrStdin(), cmd.OutOrStdout())
	if err != nil {
		return err
	}
	if !ok {
		cmd.SilenceErrors = true
		return errInvalidForm
	}
	return nil
}
