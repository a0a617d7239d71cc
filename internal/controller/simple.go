package controller

import (
	"bytes"
	"fmt"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	m "github.com/jamjar/jamjar-editor/internal/model"
)

// SimpleUI implements UI using cobra Command's output with plain tables.
type SimpleUI struct {
	cmd *cobra.Command
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command) *SimpleUI {
	return &SimpleUI{cmd: cmd}
}

// DisplaySpecs prints one table row per property or the error.
func (s *SimpleUI) DisplaySpecs(specs []m.ComponentSpec, err error) error {
	if err != nil {
		s.printf("parse error: %v\n", err)
		return err
	}

	rows := specRows(specs)

	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Component", "Property", "Type", "Optional", "Default"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetAutoWrapText(false)
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_CENTER,
		tablewriter.ALIGN_LEFT,
	})

	for _, row := range rows {
		optional := ""
		if row.optional {
			optional = "yes"
		}

		table.Append([]string{row.spec, row.name, row.typeName, optional, row.value})
	}

	table.SetFooter([]string{
		fmt.Sprintf("Total Components %d", countSpecs(rows)),
		fmt.Sprintf("%d", len(rows)),
		"", "", "",
	})

	table.Render()
	s.printf("\n%s", tableBuffer.String())

	return nil
}

// DisplayWrite prints the new source in dry-run mode, a summary otherwise.
func (s *SimpleUI) DisplayWrite(path m.Path, source []byte, dryRun bool, err error) error {
	if err != nil {
		s.printf("write error: %s: %v\n", path, err)
		return err
	}

	if dryRun {
		s.printf("%s", source)
		return nil
	}

	s.printf("wrote %s (%d bytes)\n", path, len(source))

	return nil
}

// DisplayCreated prints the path of a new scene.
func (s *SimpleUI) DisplayCreated(path m.Path, err error) error {
	if err != nil {
		s.printf("create error: %v\n", err)
		return err
	}

	s.printf("created %s\n", path)

	return nil
}

func (s *SimpleUI) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(s.cmd.OutOrStdout(), format, args...)
}
