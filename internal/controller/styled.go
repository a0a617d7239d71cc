package controller

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	m "github.com/jamjar/jamjar-editor/internal/model"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)

	componentStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("6")).
			Bold(true)

	nameStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))

	typeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))

	mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9")).
			Bold(true)

	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
)

// StyledUI implements UI with colored terminal output.
type StyledUI struct {
	output io.Writer
}

// NewStyledUI creates a new StyledUI.
func NewStyledUI(output io.Writer) *StyledUI {
	return &StyledUI{output: output}
}

// DisplaySpecs prints each component as a heading followed by an indented
// property tree.
func (s *StyledUI) DisplaySpecs(specs []m.ComponentSpec, err error) error {
	if err != nil {
		s.println(errorStyle.Render("parse error: ") + err.Error())
		return err
	}

	rows := specRows(specs)

	s.println(titleStyle.Render(fmt.Sprintf("%d component(s)", countSpecs(rows))))

	nameWidth := 0
	for _, row := range rows {
		nameWidth = max(nameWidth, lipgloss.Width(row.name))
	}

	current := ""
	for _, row := range rows {
		if row.spec != current {
			current = row.spec
			s.println("")
			s.println(componentStyle.Render(row.spec))
		}

		if row.typeName == "" {
			s.println("  " + mutedStyle.Render("no parameters"))
			continue
		}

		depth := strings.Count(row.name, ".")
		name := row.name
		if row.optional {
			name += "?"
		}

		line := fmt.Sprintf("  %s%s  %s",
			strings.Repeat("  ", depth),
			nameStyle.Width(nameWidth+1).Render(name),
			typeStyle.Render(row.typeName),
		)
		if row.value != "" {
			line += "  " + mutedStyle.Render("= "+row.value)
		}

		s.println(line)
	}

	return nil
}

// DisplayWrite prints the new source in dry-run mode, a summary otherwise.
func (s *StyledUI) DisplayWrite(path m.Path, source []byte, dryRun bool, err error) error {
	if err != nil {
		s.println(errorStyle.Render("write error: ") + fmt.Sprintf("%s: %v", path, err))
		return err
	}

	if dryRun {
		s.println(mutedStyle.Render("// " + string(path)))
		_, _ = fmt.Fprint(s.output, string(source))

		return nil
	}

	s.println(successStyle.Render("✓ wrote ") + string(path) + mutedStyle.Render(fmt.Sprintf(" (%d bytes)", len(source))))

	return nil
}

// DisplayCreated prints the path of a new scene.
func (s *StyledUI) DisplayCreated(path m.Path, err error) error {
	if err != nil {
		s.println(errorStyle.Render("create error: ") + err.Error())
		return err
	}

	s.println(successStyle.Render("✓ created ") + string(path))

	return nil
}

func (s *StyledUI) println(line string) {
	_, _ = fmt.Fprintln(s.output, line)
}
