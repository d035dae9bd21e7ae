// Package prompts provides the interactive terminal forms for the lab
// session.
package prompts

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// Theme returns the shared huh theme used across all session forms.
func Theme() *huh.Theme {
	theme := huh.ThemeBase16()
	theme.FieldSeparator = lipgloss.NewStyle().SetString("\n").MarginBottom(1)
	theme.Form = theme.Form.MarginTop(1)
	theme.Group = theme.Group.MarginTop(1)
	theme.Focused.Title = theme.Focused.Title.Foreground(lipgloss.Color("#f9ca24"))
	theme.Blurred.Title = theme.Blurred.Title.Foreground(lipgloss.Color("#bababa"))
	return theme
}

// ResultField is a label-value pair for PrintResult.
type ResultField struct {
	Label string
	Value string
}

// PrintResult prints a styled summary with green checkmarks and gray labels.
func PrintResult(fields []ResultField, successMsg string) {
	success := lipgloss.NewStyle().Foreground(lipgloss.Color("#27ca3f"))
	label := lipgloss.NewStyle().Foreground(lipgloss.Color("#bababa"))
	check := success.Render("✓")

	fmt.Println()
	for _, f := range fields {
		fmt.Printf("%s %s %s\n", check, label.Render(f.Label+":"), f.Value)
	}

	if successMsg != "" {
		fmt.Println(success.Render("\n" + successMsg))
	}
}

// Confirm asks a yes/no question.
func Confirm(title string, value *bool) error {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Value(value),
		),
	).WithTheme(Theme()).Run()
}

// Input asks for a single free-form value.
func Input(title string, value *string, validate func(string) error) error {
	in := huh.NewInput().
		Title(title).
		Prompt(": ").
		Inline(true).
		Value(value)
	if validate != nil {
		in = in.Validate(validate)
	}
	return huh.NewForm(huh.NewGroup(in)).WithTheme(Theme()).Run()
}

// Select asks the user to pick one of the given options.
func Select(title string, options []string, value *string) error {
	opts := make([]huh.Option[string], 0, len(options))
	for _, o := range options {
		opts = append(opts, huh.NewOption(o, o))
	}
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title(title).
				Options(opts...).
				Value(value),
		),
	).WithTheme(Theme()).Run()
}

// PositiveNumberValidator rejects anything that does not parse to a
// positive real number.
func PositiveNumberValidator(field string) func(string) error {
	return func(s string) error {
		v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return fmt.Errorf("%s must be a real number", field)
		}
		if v <= 0 {
			return fmt.Errorf("%s must be positive", field)
		}
		return nil
	}
}

// NumberValidator rejects anything that does not parse to a real number.
func NumberValidator(field string) func(string) error {
	return func(s string) error {
		if _, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err != nil {
			return fmt.Errorf("%s must be a real number", field)
		}
		return nil
	}
}

// RequiredValidator rejects empty input.
func RequiredValidator(field string) func(string) error {
	return func(s string) error {
		if s == "" {
			return fmt.Errorf("%s is required", field)
		}
		return nil
	}
}
