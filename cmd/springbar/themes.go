package main

import (
	"fmt"

	"github.com/muesli/termenv"
	"github.com/san-kum/springbar/internal/colors"
	"github.com/san-kum/springbar/internal/viz"
	"github.com/spf13/cobra"
)

const previewProgress = 0.65

// outputProfile honours --profile and otherwise asks the terminal.
func outputProfile() colors.Profile {
	if profile != "" && profile != "auto" {
		if p, err := colors.ParseProfile(profile); err == nil {
			return p
		}
	}
	return colors.FromTermenv(termenv.EnvColorProfile())
}

func previewThemes(cmd *cobra.Command, args []string) error {
	p := outputProfile()
	base, err := viz.NewStyle(viz.WithProfile(p), viz.WithWidth(30))
	if err != nil {
		return err
	}

	section := func(title string) {
		fmt.Println(termenv.String(title).Bold())
	}
	row := func(name string, opt viz.Option) error {
		style, err := base.With(opt)
		if err != nil {
			return err
		}
		line, err := viz.Render(previewProgress, style)
		if err != nil {
			return err
		}
		fmt.Printf("  %-12s %s\n", name, line.ANSI())
		return nil
	}

	section("themes")
	for _, name := range viz.ThemeNames() {
		if err := row(name, viz.WithTheme(name)); err != nil {
			return err
		}
	}

	fmt.Println()
	section("gradients")
	for _, name := range colors.PresetNames() {
		if err := row(name, viz.WithPresetGradient(name)); err != nil {
			return err
		}
	}

	fmt.Println()
	section("glyphs")
	for _, name := range viz.CharacterStyleNames() {
		if err := row(name, viz.WithCharacterStyle(name)); err != nil {
			return err
		}
	}
	return nil
}
