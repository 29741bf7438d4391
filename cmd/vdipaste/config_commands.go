package main

import (
	"fmt"
	"strconv"
	"strings"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"
	"github.com/Gaurav-Gosain/vdipaste/internal/config"
	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Padding(0, 1)
	noteStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Italic(true)
)

func newConfigCmd(flags *transferFlags) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect application configurations",
		Long:  `Inspect the application configurations available to transfers`,
	}

	configListCmd := &cobra.Command{
		Use:   "list",
		Short: "List configured applications",
		Long:  `Display every application configuration in a formatted table`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return listConfigs(cmd, config.ResolvePath(flags.configPath))
		},
	}

	configShowCmd := &cobra.Command{
		Use:   "show <name>",
		Short: "Print a resolved configuration",
		Long: `Print one application configuration after environment fallbacks and
defaults have been applied, rendered as TOML`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfig(cmd, config.ResolvePath(flags.configPath), args[0])
		},
	}

	configPathCmd := &cobra.Command{
		Use:   "path",
		Short: "Print configuration file path",
		Long:  `Print the configuration file transfers will read`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, config.ResolvePath(flags.configPath))
			fmt.Fprintln(out, noteStyle.Render("User configuration: "+config.UserPath()))
			return nil
		},
	}

	configCmd.AddCommand(configListCmd, configShowCmd, configPathCmd)
	return configCmd
}

func listConfigs(cmd *cobra.Command, path string) error {
	f, err := config.LoadFile(path)
	if err != nil {
		return err
	}

	var rows [][]string
	invalid := map[int]bool{}
	for _, name := range f.Names() {
		app, err := f.Application(name)
		if err != nil {
			invalid[len(rows)] = true
			rows = append(rows, []string{name, "-", "-", "-", "-", firstLine(err)})
			continue
		}
		rows = append(rows, configRow(app))
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("8"))).
		Headers("Name", "Type", "Mode", "Target", "Steps", "Payload").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case invalid[row]:
				return errorStyle
			}
			return cellStyle
		})

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11")).Render(path))
	fmt.Fprintln(out, t.Render())
	return nil
}

func configRow(app config.Application) []string {
	target := "--window"
	switch {
	case app.LaunchesLocally():
		target = fmt.Sprintf("launch %q, match %q", app.LaunchCommand, app.WindowMatch)
	case app.WindowTitle != "":
		target = fmt.Sprintf("title %q", app.WindowTitle)
	}
	mode := string(app.Mode)
	if mode == "" {
		mode = "(flag)"
	}
	payload := string(app.Strategy)
	if app.NoPayload {
		payload = "none"
	}
	return []string{app.Name, string(app.Kind), mode, target, strconv.Itoa(len(app.OpenSteps)), payload}
}

func showConfig(cmd *cobra.Command, path, name string) error {
	f, err := config.LoadFile(path)
	if err != nil {
		return err
	}
	app, err := f.Application(name)
	if err != nil {
		return err
	}
	data, err := toml.Marshal(app.View())
	if err != nil {
		return fmt.Errorf("render configuration: %w", err)
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}

func firstLine(err error) string {
	msg, _, _ := strings.Cut(err.Error(), "\n")
	return msg
}
