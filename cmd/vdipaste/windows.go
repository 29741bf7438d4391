package main

import (
	"fmt"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"
	"github.com/Gaurav-Gosain/vdipaste/internal/window"
	"github.com/Gaurav-Gosain/vdipaste/internal/xdotool"
	"github.com/spf13/cobra"
)

func newWindowsCmd(flags *transferFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "windows",
		Aliases: []string{"ls"},
		Short:   "List visible windows",
		Long:    `List the id and title of every visible window, for use with --window`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			xdo := xdotool.New(nil, logger).WithBinary(flags.xdotool)
			windows, err := window.NewLocator(xdo, nil, logger).Visible(cmd.Context())
			if err != nil {
				return err
			}

			rows := make([][]string, 0, len(windows))
			for _, w := range windows {
				rows = append(rows, []string{string(w.Handle), w.Title})
			}
			t := table.New().
				Border(lipgloss.RoundedBorder()).
				BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("8"))).
				Headers("Window", "Title").
				Rows(rows...).
				StyleFunc(func(row, col int) lipgloss.Style {
					if row == table.HeaderRow {
						return headerStyle
					}
					return cellStyle
				})

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, t.Render())
			fmt.Fprintln(out, noteStyle.Render(fmt.Sprintf("%d visible window(s)", len(windows))))
			return nil
		},
	}
	cmd.Flags().StringVar(&flags.xdotool, "xdotool", "", "Path to the xdotool binary")
	return cmd
}
