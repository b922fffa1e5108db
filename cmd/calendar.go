package main

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"tempo/internal/core/calendar"
	"tempo/internal/core/model"
	"tempo/internal/ui/termcal"
)

const monthLayout = "2006-01"

func newCalendarCmd(app *cli) *cobra.Command {
	var month string
	calendarCmd := &cobra.Command{
		Use:   "calendar",
		Short: "Print a month grid with days that have notes marked",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			now := app.now()
			cursor := model.CursorOf(now)
			if month != "" {
				parsed, err := time.Parse(monthLayout, month)
				if err != nil {
					return fmt.Errorf("invalid month %q: want YYYY-MM", month)
				}
				cursor = model.CursorOf(parsed)
			}

			store, slots, err := app.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer slots.Close()

			grid := calendar.Render(cursor, now, "", store)
			printer := termcal.New(lipgloss.NewRenderer(cmd.OutOrStdout()))
			fmt.Fprintln(cmd.OutOrStdout(), printer.Month(grid))
			return nil
		},
	}
	calendarCmd.Flags().StringVar(&month, "month", "", "month to print (YYYY-MM, default current)")
	return calendarCmd
}
