package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"tempo/internal/core/calendar"
	"tempo/internal/core/notes"
	"tempo/internal/ui/termcal"
)

var errNoteNotFound = errors.New("note not found")

func newNotesCmd(app *cli) *cobra.Command {
	notesCmd := &cobra.Command{
		Use:   "notes",
		Short: "List, add and delete calendar notes",
	}

	var listDate string
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List notes, most recent first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, slots, err := app.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer slots.Close()

			listed := store.List()
			if listDate != "" {
				key, err := parseDateFlag(listDate)
				if err != nil {
					return err
				}
				listed = store.ForDate(key)
			}
			printer := termcal.New(lipgloss.NewRenderer(cmd.OutOrStdout()))
			fmt.Fprintln(cmd.OutOrStdout(), printer.Notes(listed))
			return nil
		},
	}
	listCmd.Flags().StringVar(&listDate, "date", "", "only notes for this day (YYYY-MM-DD)")

	var addDate string
	addCmd := &cobra.Command{
		Use:   "add TEXT...",
		Short: "Add a note to a day (default today)",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := ""
			if addDate != "" {
				parsed, err := parseDateFlag(addDate)
				if err != nil {
					return err
				}
				key = parsed
			}

			store, slots, err := app.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer slots.Close()

			note, err := store.Add(cmd.Context(), strings.Join(args, " "), key)
			if errors.Is(err, notes.ErrEmptyText) {
				app.logger.Debug("blank note ignored")
				return nil
			}
			if err != nil {
				return fmt.Errorf("add note: %w", err)
			}
			app.logger.Debug("note added", zap.Int64("id", note.ID), zap.String("date", note.Date))
			fmt.Fprintf(cmd.OutOrStdout(), "added %d on %s\n", note.ID, note.Date)
			return nil
		},
	}
	addCmd.Flags().StringVar(&addDate, "date", "", "day to attach the note to (YYYY-MM-DD)")

	deleteCmd := &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a note by id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("parse note id %q: %w", args[0], err)
			}

			store, slots, err := app.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer slots.Close()

			removed, err := store.Delete(cmd.Context(), id)
			if err != nil {
				return fmt.Errorf("delete note: %w", err)
			}
			if !removed {
				return fmt.Errorf("delete note %d: %w", id, errNoteNotFound)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted %d\n", id)
			return nil
		},
	}

	notesCmd.AddCommand(listCmd, addCmd, deleteCmd)
	return notesCmd
}

// parseDateFlag accepts YYYY-MM-DD and the unpadded YYYY-M-D form.
func parseDateFlag(value string) (string, error) {
	key, ok := calendar.NormalizeKey(value)
	if !ok {
		return "", fmt.Errorf("invalid date %q: want YYYY-MM-DD", value)
	}
	return key, nil
}
