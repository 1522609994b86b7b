package commands

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/conduit-lang/bibkit/internal/cli/ui"
	"github.com/conduit-lang/bibkit/internal/journal"
)

func openJournal(ctx context.Context, g *globals) (*journal.Tracker, func(), error) {
	db, err := journal.Open(g.cfg.Journal.Driver, g.cfg.Journal.DSN)
	if err != nil {
		return nil, nil, err
	}
	tracker := journal.NewTracker(db)
	if err := tracker.Initialize(ctx); err != nil {
		db.Close()
		return nil, nil, err
	}
	return tracker, func() { db.Close() }, nil
}

// NewJournalCommand creates the journal command
func NewJournalCommand(g *globals) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "journal",
		Short: "Show field changes recorded by format --write",
		Long: `Show the field changes made while writing .bib files: save actions,
whitespace cleanup and generated citation keys.

Recording is enabled with journal.enabled in bibkit.yml. The journal lives in
a SQLite file by default; a postgres:// DSN stores it in PostgreSQL.`,
	}
	cmd.AddCommand(newJournalSavesCommand(g))
	cmd.AddCommand(newJournalListCommand(g))
	return cmd
}

func newJournalSavesCommand(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "saves",
		Short: "List recorded saves",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := commandContext(cmd)
			tracker, closeFn, err := openJournal(ctx, g)
			if err != nil {
				return err
			}
			defer closeFn()

			saves, err := tracker.Saves(ctx)
			if err != nil {
				return err
			}
			if len(saves) == 0 {
				fmt.Fprint(cmd.OutOrStdout(), ui.Info("No saves recorded", color.NoColor))
				return nil
			}
			table := ui.NewTable(cmd.OutOrStdout(), color.NoColor, "Save", "Changes", "Recorded")
			for _, s := range saves {
				table.AddRow(short(s.ID), strconv.Itoa(s.Changes), s.RecordedAt.Format(time.RFC3339))
			}
			table.Render()
			return nil
		},
	}
}

func newJournalListCommand(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "list [save-id]",
		Short: "List recorded field changes",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := commandContext(cmd)
			tracker, closeFn, err := openJournal(ctx, g)
			if err != nil {
				return err
			}
			defer closeFn()

			saveID := ""
			if len(args) == 1 {
				if saveID, err = resolveSave(ctx, tracker, args[0]); err != nil {
					return err
				}
			}

			records, err := tracker.List(ctx, saveID)
			if err != nil {
				return err
			}
			if len(records) == 0 {
				fmt.Fprint(cmd.OutOrStdout(), ui.Info("No changes recorded", color.NoColor))
				return nil
			}
			table := ui.NewTable(cmd.OutOrStdout(), color.NoColor, "Save", "Key", "Field", "Old", "New")
			for _, r := range records {
				table.AddRow(short(r.SaveID), r.Key, r.Field, strconv.Quote(r.OldValue), strconv.Quote(r.NewValue))
			}
			table.Render()
			return nil
		},
	}
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// resolveSave expands a save id prefix, as printed by "journal saves", to
// the full id.
func resolveSave(ctx context.Context, tracker *journal.Tracker, prefix string) (string, error) {
	saves, err := tracker.Saves(ctx)
	if err != nil {
		return "", err
	}
	var matches []string
	for _, s := range saves {
		if strings.HasPrefix(s.ID, prefix) {
			matches = append(matches, s.ID)
		}
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("no save matches %q", prefix)
	case 1:
		return matches[0], nil
	}
	return "", fmt.Errorf("save id %q is ambiguous: %s", prefix, strings.Join(matches, ", "))
}

// short abbreviates a save id the way git abbreviates hashes.
func short(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
