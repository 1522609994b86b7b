package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/conduit-lang/bibkit/internal/cleanup"
	"github.com/conduit-lang/bibkit/internal/cli/ui"
	"github.com/conduit-lang/bibkit/internal/dbfile"
	"github.com/conduit-lang/bibkit/internal/entrytypes"
	"github.com/conduit-lang/bibkit/internal/metadata"
	"github.com/conduit-lang/bibkit/internal/model"
)

// NewInspectCommand creates the inspect command
func NewInspectCommand(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <document>",
		Short: "Summarize a library document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lib, err := dbfile.Load(args[0])
			if err != nil {
				return err
			}
			md := lib.MetaData
			encoding, _ := lib.Encoding()

			order := "original"
			if md.SaveOrder != nil {
				order = describeOrder(*md.SaveOrder)
			}
			groups := 0
			if md.Groups != nil {
				md.Groups.Walk(func(int, *metadata.Group) { groups++ })
				groups-- // the all-entries root
			}
			var custom []string
			for _, def := range lib.Types.Custom(lib.Mode()) {
				custom = append(custom, def.Name)
			}

			kv := ui.NewKeyValueTable(cmd.OutOrStdout(), color.NoColor)
			kv.AddRow("Mode", string(lib.Mode()))
			kv.AddRow("Encoding", encoding)
			kv.AddRow("Entries", strconv.Itoa(len(lib.Database.Entries())))
			kv.AddRow("Strings", strconv.Itoa(len(lib.Database.Strings())))
			kv.AddRow("Save order", order)
			kv.AddRow("Protected", strconv.FormatBool(md.Protected))
			kv.AddRow("Groups", strconv.Itoa(groups))
			kv.AddRow("Custom types", strings.Join(custom, ", "))
			kv.Render()
			return nil
		},
	}
}

func describeOrder(o model.SaveOrder) string {
	parts := []string{string(o.Type)}
	for _, c := range o.Criteria {
		dir := "asc"
		if c.Descending {
			dir = "desc"
		}
		parts = append(parts, c.Field+":"+dir)
	}
	return strings.Join(parts, " ")
}

// NewFormattersCommand lists the formatters usable in save actions
func NewFormattersCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "formatters",
		Short: "List save action formatters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, key := range cleanup.Keys() {
				fmt.Fprintln(cmd.OutOrStdout(), key)
			}
			return nil
		},
	}
}

// NewTypesCommand lists the standard entry types of a mode
func NewTypesCommand() *cobra.Command {
	var mode string
	cmd := &cobra.Command{
		Use:   "types",
		Short: "List standard entry types and their required fields",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := model.ParseMode(mode)
			if err != nil {
				return err
			}
			types := entrytypes.NewManager()
			table := ui.NewTable(cmd.OutOrStdout(), color.NoColor, "Type", "Required")
			for _, name := range types.Known(m) {
				def, _ := types.Enrich(name, m)
				required := make([]string, len(def.Required))
				for i, group := range def.Required {
					required[i] = group.String()
				}
				table.AddRow(entrytypes.DisplayName(name), strings.Join(required, ", "))
			}
			table.Render()
			return nil
		},
	}
	cmd.Flags().StringVar(&mode, "mode", string(model.ModeBibTeX), "Dialect: bibtex or biblatex")
	return cmd
}
