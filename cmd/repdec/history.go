// Package main history command.
package main

import (
	"context"
	"encoding/json"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"repdec/internal/config"
	"repdec/internal/render"
	"repdec/internal/store"
)

func historyCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List saved decodes",
		Long:  "List entries from the decode history database, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := store.Open(config.Get().DBPath)
			if err != nil {
				return err
			}
			defer h.Close()

			entries, err := h.List(context.Background(), limit)
			if err != nil {
				return err
			}

			if asJSON {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(entries)
			}

			w := render.Stdout()
			if len(entries) == 0 {
				w.Empty("No decodes recorded")
				return nil
			}

			w.Header("decode history (%d)", len(entries))
			for _, e := range entries {
				w.Println("%s %s  %s", render.ReliabilityIcon(e.Reliability),
					e.CreatedAt.Local().Format("2006-01-02 15:04:05"), e.File)
				w.Item("id=%s map=%q players=%s commands=%d",
					e.ID, e.MapName, strings.Join(e.Players, ", "), e.Commands)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum entries to list")
	return cmd
}
