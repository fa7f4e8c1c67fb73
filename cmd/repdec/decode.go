// Package main decode command.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"repdec/internal/config"
	"repdec/internal/logging"
	"repdec/internal/replay"
	"repdec/internal/store"
)

func decodeCmd() *cobra.Command {
	var save bool

	cmd := &cobra.Command{
		Use:   "decode <replay>...",
		Short: "Decode replay files",
		Long:  "Decode one or more replay files and print the analysis",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			log := logging.New("decode")

			var history *store.History
			if save {
				var err error
				history, err = store.Open(config.Get().DBPath)
				if err != nil {
					return fmt.Errorf("open history: %w", err)
				}
				defer history.Close()
			}

			for _, file := range args {
				if err := decodeOne(file, history, log); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&save, "save", false, "Record the decode in the history database")
	return cmd
}

func decodeOne(file string, history *store.History, log *logging.Logger) error {
	buf, err := os.ReadFile(file)
	if err != nil {
		return err
	}

	start := time.Now()
	res, err := replay.Decode(buf)
	if err != nil {
		logging.DecodeEvent(log, file, "", 0, start, err)
		return fmt.Errorf("%s: %w", file, err)
	}
	logging.DecodeEvent(log, file, res.Stats.Reliability, res.Stats.CommandCount, start, nil)

	if history != nil {
		if err := history.Save(context.Background(), store.NewEntry(file, res)); err != nil {
			return fmt.Errorf("save history: %w", err)
		}
	}

	if asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	}
	fmt.Print(newRenderer().Result(file, len(buf), res))
	return nil
}
