// Package main provides the repdec CLI entrypoint.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"repdec/internal/render"
)

var (
	version = "0.1.0"
	pretty  = true
	asJSON  = false
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "repdec",
		Short: "RTS replay decoder and analyzer",
		Long: `repdec decodes proprietary RTS replay files: container header,
player roster, the frame-synchronized command stream, and per-player
analytics (APM, build order, supply, strategy).

Use 'repdec decode <file>' for a single replay,
'repdec batch <glob>' for many, 'repdec serve' for the HTTP API.`,
	}

	rootCmd.PersistentFlags().BoolVar(&pretty, "pretty", true, "Pretty print output")
	rootCmd.PersistentFlags().BoolVar(&asJSON, "json", false, "Output as JSON")

	rootCmd.AddCommand(
		decodeCmd(),
		batchCmd(),
		serveCmd(),
		historyCmd(),
		versionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		render.Stderr().Println("error: %v", err)
		os.Exit(1)
	}
}

// newRenderer honors --pretty but never colors a pipe.
func newRenderer() *render.Renderer {
	if !pretty {
		return render.New(false)
	}
	return render.Auto()
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the repdec version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("repdec %s\n", version)
		},
	}
}
