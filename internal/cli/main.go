// Package cli is the flag surface and bootstrap for the hookcut command.
package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/shortforge/hookcut/internal/domain/captions"
)

func Main() {
	_ = godotenv.Load() // best-effort: load .env if present

	root := &cobra.Command{
		Use:          "hookcut <video-or-url>",
		Short:        "Cut viral hook shorts with animated captions from a long video",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args[0])
		},
	}

	root.SetOut(os.Stdout)
	root.SetErr(os.Stderr)
	root.SilenceErrors = true

	// Visible flags
	root.Flags().IntP("hooks", "n", 3, "Number of hooks to generate")
	root.Flags().StringP("animation", "a", "pop",
		"Caption animation style ("+strings.Join(captions.StyleNames(), "|")+")")
	root.Flags().String("captions", "word", "Caption mode (word|sentence)")
	root.Flags().StringP("output-dir", "o", "", "Output directory")
	root.Flags().Bool("keep-temp", false, "Keep the temporary work directory")
	root.Flags().Bool("drop-short", false, "Drop hooks the transcript cannot stretch to the minimum duration")
	root.Flags().String("styles", "", "YAML file overriding animation tuning constants")
	root.Flags().Bool("json-logs", false, "Emit JSON logs instead of console output")

	// Hidden tuning flags (internal)
	root.Flags().Int("min", 0, "Min clip duration seconds")
	root.Flags().Int("max", 0, "Max clip duration seconds")
	_ = root.Flags().MarkHidden("min")
	_ = root.Flags().MarkHidden("max")

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
