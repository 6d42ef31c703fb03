package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/phobologic/hlgen/internal/config"
)

// newInitCmd implements `hlgen init`, which writes (or completes) an
// hlgen.yaml with every setting spelled out.
func newInitCmd(stdout, stderr io.Writer) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "init [path-to-hlgen.yaml]",
		Short: "Write a default hlgen.yaml",
		Long: `Write an hlgen.yaml holding the default markers, ignore patterns, output
and logging settings. If the file already exists its values are kept and
only missing settings are filled in.

path-to-hlgen.yaml defaults to ./hlgen.yaml.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := config.FileName
			if len(args) > 0 {
				path = args[0]
			}
			return runInit(path, dryRun, stdout, stderr)
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "print what would be written without modifying the file")
	return cmd
}

func runInit(path string, dryRun bool, stdout, stderr io.Writer) error {
	_, statErr := os.Stat(path)
	existed := statErr == nil

	cfg, err := config.Load(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	if dryRun {
		data, err := cfg.Marshal()
		if err != nil {
			return err
		}
		_, _ = stdout.Write(data)
		return nil
	}

	if err := cfg.Save(path); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}

	verb := "created"
	if existed {
		verb = "updated"
	}
	_, _ = fmt.Fprintf(stderr, "%s %s\n", verb, path)
	return nil
}
