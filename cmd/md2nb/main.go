package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/jwtly10/md2nb/internal/cli"
	"github.com/jwtly10/md2nb/internal/transformer"
)

func main() {
	var inPath string
	var outPath string
	var noBackup bool
	var debug bool
	flag.StringVar(&inPath, "in", "", "Input markdown file or directory")
	flag.StringVar(&outPath, "out", "", "Output notebook path (single file mode only; default: <input>.ipynb)")
	flag.BoolVar(&noBackup, "no-backup", false, "Overwrite an existing notebook without creating a backup")
	flag.BoolVar(&debug, "debug", false, "Enable debug logging")
	flag.Parse()

	if debug {
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	if inPath == "" {
		fmt.Println("Please provide an input file or directory with -in")
		os.Exit(1)
	}

	info, err := os.Stat(inPath)
	if err != nil {
		fmt.Printf("Error accessing input path: %v\n", err)
		os.Exit(1)
	}

	if info.IsDir() && outPath != "" {
		fmt.Println("-out cannot be combined with a directory input")
		os.Exit(1)
	}

	opts := transformer.TransformOptions{
		Output:   outPath,
		NoBackup: noBackup,
	}
	slog.Debug("starting conversion", "options", opts.Pretty())

	processor := cli.NewProcessor(opts)
	results, err := processor.ProcessPath(inPath)
	if err != nil {
		fmt.Printf("Error converting: %v\n", err)
		os.Exit(1)
	}

	for _, result := range results {
		fmt.Printf("Wrote %s to %s\n", result.Path, result.OutPath)
	}
}
