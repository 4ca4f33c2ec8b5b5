// Command deadlockscan is the thin CLI entry point: argument handling and
// top-level I/O error reporting. The analysis itself lives in package
// pipeline; nothing here parses a lock expression or walks a statement
// tree.
package main

import (
	"fmt"
	"os"

	"github.com/fsnotify/fsnotify"
	"github.com/urfave/cli/v2"

	"deadlockscan/logging"
	"deadlockscan/pipeline"
)

func main() {
	app := &cli.App{
		Name:      "deadlockscan",
		Usage:     "detect lock-order cycles across a set of source files",
		ArgsUsage: "<file> [file...]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "format",
				Value: "text",
				Usage: "output format: text or yaml",
			},
			&cli.BoolFlag{
				Name:  "watch",
				Usage: "re-run the analysis whenever a given file changes",
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "log unresolved monitor expressions to stderr",
			},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	if c.Bool("verbose") {
		logging.SetLevel(logging.Debug)
	}

	paths := c.Args().Slice()
	if len(paths) == 0 {
		return cli.Exit("Usage: deadlockscan [--format text|yaml] [--watch] <file> [file...]", 1)
	}

	format := c.String("format")
	if format != "text" && format != "yaml" {
		return cli.Exit(fmt.Sprintf("unknown --format %q: want text or yaml", format), 1)
	}

	result, err := analyze(paths, format)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	if !c.Bool("watch") {
		return nil
	}
	return watch(paths, format, result)
}

func analyze(paths []string, format string) (*pipeline.Result, error) {
	result, err := pipeline.Run(paths)
	if err != nil {
		return nil, fmt.Errorf("error reading file: %w", err)
	}

	switch format {
	case "yaml":
		out, err := pipeline.NewRunReportYAML(result)
		if err != nil {
			return nil, err
		}
		fmt.Print(out)
	default:
		result.WriteText(os.Stdout)
	}
	return result, nil
}

// watch re-invokes analyze synchronously every time one of paths changes,
// one invocation at a time — it never runs the pipeline concurrently with
// itself. It blocks until interrupted or a watch setup call fails.
func watch(paths []string, format string, previous *pipeline.Result) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("starting watcher: %w", err)
	}
	defer watcher.Close()

	for _, path := range paths {
		if err := watcher.Add(path); err != nil {
			return fmt.Errorf("watching %s: %w", path, err)
		}
	}

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			logging.Infof("%s changed, re-analyzing", event.Name)
			result, err := analyze(paths, format)
			if err != nil {
				logging.Errorf("%v", err)
				continue
			}
			if result.IntroducesNewCycle(previous) {
				logging.Warnf("new lock-order cycle introduced by this change")
			}
			previous = result
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logging.Errorf("watch error: %v", err)
		}
	}
}
