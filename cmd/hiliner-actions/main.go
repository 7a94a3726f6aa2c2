// Package main is the hiliner action configuration tool.
//
// It resolves the same layered configuration the viewer uses and exposes
// it for inspection: lint validates every source and prints all problems
// found, list prints the resolved actions with their effective keys, and
// init scaffolds a starter project config.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/hiliner/hiliner/internal/action"
	"github.com/hiliner/hiliner/internal/config"
)

// Version information (set via ldflags during build).
var version = "dev"

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("hiliner-actions", flag.ContinueOnError)
	workDir := fs.String("workdir", "", "working directory (default: current directory)")
	configPath := fs.String("config", "", "explicit config file (missing file is an error)")
	strict := fs.Bool("strict", false, "abort a file when any one action in it is invalid")
	showVersion := fs.Bool("version", false, "print version and exit")
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: hiliner-actions [flags] <lint|list|init>\n\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return 2
	}
	if *showVersion {
		fmt.Println("hiliner-actions", version)
		return 0
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return 2
	}

	if *workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: cannot determine working directory: %v\n", err)
			return 1
		}
		*workDir = wd
	}

	opts := config.Options{
		WorkDir:    *workDir,
		ConfigPath: *configPath,
		Strict:     *strict,
	}

	switch fs.Arg(0) {
	case "lint":
		return lint(opts)
	case "list":
		return list(opts)
	case "init":
		return initConfig(*workDir)
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown command %q\n", fs.Arg(0))
		fs.Usage()
		return 2
	}
}

func lint(opts config.Options) int {
	build, err := config.BuildRegistry(opts)
	if err != nil {
		var agg *action.BuildError
		if errors.As(err, &agg) {
			fmt.Fprintf(os.Stderr, "%d problems found:\n", len(agg.Errors))
			for _, problem := range agg.Errors {
				fmt.Fprintf(os.Stderr, "  - %v\n", problem)
			}
		} else {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		return 1
	}

	for _, w := range build.Warnings {
		fmt.Fprintf(os.Stderr, "warning: %s\n", w)
	}
	for _, c := range build.Conflicts {
		fmt.Printf("%s: %s (%s)\n", c.Type, c.Key, c.Resolution)
	}
	fmt.Printf("ok: %d actions, %d key bindings\n",
		len(build.Registry.AllActions()), len(build.Registry.KeyBindings()))
	return 0
}

func list(opts config.Options) int {
	build, err := config.BuildRegistry(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	bindings := build.Registry.KeyBindings()
	keysByID := make(map[string][]string)
	for key, id := range bindings {
		keysByID[id] = append(keysByID[id], key)
	}
	for _, keys := range keysByID {
		sort.Strings(keys)
	}

	for _, def := range build.Registry.AllActions() {
		origin := "custom"
		if def.Builtin {
			origin = "builtin"
		}
		fmt.Printf("%-20s %-24v %-8s %s\n", def.ID, keysByID[def.ID], origin, def.Description)
	}
	return 0
}

func initConfig(workDir string) int {
	path := filepath.Join(workDir, config.ConfigDirName, config.ConfigFileName)
	if err := config.WriteStarterConfig(path, filepath.Base(workDir)); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	fmt.Printf("wrote %s\n", path)
	return 0
}
