// Package main is the settings inspector for phylab.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/dshills/phylab/internal/config"
	"github.com/dshills/phylab/internal/logging"
	"github.com/dshills/phylab/internal/settings"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

type options struct {
	UserDir     string
	DefaultsDir string
	LogLevel    string
}

func main() {
	os.Exit(run())
}

func run() int {
	opts, args := parseFlags()

	logging.Init(logging.Config{
		Level:  logging.ParseLevel(opts.LogLevel),
		Pretty: true,
	})

	var managerOpts []settings.Option
	if opts.UserDir != "" {
		managerOpts = append(managerOpts, settings.WithUserDir(opts.UserDir))
	}
	if opts.DefaultsDir != "" {
		managerOpts = append(managerOpts, settings.WithDefaultsDir(opts.DefaultsDir))
	}

	manager, err := settings.NewManager(managerOpts...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize settings: %v\n", err)
		return 1
	}

	master, err := config.LoadMaster(manager.UserDir())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to load master config: %v\n", err)
		return 1
	}

	if len(args) > 0 {
		manager.OnOpen(args[0])
	}

	printReport(manager, master)
	return 0
}

func printReport(manager *settings.Manager, master *config.Config) {
	fmt.Printf("user dir:          %s\n", manager.UserDir())
	fmt.Printf("user settings:     %s\n", manager.UserSettingsPath())
	fmt.Printf("internal settings: %s\n", manager.InternalSettingsPath())

	if manager.ExpPath() != "" {
		fmt.Printf("experiment:        %s\n", manager.ExpPath())
		fmt.Printf("exp settings dir:  %s\n", manager.ExpSettingsDir())
		fmt.Printf("exp settings:      %s\n", manager.ExpSettingsPath())
	}

	keys := manager.Keys()
	if len(keys) > 0 {
		fmt.Println("\nresolved settings:")
		for _, key := range keys {
			val := manager.GetDefault(key, nil)
			data, err := json.Marshal(val)
			if err != nil {
				fmt.Printf("  %s = %v\n", key, val)
				continue
			}
			fmt.Printf("  %s = %s\n", key, data)
		}
	}

	if sections := master.Sections(); len(sections) > 0 {
		fmt.Println("\nmaster config:")
		for _, name := range sections {
			fmt.Printf("  %s:\n", name)
			for attr, val := range master.Section(name) {
				fmt.Printf("    %s = %v\n", attr, val)
			}
		}
	}
}

func parseFlags() (options, []string) {
	var opts options
	var showVersion bool

	flag.StringVar(&opts.UserDir, "user-dir", "", "Root directory for user settings (default ~/.phy)")
	flag.StringVar(&opts.DefaultsDir, "defaults", "", "Package tree to scan for default settings")
	flag.StringVar(&opts.LogLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "phylab - settings inspector\n\n")
		fmt.Fprintf(os.Stderr, "Usage: phylab [options] [dataset]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  phylab                          Show user-level settings\n")
		fmt.Fprintf(os.Stderr, "  phylab data/myexperiment.dat    Show settings for a dataset\n")
	}

	flag.Parse()

	if showVersion {
		fmt.Printf("phylab %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		os.Exit(0)
	}

	return opts, flag.Args()
}
