// Package main is the entry point for the Pomatime timer.
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/pomatime/pomatime/internal/config"
	"github.com/pomatime/pomatime/internal/config/notify"
	"github.com/pomatime/pomatime/internal/logging"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	opts := parseFlags()

	logger := logging.New(logging.Config{
		Level:  logging.ParseLevel(opts.logLevel),
		Output: os.Stderr,
		Prefix: "pomatime",
	})

	policy := config.PolicyMigrate
	if opts.forceReset {
		policy = config.PolicyForceReset
	}

	serviceOpts := []config.ServiceOption{
		config.WithLogger(logger),
		config.WithResetPolicy(policy),
	}
	if opts.configPath != "" {
		serviceOpts = append(serviceOpts, config.WithPath(opts.configPath))
	}

	svc, err := config.NewService(serviceOpts...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize configuration: %v\n", err)
		return 1
	}
	defer svc.Stop()

	if opts.check {
		fmt.Printf("configuration at %s is valid\n", svc.Path())
		return 0
	}

	if svc.TakeUIReset() {
		logger.Warn("configuration was reset to factory defaults")
	}

	sub := svc.Notifier().Subscribe(func(c notify.Change) {
		logger.Debug("config change: area=%s source=%s", c.Area, c.Source)
	})
	defer sub.Unsubscribe()

	if err := svc.Start(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to start file watcher: %v\n", err)
		return 1
	}

	logger.Info("watching %s, press Ctrl-C to exit", svc.Path())

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	<-signals

	return 0
}

type options struct {
	configPath string
	logLevel   string
	forceReset bool
	check      bool
}

func parseFlags() options {
	var opts options
	var showVersion bool
	var showHelp bool

	flag.StringVar(&opts.configPath, "config", "", "Path to configuration file")
	flag.StringVar(&opts.configPath, "c", "", "Path to configuration file (shorthand)")
	flag.StringVar(&opts.logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	flag.BoolVar(&opts.forceReset, "reset", false, "Discard settings on version mismatch instead of migrating")
	flag.BoolVar(&opts.check, "check", false, "Validate the configuration file and exit")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")
	flag.BoolVar(&showHelp, "help", false, "Show help message")
	flag.BoolVar(&showHelp, "h", false, "Show help message (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Pomatime - desktop Pomodoro timer\n\n")
		fmt.Fprintf(os.Stderr, "Usage: pomatime [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  pomatime                    Run with the default config location\n")
		fmt.Fprintf(os.Stderr, "  pomatime -c ./config.ini    Use a specific config file\n")
		fmt.Fprintf(os.Stderr, "  pomatime -check             Validate the config file and exit\n")
	}

	flag.Parse()

	if showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if showVersion {
		fmt.Printf("Pomatime %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		os.Exit(0)
	}

	switch opts.logLevel {
	case "debug", "info", "warn", "error":
		// Valid
	default:
		fmt.Fprintf(os.Stderr, "Error: invalid log level %q (must be debug, info, warn, or error)\n", opts.logLevel)
		os.Exit(1)
	}

	return opts
}
