// Command idlewatch watches a machine for unattended resource-intensive
// activity and sends a single SNS notification when it finds one.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"syscall"

	"go.uber.org/zap"

	"idlewatch/internal/clock"
	"idlewatch/internal/config"
	"idlewatch/internal/configdir"
	"idlewatch/internal/logging"
	"idlewatch/internal/monitor"
	"idlewatch/internal/notify"
	"idlewatch/internal/presence"
	"idlewatch/internal/resource"
	"idlewatch/internal/secrets"
)

const version = "1.0.0"

type cliArgs struct {
	debug   bool
	help    bool
	version bool
}

func main() {
	os.Exit(run(parseArgs(os.Args[1:])))
}

func run(args cliArgs) int {
	if args.help {
		printUsage()
		return 0
	}
	if args.version {
		fmt.Printf("idlewatch version %s (%s)\n", version, runtime.Version())
		return 0
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "idlewatch: %v\n", err)
		return 1
	}
	if args.debug {
		cfg = cfg.WithDebugOverrides()
	}

	logger, flush, err := logging.New(logging.Options{
		Level:   cfg.Logging.Level,
		File:    cfg.Logging.File,
		Console: cfg.Debug,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "idlewatch: %v\n", err)
		return 1
	}
	defer flush()

	if cfg.Debug {
		logger.Info("***** debugging mode *****")
	}
	logger.Info("initial setup complete")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	notifier, err := buildNotifier(cfg, logger)
	if err != nil {
		logger.Error("notifier configuration invalid", zap.Error(err))
		fmt.Fprintf(os.Stderr, "idlewatch: %v\n", err)
		return 1
	}

	clk := clock.New()
	sampler := resource.NewSystemSampler(logger)
	defer sampler.Close()

	probe := presence.NewProbe(presence.NewReader(), clk, cfg.Presence, logger)
	checker := monitor.NewChecker(sampler, clk, cfg.Resource, logger)
	mon := monitor.New(probe, checker, notifier, clk, cfg.Monitor, logger)

	result, err := mon.Run(ctx)
	if err != nil {
		return 1
	}

	logger.Info("closing program", zap.String("reason", string(result.Reason)))
	return 0
}

// buildNotifier wires the dry-run notifier in debug mode, or resolves
// credentials (environment first, encrypted store fallback) and builds the
// SNS publisher. Credential resolution fails fast here, at startup.
func buildNotifier(cfg config.Config, logger *zap.Logger) (monitor.Notifier, error) {
	if cfg.Debug {
		return notify.NewDryRun(cfg.Resource, logger), nil
	}

	store, err := secrets.Open(filepath.Join(configdir.StateDir(), "secrets"))
	if err != nil {
		logger.Warn("credential store unavailable", zap.Error(err))
		store = nil
	}

	creds, err := notify.LoadCredentials(store)
	if err != nil {
		return nil, err
	}

	return notify.NewSNSPublisher(creds, cfg.Resource, logger), nil
}

// parseArgs scans the argument list by hand: unrecognized arguments are
// ignored rather than rejected.
func parseArgs(args []string) cliArgs {
	parsed := cliArgs{}
	for _, arg := range args {
		switch arg {
		case "-d", "--debug":
			parsed.debug = true
		case "-h", "--help":
			parsed.help = true
		case "-v", "--version":
			parsed.version = true
		}
	}
	return parsed
}

func printUsage() {
	fmt.Println("idlewatch - notifies you when your unattended machine is doing heavy work")
	fmt.Println("Accepted command line arguments:")
	fmt.Println(`  -d, --debug    enter debugging mode (short timings, no outbound publish)`)
	fmt.Println(`  -h, --help     display this help text`)
	fmt.Println(`  -v, --version  display version information`)
}
