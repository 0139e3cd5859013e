package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/five82/clicker/internal/app"
)

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "", "override config path (optional)")
	replayPath := flag.String("replay", "", "apply a YAML action script and print the final state instead of starting the UI")
	autoSeconds := flag.Int("auto", 0, "dispatch a click every N seconds (optional)")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	opts := app.Options{ConfigPath: *configPath}
	if auto := *autoSeconds; auto > 0 {
		opts.AutoEvery = auto
	}

	var err error
	if *replayPath != "" {
		err = app.Replay(opts, *replayPath, os.Stdout)
	} else {
		err = app.Run(ctx, opts)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "clicker: %v\n", err)
		return 1
	}
	return 0
}
