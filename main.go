package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"iot-simulator/config"
	"iot-simulator/console"
	"iot-simulator/controller"
	"iot-simulator/log"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run wires configuration, logging, the controller and the console, and
// returns the process exit code.
func run(args []string, stdin *os.File, stdout, stderr io.Writer) int {
	cmdArgs, err := config.ParseCommandLineArgs(args)
	if err != nil {
		return 2
	}

	configPath := ""
	if cmdArgs.ConfigSpecified {
		if cmdArgs.ConfigFile == "" {
			fmt.Fprintln(stderr, "config error: -config needs a file path")
			return 1
		}
		configPath = cmdArgs.ConfigFile
	}
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		fmt.Fprintf(stderr, "config error: %v\n", err)
		return 1
	}
	cfg.ApplyCommandLineArgs(cmdArgs)
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(stderr, "config error: %v\n", err)
		return 1
	}

	logger, err := log.NewLogger(cfg.Log.Filename, cfg.Log.Level, cfg.Debug)
	if err != nil {
		fmt.Fprintf(stderr, "log setup error: %v\n", err)
		return 1
	}
	log.SetLogger(logger)
	defer log.SetLogger(nil)

	stopRotation := watchLogRotation(logger, stderr)
	defer stopRotation()

	entries := cfg.Entries()
	ctrl, err := controller.New(entries, stdout)
	if err != nil {
		fmt.Fprintf(stderr, "controller error: %v\n", err)
		return 1
	}
	log.GetLogger().Info().Int("devices", len(entries)).Bool("debug", cfg.Debug).Msg("simulator started")

	reader := console.NewLineReader(stdin, stdout, entries)
	if err := console.New(ctrl, reader, stdout).Run(context.Background()); err != nil {
		log.GetLogger().Error().Err(err).Msg("console stopped with error")
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}
	return 0
}

// watchLogRotation reopens the log file of logger on SIGHUP until the returned
// stop function is called. stop waits for the watcher to exit.
func watchLogRotation(logger *log.Logger, stderr io.Writer) (stop func()) {
	rotateSignalCh := make(chan os.Signal, 1)
	signal.Notify(rotateSignalCh, syscall.SIGHUP)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for range rotateSignalCh {
			if err := logger.Rotate(); err != nil {
				fmt.Fprintf(stderr, "log rotation error: %v\n", err)
			}
		}
	}()

	return func() {
		signal.Stop(rotateSignalCh)
		close(rotateSignalCh)
		<-done
	}
}
