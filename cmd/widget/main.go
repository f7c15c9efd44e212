package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"uptimebar/internal/config"
	"uptimebar/internal/logger"
	"uptimebar/internal/widget"
)

func main() {
	var (
		configPath = flag.String("config", "widget.yaml", "path to the widget config file")
		initConfig = flag.Bool("init", false, "write a starter config file and exit")
		serverURL  = flag.String("server", "", "server base URL (overrides the config file)")
		token      = flag.String("token", "", "API token (overrides the config file)")
		once       = flag.Bool("once", false, "fetch a single payload, print it as JSON and exit")
		logLevel   = flag.String("log-level", "warn", "log level (debug, info, warn, error)")
	)
	flag.Parse()

	log := logger.New(&config.Config{LogLevel: *logLevel, LogFormat: "text"})

	if *initConfig {
		if err := widget.WriteDefaultConfig(*configPath); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		fmt.Printf("wrote %s, fill in the api_token before starting the widget\n", *configPath)
		return
	}

	cfg, err := widget.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if *serverURL != "" {
		cfg.ServerURL = *serverURL
	}
	if *token != "" {
		cfg.APIToken = *token
	}

	client := widget.NewClient(cfg, log)

	if *once {
		if err := printOnce(client); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	controller := widget.NewController(
		client,
		widget.NewConsoleDisplay(os.Stdout),
		time.Duration(cfg.PollIntervalSeconds)*time.Second,
		log,
	)

	if err := controller.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// printOnce does a single read and dumps the raw payload, for checking a
// deployment from the shell.
func printOnce(fetch widget.Fetcher) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	resp, err := fetch.Fetch(ctx)
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(resp, "", "  ")
	if err != nil {
		return err
	}

	fmt.Println(string(data))
	return nil
}
