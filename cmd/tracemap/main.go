package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/theoremus-urban-solutions/tracemap"
	"github.com/theoremus-urban-solutions/tracemap/config"
	"github.com/theoremus-urban-solutions/tracemap/internal"
	"github.com/theoremus-urban-solutions/tracemap/metrics"
	"github.com/theoremus-urban-solutions/tracemap/session"
)

var (
	configPath string
	port       int
	logLevel   string
	logPath    string
)

func main() {
	pflag.StringVar(&configPath, "config", "", "Path to the configuration file. Defaults to config.yml, then ./config/config.yml")
	pflag.IntVar(&port, "port", 0, "Port to listen on. Overrides server.port")
	pflag.StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error). Overrides logging.level")
	pflag.StringVar(&logPath, "log-path", "", "Name of a file to send logs to. Logs always go to stdout as well. Overrides logging.path")
	pflag.Parse()

	if err := loadConfig(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	applyFlags(&config.Config)

	logger, err := internal.NewLogger(config.Config.Logging.Level, config.Config.Logging.Path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.Register(reg)

	ds, err := tracemap.LoadDataset(context.Background(), config.Config, logger, m)
	if err != nil {
		logger.Fatal("failed to load traces", zap.Error(err))
	}
	if len(ds.Traces) == 0 {
		logger.Warn("no traces loaded; serving an empty map")
	}

	store := session.NewStore(ds, tracemap.SessionOptions(config.Config, logger, m))
	ctx, stopSweep := context.WithCancel(context.Background())
	go store.Run(ctx, time.Minute)

	srv := tracemap.NewServer(tracemap.Options{
		Port:     config.Config.Server.Port,
		Dataset:  ds,
		Sessions: store,
		Gatherer: reg,
		Logger:   logger,
	})
	srv.Start()
	tracemap.HandleGracefulShutdown(srv)
	stopSweep()
}

func loadConfig() error {
	if configPath != "" {
		return config.LoadAppConfigFrom(configPath)
	}
	return config.LoadAppConfig()
}

// applyFlags lets explicitly set flags win over the file.
func applyFlags(cfg *config.AppConfig) {
	if pflag.CommandLine.Changed("port") {
		cfg.Server.Port = port
	}
	if pflag.CommandLine.Changed("log-level") {
		cfg.Logging.Level = logLevel
	}
	if pflag.CommandLine.Changed("log-path") {
		cfg.Logging.Path = logPath
	}
}
