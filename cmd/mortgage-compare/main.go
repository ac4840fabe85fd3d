package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/iwvelando/mortgage-compare/internal/config"
	"github.com/iwvelando/mortgage-compare/internal/server"
	"github.com/iwvelando/mortgage-compare/pkg/constants"
	"github.com/iwvelando/mortgage-compare/pkg/csvinput"
	"github.com/iwvelando/mortgage-compare/pkg/mortgage"
	"github.com/iwvelando/mortgage-compare/pkg/output"
	"github.com/iwvelando/mortgage-compare/pkg/validation"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// version is stamped at build time.
var version = "dev"

// initializeLogger creates a zap logger based on configuration and CLI override
func initializeLogger(loggingConfig config.LoggingConfig, logLevelOverride string) (*zap.Logger, error) {
	// Determine log level (CLI override takes precedence)
	level := loggingConfig.Level
	if logLevelOverride != "" {
		level = logLevelOverride
	}
	if level == "" {
		level = "info" // Default to info level
	}

	// Parse log level
	var zapLevel zapcore.Level
	switch level {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "info":
		zapLevel = zapcore.InfoLevel
	case "warn", "warning":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		return nil, fmt.Errorf("invalid log level: %s", level)
	}

	// Determine output format
	format := loggingConfig.Format
	if format == "" {
		format = "json" // Default to JSON for production
	}

	// Configure encoder
	var zapConfig zap.Config
	switch format {
	case "console":
		zapConfig = zap.NewDevelopmentConfig()
		zapConfig.Level = zap.NewAtomicLevelAt(zapLevel)
	case "json":
		zapConfig = zap.NewProductionConfig()
		zapConfig.Level = zap.NewAtomicLevelAt(zapLevel)
	default:
		return nil, fmt.Errorf("invalid log format: %s", format)
	}

	// Configure output file if specified
	if loggingConfig.OutputFile != "" {
		// Ensure the directory exists
		if dir := filepath.Dir(loggingConfig.OutputFile); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, fmt.Errorf("failed to create log directory %s: %v", dir, err)
			}
		}

		// Test if we can create/write to the file
		if file, err := os.OpenFile(loggingConfig.OutputFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644); err != nil {
			return nil, fmt.Errorf("failed to open log file %s: %v", loggingConfig.OutputFile, err)
		} else {
			_ = file.Close()
		}

		zapConfig.OutputPaths = []string{loggingConfig.OutputFile}
		zapConfig.ErrorOutputPaths = []string{loggingConfig.OutputFile}
	}

	return zapConfig.Build()
}

func main() {
	configLocation := flag.String("config", constants.DefaultConfigFile, "path to configuration file")
	inputLocation := flag.String("input", "", "path to a CSV file of loan scenarios to compare")
	outputFormatFlag := flag.String("output-format", "", "type of output override: pretty, csv")
	logLevel := flag.String("log-level", "", "log level override (debug, info, warn, error)")
	amortizationLabel := flag.String("amortization", "", "print the amortization schedule for the scenario with this label")
	serve := flag.Bool("serve", false, "run the HTTP API server instead of the CLI")
	serverConfigLocation := flag.String("server-config", constants.DefaultServerConfigFile, "path to server configuration file")
	flag.Parse()

	if *serve {
		runServer(*serverConfigLocation, *logLevel)
		return
	}

	// Load the config file; it is optional when a CSV input supplies the
	// scenarios.
	conf, err := config.LoadConfiguration(*configLocation)
	configLoaded := err == nil
	if err != nil {
		if *inputLocation == "" {
			fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load configuration at %s\", \"error\": \"%v\"}\n", *configLocation, err)
			return
		}
		conf = &config.Configuration{}
	}

	// Initialize logging based on config and CLI override
	logger, err := initializeLogger(conf.Logging, *logLevel)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to initialize logger\", \"error\": \"%v\"}\n", err)
		return
	}
	defer func() {
		_ = logger.Sync()
	}()

	// Determine output format (CLI override takes precedence over config)
	outputFormat := conf.Output.Format
	if *outputFormatFlag != "" {
		outputFormat = *outputFormatFlag
	}
	if outputFormat == "" {
		outputFormat = constants.OutputFormatPretty // Default to pretty format
	}

	err = validation.ValidateOutputFormat(outputFormat)
	if err != nil {
		logger.Fatal(err.Error(),
			zap.String("op", "main"),
		)
	}

	// Validate configuration and display any warnings
	if configLoaded {
		warnings := conf.ValidateConfiguration()
		for _, warning := range warnings {
			logger.Warn("Configuration warning: "+warning,
				zap.String("op", "main"),
			)
		}
	}

	// Assemble the scenarios: config loans first, then CSV rows.
	paramSets := conf.Parameters()
	if *inputLocation != "" {
		csvParams, err := csvinput.ParseFile(*inputLocation)
		if err != nil {
			logger.Fatal("failed to parse comparison input",
				zap.String("op", "main"),
				zap.Error(err),
			)
		}
		paramSets = append(paramSets, csvParams...)
	}
	if len(paramSets) == 0 {
		logger.Fatal("no loan scenarios defined; add loans to the config file or pass -input",
			zap.String("op", "main"),
		)
	}

	// Build every scenario and its summary metrics.
	comparison, err := mortgage.Compare(logger, paramSets)
	if err != nil {
		logger.Fatal("failed to compare loan scenarios",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}
	for _, warning := range comparison.Warnings() {
		logger.Warn("Loan warning: "+warning,
			zap.String("op", "main"),
		)
	}

	// A requested amortization table replaces the summary output.
	if *amortizationLabel != "" {
		loan := comparison.Find(*amortizationLabel)
		if loan == nil {
			logger.Fatal(fmt.Sprintf("no scenario with label %q", *amortizationLabel),
				zap.String("op", "main"),
			)
		}
		switch outputFormat {
		case constants.OutputFormatPretty:
			output.PrettySchedule(loan.Label, loan.Schedule)
		case constants.OutputFormatCSV:
			fmt.Print(output.ScheduleCsvString(loan.Schedule))
		}
		return
	}

	// Handle output.
	switch outputFormat {
	case constants.OutputFormatPretty:
		output.PrettyFormat(comparison)
	case constants.OutputFormatCSV:
		output.CsvFormat(comparison)
	}
}

func runServer(serverConfigLocation, logLevelOverride string) {
	srvConfig, err := server.LoadConfig(serverConfigLocation)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load server configuration at %s\", \"error\": \"%v\"}\n", serverConfigLocation, err)
		return
	}

	logger, err := initializeLogger(srvConfig.Logging, logLevelOverride)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to initialize logger\", \"error\": \"%v\"}\n", err)
		return
	}
	defer func() {
		_ = logger.Sync()
	}()

	handler := server.NewHandler(logger, srvConfig.UploadSizeBytes(), version)

	logger.Info("starting HTTP server",
		zap.String("op", "main"),
		zap.String("address", srvConfig.Address),
		zap.String("version", version),
	)

	if err := http.ListenAndServe(srvConfig.Address, handler); err != nil {
		logger.Fatal("server exited",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}
}
