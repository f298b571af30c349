package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/btcsuite/btcutil"
	"github.com/globaltoken/globaltoken-core-wallet/infrastructure/config"
	"github.com/globaltoken/globaltoken-core-wallet/infrastructure/logger"
	"github.com/globaltoken/globaltoken-core-wallet/version"
	"github.com/jessevdk/go-flags"
	"github.com/pkg/errors"
)

const (
	defaultLogFilename    = "auxpowcheck.log"
	defaultErrLogFilename = "auxpowcheck_err.log"
	defaultLogLevel       = "info"
)

var defaultLogDir = filepath.Join(btcutil.AppDataDir("auxpowcheck", false), "logs")

type configFlags struct {
	ShowVersion bool   `short:"V" long:"version" description:"Display version information and exit"`
	BlockHex    string `short:"b" long:"block" description:"Hex of the serialized block header and proof. Read from stdin if omitted"`
	LogDir      string `long:"logdir" description:"Directory to log output"`
	NoLogFiles  bool   `long:"nologfiles" description:"Log to stdout only"`
	LogLevel    string `short:"d" long:"loglevel" description:"Logging level for all subsystems {trace, debug, info, warn, error, critical} -- You may also specify <subsystem>=<level>,<subsystem2>=<level>,... to set the log level for individual subsystems"`
	config.NetworkFlags
}

func parseConfig(args []string) (*configFlags, error) {
	cfg := &configFlags{
		LogDir:   defaultLogDir,
		LogLevel: defaultLogLevel,
	}
	parser := flags.NewParser(cfg, flags.PrintErrors|flags.HelpFlag)
	_, err := parser.ParseArgs(args)

	// Show the version and exit if the version flag was specified.
	if cfg.ShowVersion {
		appName := filepath.Base(os.Args[0])
		appName = strings.TrimSuffix(appName, filepath.Ext(appName))
		fmt.Println(appName, "version", version.Version())
		os.Exit(0)
	}

	if err != nil {
		return nil, err
	}

	err = cfg.ResolveNetwork(parser)
	if err != nil {
		return nil, err
	}

	if _, ok := logger.LevelFromString(cfg.LogLevel); !ok && !strings.Contains(cfg.LogLevel, "=") {
		return nil, errors.Errorf("the specified log level [%s] is invalid", cfg.LogLevel)
	}

	return cfg, nil
}

// initLog starts the log backend and applies cfg.LogLevel
func initLog(cfg *configFlags) error {
	if !cfg.NoLogFiles {
		logger.InitLog(filepath.Join(cfg.LogDir, defaultLogFilename), filepath.Join(cfg.LogDir, defaultErrLogFilename))
	} else {
		logger.InitLogStdout(logger.LevelTrace)
	}
	return logger.ParseAndSetLogLevels(cfg.LogLevel)
}
