package main

import (
	"fmt"
	"os"

	"github.com/globaltoken/globaltoken-core-wallet/infrastructure/logger"
	"github.com/globaltoken/globaltoken-core-wallet/util/panics"
	"github.com/globaltoken/globaltoken-core-wallet/version"
	"golang.org/x/term"
)

// Exit codes
const (
	exitValid   = 0
	exitInvalid = 1
	exitFailure = 2
)

func main() {
	os.Exit(run())
}

func run() int {
	defer panics.HandlePanic(log, nil)

	cfg, err := parseConfig(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing command-line arguments: %s\n", err)
		return exitFailure
	}

	err = initLog(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing the logger: %s\n", err)
		return exitFailure
	}
	defer logger.BackendLog.Close()

	log.Debugf("Version %s", version.Version())

	if cfg.BlockHex == "" && term.IsTerminal(int(os.Stdin.Fd())) {
		log.Errorf("No block given: use --block or pipe its hex to stdin")
		return exitFailure
	}

	blockHex, err := readBlockHex(cfg.BlockHex, os.Stdin)
	if err != nil {
		log.Errorf("%s", err)
		return exitFailure
	}

	blockHash, valid, err := checkBlock(blockHex, cfg.NetParams())
	if err != nil {
		log.Errorf("Couldn't decode the block: %s", err)
		fmt.Println("invalid")
		return exitInvalid
	}

	if !valid {
		fmt.Println("invalid", blockHash)
		return exitInvalid
	}
	fmt.Println("valid", blockHash)
	return exitValid
}
