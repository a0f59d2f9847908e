package main

import (
	"io"
	"os"

	"github.com/kaspanet/setsum/infrastructure/logger"
	"github.com/kaspanet/setsum/util/panics"
	"github.com/kaspanet/setsum/util/profiling"
	"github.com/pkg/errors"
)

func main() {
	subCmd, subCmdConfig, cfg := parseCommandLine()

	err := cfg.ResolveLogging(appName)
	if err != nil {
		printErrorAndExit(err)
	}

	if cfg.Profile != "" {
		_, err = profiling.Start(cfg.Profile, log)
		if err != nil {
			printErrorAndExit(err)
		}
	}

	err = runSubCommand(subCmd, subCmdConfig, os.Stdin, os.Stdout)
	if err != nil {
		printErrorAndExit(err)
	}
	logger.BackendLog.Close()
}

func runSubCommand(subCmd string, subCmdConfig interface{}, stdin io.Reader, stdout io.Writer) error {
	switch subCmd {
	case sumSubCmd:
		return sum(subCmdConfig.(*sumConfig), stdin, stdout)
	case mergeSubCmd:
		return merge(subCmdConfig.(*mergeConfig), stdout)
	case unmergeSubCmd:
		return unmerge(subCmdConfig.(*unmergeConfig), stdout)
	case equalSubCmd:
		return equal(subCmdConfig.(*equalConfig), stdout)
	case verifyCompactionSubCmd:
		return verifyCompaction(subCmdConfig.(*verifyCompactionConfig), stdout)
	case applySubCmd:
		return apply(subCmdConfig.(*applyConfig), stdout)
	default:
		return errors.Errorf("Unknown sub-command '%s'", subCmd)
	}
}

func printErrorAndExit(err error) {
	panics.Exit(log, err.Error())
}
