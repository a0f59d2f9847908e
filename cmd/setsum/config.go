package main

import (
	"os"

	"github.com/jessevdk/go-flags"
	"github.com/kaspanet/setsum/infrastructure/config"
	"github.com/pkg/errors"
)

const appName = "setsum"

const (
	sumSubCmd              = "sum"
	mergeSubCmd            = "merge"
	unmergeSubCmd          = "unmerge"
	equalSubCmd            = "equal"
	verifyCompactionSubCmd = "verify-compaction"
	applySubCmd            = "apply"
)

type configFlags struct {
	Profile string `long:"profile" description:"Enable HTTP profiling on given port -- NOTE port must be between 1024 and 65535"`
	config.LogFlags
}

type sumConfig struct {
	Files   bool `long:"files" short:"f" description:"Treat every input file as a single element instead of every line"`
	Workers int  `long:"workers" short:"w" description:"Number of goroutines used to sum line elements" default:"1"`
	Args    struct {
		Paths []string `positional-arg-name:"FILE" description:"Input files, stdin when omitted or -"`
	} `positional-args:"yes"`
}

type mergeConfig struct {
	Args struct {
		Digests []string `positional-arg-name:"DIGEST"`
	} `positional-args:"yes"`
}

type unmergeConfig struct {
	Args struct {
		Base    string   `positional-arg-name:"BASE" required:"yes"`
		Digests []string `positional-arg-name:"DIGEST"`
	} `positional-args:"yes"`
}

type equalConfig struct {
	Args struct {
		First  string `positional-arg-name:"A" required:"yes"`
		Second string `positional-arg-name:"B" required:"yes"`
	} `positional-args:"yes"`
}

type verifyCompactionConfig struct {
	Inputs  string `long:"inputs" description:"Digest of the compaction's inputs" required:"true"`
	Outputs string `long:"outputs" description:"Digest of the compaction's outputs" required:"true"`
	Garbage string `long:"garbage" description:"Digest of the data the compaction dropped (default: the empty setsum)"`
}

type applyConfig struct {
	Checkpoint string `long:"checkpoint" short:"c" description:"Digest to resume from (default: the empty setsum)"`
	PreImages  string `long:"pre" description:"File with one pre-image per line"`
	PostImages string `long:"post" description:"File with one post-image per line"`
}

func parseCommandLine() (subCommand string, subCommandConfig interface{}, cfg *configFlags) {
	subCommand, subCommandConfig, cfg, err := parseArgs(os.Args[1:])
	if err != nil {
		var flagsErr *flags.Error
		if ok := errors.As(err, &flagsErr); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}
	return subCommand, subCommandConfig, cfg
}

func parseArgs(args []string) (subCommand string, subCommandConfig interface{}, cfg *configFlags, err error) {
	cfg = &configFlags{}
	parser := flags.NewParser(cfg, flags.PrintErrors|flags.HelpFlag)

	sumConf := &sumConfig{}
	parser.AddCommand(sumSubCmd, "Prints the setsum of the given input",
		"Prints the setsum of the given files or of stdin. Every line, without its newline, is an element, "+
			"unless --files is given", sumConf)

	mergeConf := &mergeConfig{}
	parser.AddCommand(mergeSubCmd, "Merges setsum digests",
		"Prints the setsum of the union of the multisets behind the given digests", mergeConf)

	unmergeConf := &unmergeConfig{}
	parser.AddCommand(unmergeSubCmd, "Subtracts setsum digests from a base digest",
		"Prints the setsum of BASE with the multisets behind the given digests removed", unmergeConf)

	equalConf := &equalConfig{}
	parser.AddCommand(equalSubCmd, "Compares two setsum digests",
		"Prints 'equal' if both digests are equal, and fails otherwise", equalConf)

	verifyCompactionConf := &verifyCompactionConfig{}
	parser.AddCommand(verifyCompactionSubCmd, "Verifies a compaction",
		"Checks that the inputs digest equals the merged outputs and garbage digests", verifyCompactionConf)

	applyConf := &applyConfig{}
	parser.AddCommand(applySubCmd, "Applies a transaction to a checkpoint",
		"Removes the pre-images from and inserts the post-images into the checkpoint, "+
			"and prints the new checkpoint", applyConf)

	_, err = parser.ParseArgs(args)
	if err != nil {
		return "", nil, nil, err
	}

	switch parser.Command.Active.Name {
	case sumSubCmd:
		subCommandConfig = sumConf
	case mergeSubCmd:
		subCommandConfig = mergeConf
	case unmergeSubCmd:
		subCommandConfig = unmergeConf
	case equalSubCmd:
		subCommandConfig = equalConf
	case verifyCompactionSubCmd:
		subCommandConfig = verifyCompactionConf
	case applySubCmd:
		subCommandConfig = applyConf
	}

	return parser.Command.Active.Name, subCommandConfig, cfg, nil
}
