package main

import (
	"fmt"
	"io"

	"github.com/kaspanet/setsum/domain/compaction"
	"github.com/kaspanet/setsum/domain/setsum"
)

func verifyCompaction(conf *verifyCompactionConfig, stdout io.Writer) error {
	garbage := conf.Garbage
	if garbage == "" {
		garbage = setsum.New().String()
	}

	err := compaction.VerifyDigests(conf.Inputs, conf.Outputs, garbage)
	if err != nil {
		return err
	}
	log.Infof("Compaction verified")
	fmt.Fprintln(stdout, "ok")
	return nil
}
