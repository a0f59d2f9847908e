package main

import (
	"fmt"
	"io"

	"github.com/kaspanet/setsum/domain/setsum"
	"github.com/pkg/errors"
)

func parseDigests(digests []string) ([]*setsum.Setsum, error) {
	setsums := make([]*setsum.Setsum, len(digests))
	for i, digest := range digests {
		parsed, err := setsum.FromString(digest)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid digest #%d", i+1)
		}
		setsums[i] = parsed
	}
	return setsums, nil
}

func merge(conf *mergeConfig, stdout io.Writer) error {
	setsums, err := parseDigests(conf.Args.Digests)
	if err != nil {
		return err
	}
	fmt.Fprintln(stdout, setsum.Merge(setsums...))
	return nil
}

func unmerge(conf *unmergeConfig, stdout io.Writer) error {
	base, err := setsum.FromString(conf.Args.Base)
	if err != nil {
		return errors.Wrap(err, "invalid base digest")
	}
	setsums, err := parseDigests(conf.Args.Digests)
	if err != nil {
		return err
	}
	fmt.Fprintln(stdout, setsum.Unmerge(base, setsum.Merge(setsums...)))
	return nil
}

func equal(conf *equalConfig, stdout io.Writer) error {
	setsums, err := parseDigests([]string{conf.Args.First, conf.Args.Second})
	if err != nil {
		return err
	}
	if !setsums[0].Equal(setsums[1]) {
		return errors.Errorf("digests differ: %s != %s", setsums[0], setsums[1])
	}
	fmt.Fprintln(stdout, "equal")
	return nil
}
