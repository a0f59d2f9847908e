package main

import (
	"fmt"
	"io"
	"os"

	"github.com/kaspanet/setsum/domain/setsum"
	"github.com/pkg/errors"
)

func sum(conf *sumConfig, stdin io.Reader, stdout io.Writer) error {
	paths := conf.Args.Paths
	if len(paths) == 0 {
		paths = []string{stdinPath}
	}

	var result *setsum.Setsum
	var err error
	if conf.Files {
		result, err = sumFiles(paths, stdin)
	} else {
		result, err = sumLines(paths, stdin, conf.Workers)
	}
	if err != nil {
		return err
	}

	fmt.Fprintln(stdout, result)
	return nil
}

// sumFiles inserts every file as a single element.
func sumFiles(paths []string, stdin io.Reader) (*setsum.Setsum, error) {
	result := setsum.New()
	for _, path := range paths {
		err := withInput(path, stdin, func(r io.Reader) error {
			return result.InsertReader(r)
		})
		if err != nil {
			return nil, err
		}
	}
	log.Infof("Summed %d files", len(paths))
	return result, nil
}

// sumLines inserts every line of every file as an element.
func sumLines(paths []string, stdin io.Reader, workers int) (*setsum.Setsum, error) {
	var elements [][]byte
	for _, path := range paths {
		err := withInput(path, stdin, func(r io.Reader) error {
			lines, err := readLines(r)
			if err != nil {
				return err
			}
			elements = append(elements, lines...)
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	log.Infof("Summing %d lines from %d inputs", len(elements), len(paths))
	return setsum.SumParallel(elements, workers), nil
}

func withInput(path string, stdin io.Reader, f func(r io.Reader) error) error {
	if path == stdinPath {
		warnIfTerminal(stdin)
		return errors.Wrap(f(stdin), "failed reading stdin")
	}

	file, err := os.Open(path)
	if err != nil {
		return errors.Wrapf(err, "couldn't open %s", path)
	}
	defer file.Close()

	return errors.Wrapf(f(file), "failed reading %s", path)
}
