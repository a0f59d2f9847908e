package main

import (
	"bufio"
	"bytes"
	"io"
	"os"

	"github.com/pkg/errors"
	"golang.org/x/term"
)

const stdinPath = "-"

// readLines returns every line of r, without its newline, as an element. A
// final line without a newline is an element too. Empty lines are empty
// elements.
func readLines(r io.Reader) ([][]byte, error) {
	var lines [][]byte
	reader := bufio.NewReader(r)
	for {
		line, err := reader.ReadBytes('\n')
		if len(line) > 0 {
			lines = append(lines, bytes.TrimSuffix(line, []byte{'\n'}))
		}
		if errors.Is(err, io.EOF) {
			return lines, nil
		}
		if err != nil {
			return nil, errors.Wrap(err, "failed reading lines")
		}
	}
}

// readLinesFromFile returns the lines of the file at path. An empty path has
// no lines.
func readLinesFromFile(path string) ([][]byte, error) {
	if path == "" {
		return nil, nil
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "couldn't open %s", path)
	}
	defer file.Close()

	lines, err := readLines(file)
	if err != nil {
		return nil, errors.Wrapf(err, "couldn't read %s", path)
	}
	return lines, nil
}

// warnIfTerminal logs a hint when elements are about to be read from an
// interactive terminal, which otherwise looks like a hang.
func warnIfTerminal(r io.Reader) {
	file, ok := r.(interface{ Fd() uintptr })
	if !ok {
		return
	}
	if term.IsTerminal(int(file.Fd())) {
		log.Infof("Reading elements from the terminal, one per line. Press Ctrl-D to finish")
	}
}
