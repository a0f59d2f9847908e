package main

import (
	"fmt"
	"io"

	"github.com/kaspanet/setsum/domain/replication"
)

func apply(conf *applyConfig, stdout io.Writer) error {
	stream := replication.NewStream()
	if conf.Checkpoint != "" {
		var err error
		stream, err = replication.ResumeStream(conf.Checkpoint)
		if err != nil {
			return err
		}
	}

	preImages, err := readLinesFromFile(conf.PreImages)
	if err != nil {
		return err
	}
	postImages, err := readLinesFromFile(conf.PostImages)
	if err != nil {
		return err
	}

	stream.Apply(&replication.Transaction{PreImages: preImages, PostImages: postImages})
	log.Infof("Applied a transaction with %d pre-images and %d post-images", len(preImages), len(postImages))

	fmt.Fprintln(stdout, stream.Checkpoint())
	return nil
}
