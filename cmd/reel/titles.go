package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"reel/internal/config"
	"reel/internal/movies"
)

// titleInput collects titles from arguments, --titles, and --file.
type titleInput struct {
	titles string
	file   string
}

func (in *titleInput) collect(args []string, stdin io.Reader) ([]string, error) {
	var titles []string
	for _, arg := range args {
		if arg = strings.TrimSpace(arg); arg != "" {
			titles = append(titles, arg)
		}
	}
	titles = append(titles, movies.ParseTitles(in.titles)...)

	if path := strings.TrimSpace(in.file); path != "" {
		fromFile, err := readTitleFile(path, stdin)
		if err != nil {
			return nil, err
		}
		titles = append(titles, fromFile...)
	}
	if len(titles) == 0 {
		return nil, errors.New("no titles given (pass them as arguments, --titles, or --file)")
	}
	return titles, nil
}

func readTitleFile(path string, stdin io.Reader) ([]string, error) {
	if path == "-" {
		return movies.ReadTitles(stdin, "")
	}
	expanded, err := config.ExpandPath(path)
	if err != nil {
		return nil, fmt.Errorf("resolve title file: %w", err)
	}
	file, err := os.Open(expanded)
	if err != nil {
		return nil, fmt.Errorf("open title file: %w", err)
	}
	defer file.Close()
	titles, err := movies.ReadTitles(file, expanded)
	if err != nil {
		return nil, fmt.Errorf("read title file %s: %w", expanded, err)
	}
	return titles, nil
}
