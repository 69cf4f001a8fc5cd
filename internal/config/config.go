// Package config reads the single-line text file naming the map-file
// root directory.
package config

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// ErrEmptyRoot indicates the configuration file's first line was empty
// once quotes and the line terminator were stripped.
type ErrEmptyRoot struct {
	Path string
}

func (e *ErrEmptyRoot) Error() string {
	return fmt.Sprintf("config: empty map-file root path in %s", e.Path)
}

// Load reads path and returns the map-file root directory named on its
// first line. Surrounding double or single quotes are stripped; no other
// line is read.
func Load(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return "", err
		}
		return "", &ErrEmptyRoot{Path: path}
	}

	root := strings.Trim(scanner.Text(), `"'`)
	if root == "" {
		return "", &ErrEmptyRoot{Path: path}
	}
	return root, nil
}
