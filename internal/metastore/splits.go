package metastore

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// LoadSplitIDs reads a split file: one clip id per line, blank lines
// ignored. Order is preserved; the split index is built in this order.
func LoadSplitIDs(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening split file: %w", err)
	}
	defer file.Close()

	var ids []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			ids = append(ids, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading split file: %w", err)
	}
	return ids, nil
}

// SplitPath resolves a split name ("train", "val", "test_ood") to its
// id-list file under the splits directory.
func SplitPath(splitsDir, splitName string) string {
	return filepath.Join(splitsDir, splitName+".txt")
}
