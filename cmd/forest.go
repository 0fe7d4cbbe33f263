package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cellsim/cellsim/lineage"
)

var (
	forestText string // Forest given literally on the command line
	forestFile string // File whose first line holds the forest
)

// addForestFlags registers the mutually exclusive forest sources on c.
func addForestFlags(c *cobra.Command) {
	c.Flags().StringVarP(&forestText, "forest", "f", "", "Forest of cell growth (';'-separated trees)")
	c.Flags().StringVarP(&forestFile, "forest-file", "i", "", "File whose first line is the forest")
	c.MarkFlagsMutuallyExclusive("forest", "forest-file")
	c.MarkFlagsOneRequired("forest", "forest-file")
}

// loadForest parses the forest from exactly one of text or path.
func loadForest(text, path string) (lineage.Forest, error) {
	switch {
	case text == "" && path == "":
		return nil, errors.New("provide a forest with --forest or --forest-file")
	case text != "" && path != "":
		return nil, errors.New("use --forest or --forest-file, not both")
	case path != "":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading forest file: %w", err)
		}
		text, _, _ = strings.Cut(string(data), "\n")
	}
	forest, err := lineage.ParseForest(text)
	if err != nil {
		return nil, fmt.Errorf("parsing forest: %w", err)
	}
	return forest, nil
}
