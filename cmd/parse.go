package cmd

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/cellsim/cellsim/lineage"
)

// parseCmd validates a forest and prints its normalized form and statistics
var parseCmd = &cobra.Command{
	Use:   "parse",
	Short: "Validate a forest and print its normalized form and statistics",
	Run: func(cmd *cobra.Command, args []string) {
		forest, err := loadForest(forestText, forestFile)
		if err != nil {
			logrus.Fatalf("%v", err)
		}
		if err := writeForestReport(cmd.OutOrStdout(), forest); err != nil {
			logrus.Fatalf("%v", err)
		}
	},
}

// writeForestReport prints the re-serialized forest on one line followed by
// its statistics as YAML.
func writeForestReport(w io.Writer, forest lineage.Forest) error {
	if _, err := fmt.Fprintln(w, lineage.Format(forest)); err != nil {
		return err
	}
	enc := yaml.NewEncoder(w)
	if err := enc.Encode(lineage.ComputeStats(forest)); err != nil {
		return fmt.Errorf("encoding forest stats: %w", err)
	}
	return enc.Close()
}

func init() {
	addForestFlags(parseCmd)

	rootCmd.AddCommand(parseCmd)
}
