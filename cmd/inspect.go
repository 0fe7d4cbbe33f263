package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/cellsim/cellsim/sim/trace"
)

var inputPath string // Time-series file to inspect

// inspectCmd summarizes a recorded time series, including the bounds a
// renderer needs to fit every frame
var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Summarize a recorded time series",
	Run: func(cmd *cobra.Command, args []string) {
		f, err := os.Open(inputPath)
		if err != nil {
			logrus.Fatalf("Failed to open time series: %v", err)
		}
		defer f.Close()

		if err := inspectFrames(f, cmd.OutOrStdout()); err != nil {
			logrus.Fatalf("%v", err)
		}
	},
}

// inspectFrames reads a time series from r and writes its summary as YAML.
func inspectFrames(r io.Reader, w io.Writer) error {
	frames, err := trace.ReadFrames(r)
	if err != nil {
		return fmt.Errorf("reading time series: %w", err)
	}
	logrus.Debugf("read %d frames", len(frames))

	enc := yaml.NewEncoder(w)
	if err := enc.Encode(trace.Summarize(frames)); err != nil {
		return fmt.Errorf("encoding summary: %w", err)
	}
	return enc.Close()
}

func init() {
	inspectCmd.Flags().StringVarP(&inputPath, "input", "i", "", "Time-series file written by `run`")
	_ = inspectCmd.MarkFlagRequired("input")

	rootCmd.AddCommand(inspectCmd)
}
