// SPDX-License-Identifier: MIT

// Command regain fits latent time-varying graphical models from CSV files.
//
//	regain fit --config ltgl.yaml --out result.json t0.csv t1.csv t2.csv
//
// Every CSV file is one time slice: rows are observations, columns features.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

type rootOptions struct {
	logLevel string
}

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	logger.SetOutput(os.Stderr)

	if err := newRootCommand(logger, os.Stdout).Execute(); err != nil {
		logger.WithError(err).Error("regain failed")
		os.Exit(1)
	}
}

// newRootCommand wires the command tree; out receives command results.
func newRootCommand(logger *logrus.Logger, out io.Writer) *cobra.Command {
	opts := rootOptions{}
	cmd := &cobra.Command{
		Use:           "regain",
		Short:         "Latent time-varying graphical lasso",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			level, err := logrus.ParseLevel(opts.logLevel)
			if err != nil {
				return fmt.Errorf("--log-level: %w", err)
			}
			logger.SetLevel(level)
			return nil
		},
	}
	cmd.SetOut(out)
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", logrus.InfoLevel.String(), "Logging level (trace, debug, info, warn, error)")
	cmd.AddCommand(newFitCommand(logrus.NewEntry(logger)))

	return cmd
}
