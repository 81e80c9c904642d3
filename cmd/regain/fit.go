// SPDX-License-Identifier: MIT

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/mat"

	"github.com/veronicatozzo/regain/ltgl"
	"github.com/veronicatozzo/regain/network"
)

type fitOptions struct {
	configPath string
	outPath    string
	header     bool
	workers    int
	threshold  float64
}

// fitOutput is the JSON document written by `regain fit`.
type fitOutput struct {
	Status     ltgl.Status              `json:"status"`
	Iterations int                      `json:"iterations"`
	Precision  [][][]float64            `json:"precision"`
	Latent     [][][]float64            `json:"latent"`
	Observed   [][][]float64            `json:"observed_precision"`
	Edges      [][]network.Edge         `json:"edges"`
	Changes    []network.Change         `json:"changes"`
	History    []ltgl.ConvergenceRecord `json:"history,omitempty"`
}

func newFitCommand(log *logrus.Entry) *cobra.Command {
	opts := fitOptions{}
	cmd := &cobra.Command{
		Use:   "fit [flags] SLICE.csv...",
		Short: "Estimate sparse precision and latent components, one CSV file per time slice",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFit(cmd.OutOrStdout(), log, opts, args, cmd.Flags().Changed("workers"))
		},
	}
	cmd.Flags().StringVar(&opts.configPath, "config", "", "Path to a YAML solver configuration (defaults apply when empty)")
	cmd.Flags().StringVar(&opts.outPath, "out", "", "Write the JSON result to this file instead of stdout")
	cmd.Flags().BoolVar(&opts.header, "header", false, "Skip the first row of every CSV file")
	cmd.Flags().IntVar(&opts.workers, "workers", ltgl.DefaultWorkers, "Goroutines for per-slice proximal steps (overrides the config)")
	cmd.Flags().Float64Var(&opts.threshold, "threshold", 1e-6, "Minimum |weight| of an edge in the reported networks")

	return cmd
}

// runFit loads configuration and data, solves and writes the result.
// An explicit --workers flag overrides the configured worker count.
func runFit(stdout io.Writer, log *logrus.Entry, opts fitOptions, paths []string, workersSet bool) error {
	cfg, err := loadConfig(opts.configPath)
	if err != nil {
		return err
	}
	if workersSet {
		cfg.Workers = opts.workers
	}
	cfg.Logger = log.WithField("command", "fit")

	data := make([]*mat.Dense, len(paths))
	for t, p := range paths {
		if data[t], err = readCSV(p, opts.header); err != nil {
			return err
		}
		r, c := data[t].Dims()
		log.WithFields(logrus.Fields{"slice": t, "path": p, "rows": r, "cols": c}).Debug("loaded slice")
	}

	res, err := ltgl.Solve(data, cfg)
	if err != nil {
		return fmt.Errorf("fit: %w", err)
	}
	out, err := buildOutput(res, opts.threshold)
	if err != nil {
		return err
	}
	log.WithFields(logrus.Fields{
		"status":     res.Status.String(),
		"iterations": res.Iterations,
	}).Info("fit finished")

	w := stdout
	if opts.outPath != "" {
		f, err := os.Create(opts.outPath)
		if err != nil {
			return fmt.Errorf("fit: %w", err)
		}
		defer f.Close()
		w = f
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("fit: write result: %w", err)
	}

	return nil
}

// buildOutput derives the observed precision and its networks from res.
func buildOutput(res *ltgl.Result, threshold float64) (*fitOutput, error) {
	observed, err := network.ObservedPrecision(res.Precision, res.Latent)
	if err != nil {
		return nil, err
	}
	edges, err := network.Edges(observed, threshold)
	if err != nil {
		return nil, err
	}
	changes, err := network.Changes(observed, threshold)
	if err != nil {
		return nil, err
	}

	return &fitOutput{
		Status:     res.Status,
		Iterations: res.Iterations,
		Precision:  res.Precision.ToSlices(),
		Latent:     res.Latent.ToSlices(),
		Observed:   observed.ToSlices(),
		Edges:      edges,
		Changes:    changes,
		History:    res.History,
	}, nil
}
