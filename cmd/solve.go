package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/Beastly713/hashira/pkg/format"
	"github.com/Beastly713/hashira/pkg/pipeline"
	"github.com/spf13/cobra"
)

var (
	termwise    bool
	fingerprint bool
	workers     int
)

// solveCmd represents the solve command
var solveCmd = &cobra.Command{
	Use:   "solve [path...]",
	Short: "Reconstruct the secret of one or more share sets",
	Long: `Solve reads share-set documents (.json, .yaml, .cbor, optionally gzipped)
from the given files and directories (or the current directory if none are
given), decodes every share, takes the k shares with the smallest x and
prints the reconstructed secret of each set.

Example:
  hashira solve testcase1.json testcase2.json
  hashira solve ./sets --fingerprint`,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()

		// 1. Determine sources
		if len(args) == 0 {
			args = []string{"."}
		}

		// 2. Gather documents
		var jobs []pipeline.Job
		unreadable := 0
		for _, arg := range args {
			info, err := os.Stat(arg)
			if err != nil {
				fmt.Fprintf(out, "%s: %v\n", arg, err)
				unreadable++
				continue
			}

			if !info.IsDir() {
				doc, err := pipeline.Load(arg)
				if err != nil {
					fmt.Fprintf(out, "%s: %v\n", arg, err)
					unreadable++
					continue
				}
				jobs = append(jobs, pipeline.Job{Source: arg, Document: doc})
				continue
			}

			fmt.Fprintf(out, "Scanning for share sets in %s...\n", arg)
			entries, err := os.ReadDir(arg)
			if err != nil {
				return fmt.Errorf("failed to read directory: %w", err)
			}
			for _, e := range entries {
				if e.IsDir() || !format.IsDocument(e.Name()) {
					continue
				}
				path := filepath.Join(arg, e.Name())
				doc, err := pipeline.Load(path)
				if err != nil {
					fmt.Fprintf(out, "Skipping invalid document %s: %v\n", e.Name(), err)
					unreadable++
					continue
				}
				jobs = append(jobs, pipeline.Job{Source: path, Document: doc})
			}
		}

		if len(jobs) == 0 && unreadable == 0 {
			return fmt.Errorf("no share sets found in %v", args)
		}

		// 3. Solve every set
		config := pipeline.Config{
			Termwise: termwise,
			Workers:  workers,
		}
		results, err := pipeline.SolveAll(cmd.Context(), jobs, config)
		if err != nil {
			return err
		}

		// 4. Report
		failed := unreadable
		for _, r := range results {
			if r.Err != nil {
				fmt.Fprintf(out, "%s: %v\n", r.Source, r.Err)
				failed++
				continue
			}
			if fingerprint {
				fmt.Fprintf(out, "%s: blake3:%s (k=%d of n=%d)\n", r.Source, r.Secret.Fingerprint(), r.Set.Threshold(), r.Set.Total())
			} else {
				fmt.Fprintf(out, "%s: %s\n", r.Source, r.Secret)
			}
			r.Secret.Destroy()
		}

		if failed > 0 {
			return fmt.Errorf("%d of %d share sets failed", failed, len(jobs)+unreadable)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(solveCmd)

	solveCmd.Flags().BoolVar(&termwise, "termwise", false, "Divide each Lagrange term separately (fails on fractional coefficients)")
	solveCmd.Flags().BoolVar(&fingerprint, "fingerprint", false, "Print a BLAKE3 fingerprint instead of the secret")
	solveCmd.Flags().IntVarP(&workers, "workers", "w", 0, "Share sets solved in parallel (default: one per CPU)")
}
