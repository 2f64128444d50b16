package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Beastly713/hashira/pkg/format"
	"github.com/Beastly713/hashira/pkg/pipeline"
	"github.com/spf13/cobra"
)

var (
	gzipOutput      bool
	overwriteOutput bool
)

var convertCmd = &cobra.Command{
	Use:   "convert [input] [output]",
	Short: "Rewrite a share-set document in the explicit list layout",
	Long: `Convert reads a share-set document in any supported layout, including the
legacy keyed JSON object, checks that every share decodes, and writes it
as an explicit list ordered by x. The output codec follows the output
extension (.json, .yaml, .yml, .cbor); a trailing .gz or --gzip compresses it.

Example:
  hashira convert testcase1.json testcase1.yaml
  hashira convert testcase2.json sets/testcase2.cbor.gz`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		inPath, outPath := args[0], args[1]

		// 1. Load and normalize
		doc, err := pipeline.Load(inPath)
		if err != nil {
			return err
		}
		normalized, err := pipeline.Normalize(doc)
		if err != nil {
			return fmt.Errorf("%s: %w", inPath, err)
		}

		// 2. Prepare Output
		if _, err := os.Stat(outPath); err == nil && !overwriteOutput {
			return fmt.Errorf("file %s already exists, use --overwrite to replace it", outPath)
		}
		if dir := filepath.Dir(outPath); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return fmt.Errorf("failed to create destination directory: %w", err)
			}
		}

		outFile, err := os.Create(outPath)
		if err != nil {
			return fmt.Errorf("failed to create output file %s: %w", outPath, err)
		}
		defer outFile.Close()

		// 3. Write
		codec := format.CodecFor(outPath)
		compressed := gzipOutput || strings.HasSuffix(strings.ToLower(outPath), ".gz")
		if err := format.NewWriter(outFile).Write(normalized, codec, compressed); err != nil {
			return fmt.Errorf("failed to write %s: %w", outPath, err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d shares (k=%d, n=%d) to %s as %s\n",
			len(normalized.Shares), normalized.Keys.K, normalized.Keys.N, outPath, codec)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(convertCmd)

	convertCmd.Flags().BoolVar(&gzipOutput, "gzip", false, "Compress the output document")
	convertCmd.Flags().BoolVar(&overwriteOutput, "overwrite", false, "Overwrite the output file if present")
}
