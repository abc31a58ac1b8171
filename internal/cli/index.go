package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"docsearch/internal/observability/metrics"
	"docsearch/internal/usecase"
)

var indexRoot string

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Load and index the document corpus",
	Long: `Load every category directory under the corpus root, chunk the
documents and build the in-memory inverted index, then report corpus
statistics. The index is rebuilt from disk on every run; nothing is
persisted.

Examples:
  docsearch index
  docsearch index -d /srv/corpus`,
	RunE: runIndex,
}

func init() {
	rootCmd.AddCommand(indexCmd)
	indexCmd.Flags().StringVarP(&indexRoot, "dir", "d", "", "corpus root (default from config)")
}

func runIndex(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()

	root := cfg.Corpus.Root
	if indexRoot != "" {
		root = indexRoot
	}
	root, err := filepath.Abs(root)
	if err != nil {
		return fmt.Errorf("invalid corpus root: %w", err)
	}
	if info, err := os.Stat(root); err != nil || !info.IsDir() {
		return fmt.Errorf("corpus root is not a directory: %s", root)
	}

	engine := usecase.NewEngine(cfg, GetLogger(), metrics.NewEngineMetrics())

	var bar *progressbar.ProgressBar
	engine.OnLoadProgress = func(done, total int, docID string) {
		if bar == nil {
			bar = progressbar.NewOptions(total,
				progressbar.OptionSetWidth(40),
				progressbar.OptionShowCount(),
				progressbar.OptionSetDescription("Indexing"),
				progressbar.OptionOnCompletion(func() {
					fmt.Println()
				}),
			)
		}
		bar.Set(done)
	}

	fmt.Printf("Loading corpus from %s...\n", root)

	handle, err := engine.LoadCorpus(root)
	if err != nil {
		return fmt.Errorf("corpus load failed: %w", err)
	}

	stats, err := engine.Stats()
	if err != nil {
		return err
	}

	fmt.Printf("\nCorpus loaded (handle %s, version %d):\n", handle.ID, handle.Version)
	fmt.Printf("  Documents:        %d\n", stats.Documents)
	fmt.Printf("  Chunks:           %d\n", stats.Chunks)
	fmt.Printf("  Distinct terms:   %d\n", stats.Terms)
	fmt.Printf("  Avg chunk tokens: %.1f\n", stats.AvgChunkTokens)

	return nil
}
