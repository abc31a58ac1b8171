package cli

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"docsearch/internal/domain"
	"docsearch/internal/observability/metrics"
	"docsearch/internal/usecase"
)

var (
	queryText     string
	queryCategory string
	queryTopK     int
	queryRoot     string
	queryJSON     bool
)

var queryCmd = &cobra.Command{
	Use:   "query",
	Short: "Retrieve the chunks most relevant to a query",
	Long: `Load the corpus, then retrieve the top-k chunks matching the query
within one category.

Examples:
  docsearch query -q "total due Acme"
  docsearch query -q "refund policy" -c knowledge -k 3 --json`,
	RunE: runQuery,
}

func init() {
	rootCmd.AddCommand(queryCmd)
	queryCmd.Flags().StringVarP(&queryText, "query", "q", "", "query text (required)")
	queryCmd.Flags().StringVarP(&queryCategory, "category", "c", "", "document category (default invoices)")
	queryCmd.Flags().IntVarP(&queryTopK, "top-k", "k", 0, "number of results (default from config)")
	queryCmd.Flags().StringVarP(&queryRoot, "dir", "d", "", "corpus root (default from config)")
	queryCmd.Flags().BoolVar(&queryJSON, "json", false, "output as JSON")
	queryCmd.MarkFlagRequired("query")
}

func runQuery(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()

	category, err := domain.ParseCategory(queryCategory)
	if err != nil {
		return fmt.Errorf("%w: %s", err, queryCategory)
	}

	root := cfg.Corpus.Root
	if queryRoot != "" {
		root = queryRoot
	}
	root, err = filepath.Abs(root)
	if err != nil {
		return fmt.Errorf("invalid corpus root: %w", err)
	}

	topK := cfg.Retrieve.TopK
	if queryTopK > 0 {
		topK = queryTopK
	}

	engine := usecase.NewEngine(cfg, GetLogger(), metrics.NewEngineMetrics())
	handle, err := engine.LoadCorpus(root)
	if err != nil {
		return fmt.Errorf("corpus load failed: %w", err)
	}

	results, err := engine.Retrieve(handle, queryText, category, topK)
	if err != nil {
		return fmt.Errorf("retrieve failed: %w", err)
	}

	if queryJSON {
		output, _ := json.MarshalIndent(results, "", "  ")
		fmt.Println(string(output))
		return nil
	}

	if len(results) == 0 {
		fmt.Println("No results found.")
		return nil
	}

	fmt.Printf("Found %d results for: %s\n\n", len(results), queryText)
	for i, r := range results {
		fmt.Printf("--- [%d] %s#%d (score: %.2f) ---\n", i+1, r.DocumentID, r.ChunkIndex, r.Score)
		text := r.Text
		if len(text) > 500 {
			text = text[:500] + "..."
		}
		fmt.Println(text)
		fmt.Println()
	}

	return nil
}
