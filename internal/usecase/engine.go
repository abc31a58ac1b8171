package usecase

import (
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"docsearch/config"
	"docsearch/internal/adapter/analyzer"
	"docsearch/internal/adapter/cache"
	"docsearch/internal/adapter/chunker"
	"docsearch/internal/adapter/contentstore"
	"docsearch/internal/adapter/index"
	"docsearch/internal/adapter/matcher"
	"docsearch/internal/adapter/ranker"
	"docsearch/internal/domain"
	"docsearch/internal/observability/metrics"
	"docsearch/internal/port"
)

// snapshot is one fully built corpus generation: content store, chunks and
// inverted index. It is immutable once published, so queries read it without
// locking; a reload builds a replacement aside and swaps the pointer.
type snapshot struct {
	handleID string
	version  uint64
	store    *contentstore.Store
	chunks   map[string][]domain.Chunk
	index    *index.Index
	loadedAt time.Time
}

func (s *snapshot) chunkText(loc domain.Location) string {
	chunks := s.chunks[loc.DocID]
	if loc.Chunk < 0 || loc.Chunk >= len(chunks) {
		return ""
	}
	return chunks[loc.Chunk].Text
}

// CorpusHandle identifies one successful corpus load. Its identity changes
// on every reload; queries issued against a handle see that load's snapshot.
type CorpusHandle struct {
	ID      string
	Version uint64
	snap    *snapshot
}

// LoadProgress reports corpus load progress to an observer.
type LoadProgress func(done, total int, docID string)

// Engine is the retrieval core: it owns the corpus snapshot lifecycle and
// runs the matcher, ranker and response cache pipeline per query.
type Engine struct {
	cfg       *config.Config
	log       zerolog.Logger
	metrics   *metrics.EngineMetrics
	loader    *contentstore.Loader
	tokenizer port.Tokenizer
	chunker   port.Chunker
	matcher   *matcher.Matcher
	cache     *cache.ResponseCache

	current atomic.Pointer[snapshot]
	version atomic.Uint64
	loadMu  sync.Mutex

	// OnLoadProgress, if set before LoadCorpus, observes per-document
	// indexing progress.
	OnLoadProgress LoadProgress
}

func NewEngine(cfg *config.Config, log zerolog.Logger, m *metrics.EngineMetrics) *Engine {
	tok := analyzer.NewTokenizer(cfg.Index.Stopwords)
	loader := contentstore.NewLoader(cfg.Index.Includes, cfg.Index.Excludes, log)
	loader.OnSkip(m.DocumentSkipped)

	return &Engine{
		cfg:       cfg,
		log:       log,
		metrics:   m,
		loader:    loader,
		tokenizer: tok,
		chunker:   chunker.NewParagraphChunker(cfg.Index.ChunkTokens, cfg.Index.ChunkOverlap),
		matcher:   matcher.New(tok),
		cache:     cache.NewResponseCache(cfg.Cache.MaxEntries),
	}
}

// LoadCorpus reads the corpus from disk, chunks and indexes it, and
// publishes the result as the current snapshot. A failed load leaves the
// previously published snapshot intact. Reloads are serialized.
func (e *Engine) LoadCorpus(root string) (*CorpusHandle, error) {
	e.loadMu.Lock()
	defer e.loadMu.Unlock()

	started := time.Now()

	store, err := e.loader.LoadAll(root)
	if err != nil {
		return nil, err
	}
	if store.Len() == 0 {
		return nil, fmt.Errorf("no readable documents under %s", root)
	}

	docs := store.Docs()
	chunksByDoc := make(map[string][]domain.Chunk, len(docs))
	var allChunks []domain.Chunk

	for i, doc := range docs {
		chunks, err := e.chunker.Chunk(doc)
		if err != nil {
			return nil, fmt.Errorf("chunking %s: %w", doc.ID, err)
		}
		chunksByDoc[doc.ID] = chunks
		allChunks = append(allChunks, chunks...)
		if e.OnLoadProgress != nil {
			e.OnLoadProgress(i+1, len(docs), doc.ID)
		}
	}

	idx := index.Build(e.tokenizer, allChunks)

	snap := &snapshot{
		handleID: uuid.NewString(),
		version:  e.version.Add(1),
		store:    store,
		chunks:   chunksByDoc,
		index:    idx,
		loadedAt: time.Now(),
	}
	e.current.Store(snap)

	// The version in cache keys already fences off stale entries; purge
	// eagerly to release their memory.
	e.cache.Purge()

	e.metrics.CorpusLoaded(store.Len())
	e.log.Info().
		Str("root", root).
		Uint64("version", snap.version).
		Int("documents", store.Len()).
		Int("chunks", idx.Stats().Chunks).
		Int("terms", idx.Stats().Terms).
		Dur("elapsed", time.Since(started)).
		Msg("corpus loaded")

	return &CorpusHandle{ID: snap.handleID, Version: snap.version, snap: snap}, nil
}

// Handle returns a handle to the current snapshot, or ErrIndexNotReady
// before the first successful load.
func (e *Engine) Handle() (*CorpusHandle, error) {
	snap := e.current.Load()
	if snap == nil {
		return nil, domain.ErrIndexNotReady
	}
	return &CorpusHandle{ID: snap.handleID, Version: snap.version, snap: snap}, nil
}

// Stats returns index statistics for the current snapshot.
func (e *Engine) Stats() (domain.Stats, error) {
	snap := e.current.Load()
	if snap == nil {
		return domain.Stats{}, domain.ErrIndexNotReady
	}
	return snap.index.Stats(), nil
}

// Retrieve runs the match, rank and cache pipeline against the handle's
// snapshot and returns at most k results, best first. A query with zero
// recognized terms returns an empty result, not an error.
func (e *Engine) Retrieve(h *CorpusHandle, query string, category domain.Category, k int) ([]domain.Result, error) {
	snap, err := e.resolve(h)
	if err != nil {
		return nil, err
	}
	if k <= 0 {
		return nil, nil
	}

	terms := e.matcher.Terms(query)
	if len(terms) == 0 {
		return nil, nil
	}

	started := time.Now()
	key := cache.Key{
		Query:    normalizeQuery(terms, k),
		Category: category,
		Version:  snap.version,
	}

	results, hit, err := e.cache.GetOrCompute(key, func() ([]domain.Result, error) {
		return e.compute(snap, query, category, k), nil
	})
	if err != nil {
		return nil, err
	}

	e.metrics.Query(string(category), hit, time.Since(started))
	e.log.Debug().
		Str("category", string(category)).
		Int("k", k).
		Int("results", len(results)).
		Bool("cache_hit", hit).
		Msg("retrieve")

	return results, nil
}

// compute is the uncached retrieval path: match against the index, keep the
// requested category, rank, and attach chunk text.
func (e *Engine) compute(snap *snapshot, query string, category domain.Category, k int) []domain.Result {
	matches := e.matcher.Match(snap.index, query)

	filtered := matches[:0:0]
	for _, m := range matches {
		doc, err := snap.store.Get(m.Loc.DocID)
		if err != nil || doc.Category != category {
			continue
		}
		filtered = append(filtered, m)
	}

	results := ranker.Rank(filtered, k, e.scorer(snap, query))

	for i := range results {
		results[i].Category = category
		results[i].Text = snap.chunkText(domain.Location{
			DocID: results[i].DocumentID,
			Chunk: results[i].ChunkIndex,
		})
	}
	return results
}

// scorer resolves the configured scoring function for one query against one
// snapshot. With a phrase bonus configured, chunks containing the whole
// normalized query phrase score higher; the automaton scan keeps that a
// single pass per chunk.
func (e *Engine) scorer(snap *snapshot, query string) ranker.ScoreFunc {
	var base ranker.ScoreFunc
	switch e.cfg.Retrieve.Scorer {
	case "weighted":
		base = ranker.WeightedTerms()
	case "idf":
		base = ranker.InverseDocFrequency(snap.index)
	default:
		base = ranker.DistinctTerms()
	}

	bonus := e.cfg.Retrieve.PhraseBonus
	if bonus <= 0 {
		return base
	}

	phrase := strings.Join(e.matcher.Terms(query), " ")
	automaton := matcher.NewAutomaton([]string{phrase})

	return func(m domain.Match) float64 {
		score := base(m)
		if automaton.Contains(normalizeText(e.tokenizer, snap.chunkText(m.Loc))) {
			score += bonus
		}
		return score
	}
}

// StoreAnswer memoizes a downstream answer for the query, so the caller can
// skip the language-model round trip on repeats.
func (e *Engine) StoreAnswer(h *CorpusHandle, query string, category domain.Category, k int, answer string) error {
	snap, err := e.resolve(h)
	if err != nil {
		return err
	}
	terms := e.matcher.Terms(query)
	if len(terms) == 0 {
		return nil
	}
	e.cache.StoreAnswer(cache.Key{Query: normalizeQuery(terms, k), Category: category, Version: snap.version}, answer)
	return nil
}

// Answer returns a previously memoized downstream answer, if any.
func (e *Engine) Answer(h *CorpusHandle, query string, category domain.Category, k int) (string, bool) {
	snap, err := e.resolve(h)
	if err != nil {
		return "", false
	}
	terms := e.matcher.Terms(query)
	if len(terms) == 0 {
		return "", false
	}
	return e.cache.Answer(cache.Key{Query: normalizeQuery(terms, k), Category: category, Version: snap.version})
}

func (e *Engine) resolve(h *CorpusHandle) (*snapshot, error) {
	if h != nil && h.snap != nil {
		return h.snap, nil
	}
	snap := e.current.Load()
	if snap == nil {
		return nil, domain.ErrIndexNotReady
	}
	return snap, nil
}

// normalizeQuery canonicalizes the deduplicated term list plus k into the
// cache key, so query strings differing only in casing, punctuation or
// duplicated words share an entry. Term order is preserved because the
// phrase bonus is order-sensitive.
func normalizeQuery(terms []string, k int) string {
	return fmt.Sprintf("%d:%s", k, strings.Join(terms, " "))
}

func normalizeText(tok port.Tokenizer, text string) string {
	return strings.Join(tok.Tokenize(text), " ")
}
