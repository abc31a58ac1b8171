package contentstore

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"

	"docsearch/internal/domain"
)

// Loader scans category directories under a corpus root and reads each
// matching file exactly once. An unreadable file is logged and skipped so a
// partial corpus load still succeeds.
type Loader struct {
	includes []string
	excludes []string
	log      zerolog.Logger
	onSkip   func()
}

func NewLoader(includes, excludes []string, log zerolog.Logger) *Loader {
	if len(includes) == 0 {
		includes = []string{"**/*"}
	}
	return &Loader{
		includes: includes,
		excludes: excludes,
		log:      log,
	}
}

// OnSkip registers a callback invoked once per document skipped due to a
// read error.
func (l *Loader) OnSkip(fn func()) {
	l.onSkip = fn
}

func (l *Loader) skipped() {
	if l.onSkip != nil {
		l.onSkip()
	}
}

// Load reads one category's documents from root. Returns
// domain.ErrCategoryNotFound if the category directory does not exist.
func (l *Loader) Load(root string, category domain.Category) ([]domain.Document, error) {
	dir := filepath.Join(root, category.Dir())

	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", domain.ErrCategoryNotFound, dir)
	}

	var docs []domain.Document

	err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			l.log.Warn().Err(err).Str("path", path).Msg("skipping unreadable path")
			l.skipped()
			return nil
		}
		if d.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		if !l.shouldInclude(rel) || l.shouldExclude(rel) {
			return nil
		}

		data, err := os.ReadFile(path)
		if err != nil {
			l.log.Warn().Err(err).Str("path", path).Msg("skipping unreadable document")
			l.skipped()
			return nil
		}

		docs = append(docs, domain.Document{
			ID:       category.Dir() + "/" + rel,
			Name:     filepath.Base(path),
			Category: category,
			Content:  string(data),
			LoadedAt: time.Now(),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	return docs, nil
}

// LoadAll reads every known category under root. Missing category
// directories are logged and skipped; other categories remain usable.
func (l *Loader) LoadAll(root string) (*Store, error) {
	if _, err := os.Stat(root); err != nil {
		return nil, fmt.Errorf("corpus root: %w", err)
	}

	s := newStore()
	for _, cat := range domain.Categories() {
		docs, err := l.Load(root, cat)
		if err != nil {
			l.log.Warn().Err(err).Str("category", string(cat)).Msg("skipping category")
			continue
		}
		for _, doc := range docs {
			s.put(doc)
		}
	}
	return s, nil
}

func (l *Loader) shouldInclude(path string) bool {
	for _, pattern := range l.includes {
		matched, err := doublestar.Match(pattern, path)
		if err == nil && matched {
			return true
		}
	}
	return false
}

func (l *Loader) shouldExclude(path string) bool {
	for _, pattern := range l.excludes {
		matched, err := doublestar.Match(pattern, path)
		if err == nil && matched {
			return true
		}
	}
	return false
}

// Store holds loaded document content by ID. Immutable after load; a corpus
// reload builds a fresh Store rather than mutating this one, so concurrent
// readers need no locking.
type Store struct {
	docs       map[string]domain.Document
	byCategory map[domain.Category][]string
}

func newStore() *Store {
	return &Store{
		docs:       make(map[string]domain.Document),
		byCategory: make(map[domain.Category][]string),
	}
}

func (s *Store) put(doc domain.Document) {
	s.docs[doc.ID] = doc
	s.byCategory[doc.Category] = append(s.byCategory[doc.Category], doc.ID)
}

// Get returns the cached document without touching disk.
func (s *Store) Get(id string) (domain.Document, error) {
	doc, ok := s.docs[id]
	if !ok {
		return domain.Document{}, fmt.Errorf("%w: %s", domain.ErrDocumentNotFound, id)
	}
	return doc, nil
}

// Docs returns all documents ordered by ID.
func (s *Store) Docs() []domain.Document {
	docs := make([]domain.Document, 0, len(s.docs))
	for _, doc := range s.docs {
		docs = append(docs, doc)
	}
	sort.Slice(docs, func(i, j int) bool { return docs[i].ID < docs[j].ID })
	return docs
}

// DocsByCategory returns the category's documents ordered by ID.
func (s *Store) DocsByCategory(cat domain.Category) []domain.Document {
	ids := append([]string(nil), s.byCategory[cat]...)
	sort.Strings(ids)
	docs := make([]domain.Document, 0, len(ids))
	for _, id := range ids {
		docs = append(docs, s.docs[id])
	}
	return docs
}

// Len returns the number of loaded documents.
func (s *Store) Len() int {
	return len(s.docs)
}
