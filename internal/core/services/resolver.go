package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/custodia-labs/discovery-updater/internal/core/domain"
	"github.com/custodia-labs/discovery-updater/internal/core/ports/driving"
	"github.com/custodia-labs/discovery-updater/internal/logger"
)

// Ensure ResolverService implements the interface.
var _ driving.DocumentResolver = (*ResolverService)(nil)

// ResolverService resolves the canonical discovery document per API.
// It only reads the filesystem.
type ResolverService struct {
	documentsDir string
	indexFile    string
}

// NewResolverService creates a resolver for the corpus layout in cfg.
func NewResolverService(cfg domain.Config) *ResolverService {
	cfg = cfg.WithDefaults()
	return &ResolverService{
		documentsDir: cfg.DocumentsDir,
		indexFile:    cfg.IndexFile,
	}
}

// Resolve scans the corpus under repoDir and returns the API ID to document
// path mapping.
//
// Document paths are scanned in lexical order and the first file seen for an
// ID wins; later duplicates are dropped. With opts.PreferredOnly, IDs the
// index marks as not preferred are removed unless they are in the preferred
// override table; IDs missing from the index are kept. IDs in opts.Skip are
// removed last.
func (s *ResolverService) Resolve(
	ctx context.Context,
	repoDir string,
	opts domain.ResolveOptions,
) (domain.DocumentMap, error) {
	paths, err := s.documentPaths(repoDir)
	if err != nil {
		return nil, err
	}

	docs := make(domain.DocumentMap, len(paths))
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		id, err := readDocumentID(path)
		if err != nil {
			return nil, err
		}
		if existing, ok := docs[id]; ok {
			logger.Debug("duplicate discovery id %s in %s, keeping %s", id, path, existing)
			continue
		}
		docs[id] = path
	}

	if opts.PreferredOnly {
		index, err := s.LoadIndex(ctx, repoDir)
		if err != nil {
			return nil, err
		}
		for _, entry := range index.Items {
			if !entry.EffectivelyPreferred() {
				delete(docs, entry.ID)
			}
		}
	}

	for _, id := range opts.Skip {
		delete(docs, id)
	}

	return docs, nil
}

// LoadIndex parses the corpus index under repoDir.
func (s *ResolverService) LoadIndex(ctx context.Context, repoDir string) (*domain.DiscoveryIndex, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path := filepath.Join(repoDir, s.documentsDir, s.indexFile)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &domain.MalformedIndexError{Path: path, Message: "read failed", Cause: err}
	}

	var raw struct {
		Items *[]domain.IndexEntry `json:"items"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, &domain.MalformedIndexError{Path: path, Message: "invalid JSON", Cause: err}
	}
	if raw.Items == nil {
		return nil, &domain.MalformedIndexError{Path: path, Message: `missing "items" list`}
	}

	return &domain.DiscoveryIndex{Items: *raw.Items}, nil
}

// documentPaths lists the corpus documents in lexical order, excluding the index.
// repoDir is used literally; only entry names are matched against *.json.
func (s *ResolverService) documentPaths(repoDir string) ([]string, error) {
	dir := filepath.Join(repoDir, s.documentsDir)
	entries, err := os.ReadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read corpus directory %s: %w", dir, err)
	}

	paths := make([]string, 0, len(entries))
	for _, e := range entries {
		name := e.Name()
		if !e.Type().IsRegular() || name == s.indexFile {
			continue
		}
		if ok, _ := filepath.Match("*.json", name); !ok {
			continue
		}
		paths = append(paths, filepath.Join(dir, name))
	}
	sort.Strings(paths)
	return paths, nil
}

// readDocumentID extracts the "id" field of the document at path.
func readDocumentID(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", &domain.MalformedDocumentError{Path: path, Message: "read failed", Cause: err}
	}

	var doc struct {
		ID *json.RawMessage `json:"id"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return "", &domain.MalformedDocumentError{Path: path, Message: "invalid JSON", Cause: err}
	}
	if doc.ID == nil {
		return "", &domain.MalformedDocumentError{Path: path, Message: `missing "id" field`}
	}

	var id string
	if err := json.Unmarshal(*doc.ID, &id); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return "", &domain.MalformedDocumentError{Path: path, Message: `"id" is not a string`}
		}
		return "", &domain.MalformedDocumentError{Path: path, Message: "invalid JSON", Cause: err}
	}
	if id == "" {
		return "", &domain.MalformedDocumentError{Path: path, Message: `empty "id" field`}
	}
	return id, nil
}
