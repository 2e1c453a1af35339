package domain

import "sort"

// DiscoveryDocument is a single API's discovery document within the corpus.
type DiscoveryDocument struct {
	// ID is the API identifier in "<name>:<version>" form.
	ID string `json:"id"`

	// Path is the document's file path. It is the document's identity
	// within the corpus.
	Path string `json:"path"`
}

// DiscoveryIndex is the parsed form of the corpus index file.
type DiscoveryIndex struct {
	Items []IndexEntry `json:"items"`
}

// IndexEntry describes one API listed in the discovery index.
// Only ID and Preferred are consulted; the other fields are informational.
type IndexEntry struct {
	ID               string `json:"id"`
	Preferred        bool   `json:"preferred"`
	Name             string `json:"name,omitempty"`
	Version          string `json:"version,omitempty"`
	Title            string `json:"title,omitempty"`
	DiscoveryRestURL string `json:"discoveryRestUrl,omitempty"`
}

// EffectivelyPreferred reports whether the entry counts as preferred once
// the override table is applied.
func (e IndexEntry) EffectivelyPreferred() bool {
	return e.Preferred || IsPreferredOverride(e.ID)
}

// DocumentMap maps API IDs to document file paths.
// Map iteration order carries no meaning; use Documents for a stable view.
type DocumentMap map[string]string

// Documents returns the mapping as a slice sorted by ID.
func (m DocumentMap) Documents() []DiscoveryDocument {
	docs := make([]DiscoveryDocument, 0, len(m))
	for id, path := range m {
		docs = append(docs, DiscoveryDocument{ID: id, Path: path})
	}
	sort.Slice(docs, func(i, j int) bool {
		return docs[i].ID < docs[j].ID
	})
	return docs
}

// IDs returns the sorted API IDs in the mapping.
func (m DocumentMap) IDs() []string {
	ids := make([]string, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// preferredOverrides lists APIs the upstream index incorrectly marks as
// not preferred. They are always treated as preferred.
var preferredOverrides = map[string]struct{}{
	"admin:directory_v1":    {},
	"admin:datatransfer_v1": {},
}

// IsPreferredOverride reports whether id is in the preferred override table.
func IsPreferredOverride(id string) bool {
	_, ok := preferredOverrides[id]
	return ok
}

// PreferredOverrides returns the sorted override IDs.
func PreferredOverrides() []string {
	ids := make([]string, 0, len(preferredOverrides))
	for id := range preferredOverrides {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// ResolveOptions narrows the resolved document mapping.
type ResolveOptions struct {
	// PreferredOnly drops APIs the index marks as not preferred,
	// except for those in the override table.
	PreferredOnly bool

	// Skip lists API IDs removed unconditionally. Unknown IDs are ignored.
	Skip []string
}
