package backup

import (
	"encoding/json"
	"fmt"

	"cripes/internal/constants"
	"cripes/internal/storage"
)

// Export assembles an atomic snapshot of the store: one object with one
// property per collection key, value = that collection's raw stored
// content. A key with no stored value is exported as an explicit null,
// never as the default; export reflects actual storage state.
func Export(p storage.Provider) ([]byte, error) {
	doc := make(map[string]json.RawMessage, len(constants.CollectionKeys))
	for _, key := range constants.CollectionKeys {
		raw, ok, err := p.GetRaw(key)
		if err != nil {
			return nil, fmt.Errorf("failed to export collection %q: %w", key, err)
		}
		if !ok {
			doc[key] = json.RawMessage("null")
			continue
		}
		doc[key] = raw
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to serialize snapshot: %w", err)
	}
	return data, nil
}

// Import restores collections from a snapshot document. The whole
// document is parsed before any write: a parse failure aborts with zero
// storage mutations. Each known collection key present with a non-null
// value overwrites the stored key; keys absent from the document (or
// null) are left untouched, so partial and backward-compatible restores
// work. The caller must fully reload in-memory state after a successful
// import.
func Import(p storage.Provider, data []byte) error {
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("invalid backup file: %w", err)
	}

	for _, key := range constants.CollectionKeys {
		raw, ok := doc[key]
		if !ok || string(raw) == "null" {
			continue
		}
		if err := p.SetRaw(key, raw); err != nil {
			return fmt.Errorf("failed to restore collection %q: %w", key, err)
		}
	}
	return nil
}
