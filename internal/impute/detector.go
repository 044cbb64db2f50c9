// Package impute detects node ids that are referenced in select_from
// fields but never declared, and repairs lineage documents by appending
// placeholder nodes for them while preserving comments and formatting.
package impute

// Detection runs over raw decoded records rather than a built graph so it
// can survive partially malformed documents: non-mapping records and
// non-string references are skipped, never fatal.

// ReferencedIDs collects every node id mentioned in any record's
// select_from list.
func ReferencedIDs(records []any) map[string]struct{} {
	referenced := make(map[string]struct{})
	for _, rec := range records {
		m, ok := rec.(map[string]any)
		if !ok {
			continue
		}
		refs, ok := m["select_from"].([]any)
		if !ok {
			continue
		}
		for _, ref := range refs {
			if id, ok := ref.(string); ok {
				referenced[id] = struct{}{}
			}
		}
	}
	return referenced
}

// ExistingIDs collects the id field of every well-formed record.
func ExistingIDs(records []any) map[string]struct{} {
	existing := make(map[string]struct{})
	for _, rec := range records {
		m, ok := rec.(map[string]any)
		if !ok {
			continue
		}
		if id, ok := m["id"].(string); ok {
			existing[id] = struct{}{}
		}
	}
	return existing
}

// MissingIDs returns the referenced-but-undeclared ids in first-discovery
// order: records in input order, each record's select_from in list order,
// first sighting wins. The ordering is part of the contract so repeated
// runs produce identical output; a plain set difference would not. A node
// referencing itself is declared by definition and never reported.
func MissingIDs(records []any) []string {
	existing := ExistingIDs(records)
	referenced := ReferencedIDs(records)

	missing := make(map[string]struct{})
	for id := range referenced {
		if _, declared := existing[id]; !declared {
			missing[id] = struct{}{}
		}
	}

	ordered := []string{}
	seen := make(map[string]struct{})
	for _, rec := range records {
		m, ok := rec.(map[string]any)
		if !ok {
			continue
		}
		refs, ok := m["select_from"].([]any)
		if !ok {
			continue
		}
		for _, ref := range refs {
			id, ok := ref.(string)
			if !ok {
				continue
			}
			if _, isMissing := missing[id]; !isMissing {
				continue
			}
			if _, dup := seen[id]; dup {
				continue
			}
			seen[id] = struct{}{}
			ordered = append(ordered, id)
		}
	}
	return ordered
}

// NewPlaceholder builds the record appended for a missing id: label mirrors
// the id, type and level stay null to flag "known to exist, details
// unknown", and select_from starts empty.
func NewPlaceholder(id string) map[string]any {
	return map[string]any{
		"id":          id,
		"label":       id,
		"data_level":  nil,
		"data_type":   nil,
		"select_from": []any{},
	}
}
