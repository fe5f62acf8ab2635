package types

// Column describes a single table column as reported by the database
// catalog. Type is empty when the catalog did not report one.
type Column struct {
	Name     string `json:"name"`
	Type     string `json:"type,omitempty"`
	Nullable bool   `json:"nullable"`
}

// Table owns its columns in catalog ordinal order, not alphabetical.
type Table struct {
	Name    string   `json:"name"`
	Columns []Column `json:"columns"`
}

// Snapshot is the normalized schema produced from one catalog query.
// Table order is first-appearance order in the catalog rows; table names
// are unique within a snapshot.
type Snapshot []Table

// Names returns the table names in snapshot order.
func (s Snapshot) Names() []string {
	names := make([]string, 0, len(s))
	for _, t := range s {
		names = append(names, t.Name)
	}
	return names
}

// Lookup returns the named table and whether it exists in the snapshot.
func (s Snapshot) Lookup(name string) (Table, bool) {
	for _, t := range s {
		if t.Name == name {
			return t, true
		}
	}
	return Table{}, false
}
