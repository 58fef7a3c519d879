package quaver

import "strings"

const (
	SinkMarker = "~" // names starting with this are mixed to the output
	Anonymous  = "~" // name bound by lines without a reference
)

// IsSink reports whether name designates an output node.
func IsSink(name string) bool {
	return strings.HasPrefix(name, SinkMarker)
}

// NameTable maps patch identifiers to the node most recently bound to them.
// Iteration follows the order names were first bound.
type NameTable struct {
	ids  map[string]NodeID
	keys []string
}

func newNameTable() NameTable {
	return NameTable{ids: make(map[string]NodeID, 64), keys: make([]string, 0, 64)}
}

// Bind points name at id, shadowing any earlier binding.
func (t *NameTable) Bind(name string, id NodeID) {
	if _, in := t.ids[name]; !in {
		t.keys = append(t.keys, name)
	}
	t.ids[name] = id
}

// Lookup returns the node bound to name.
func (t *NameTable) Lookup(name string) (NodeID, bool) {
	id, ok := t.ids[name]
	return id, ok
}

// Len returns the number of bound names.
func (t *NameTable) Len() int { return len(t.keys) }

// Names returns the bound names in first-bind order.
func (t *NameTable) Names() []string { return t.keys }

// Sinks calls f for every name matching the sink marker.
func (t *NameTable) Sinks(f func(name string, id NodeID) error) error {
	for _, k := range t.keys {
		if !IsSink(k) {
			continue
		}
		if err := f(k, t.ids[k]); err != nil {
			return err
		}
	}
	return nil
}

func (t *NameTable) Clear() {
	clear(t.ids)
	t.keys = t.keys[:0]
}
