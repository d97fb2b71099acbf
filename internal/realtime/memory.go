package realtime

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
)

// MemoryStore is an in-process Store used by tests and local development
// (QB_REALTIME_DRIVER=memory). It mirrors the merge semantics of the firebase
// backend: Patch overwrites only the provided field keys of a node.
type MemoryStore struct {
	mu   sync.RWMutex
	root map[string]any
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{root: make(map[string]any)}
}

func (s *MemoryStore) Ready() bool { return true }

func (s *MemoryStore) Get(_ context.Context, path string, v any) error {
	s.mu.RLock()
	node, ok := s.lookup(path)
	s.mu.RUnlock()
	if !ok {
		return nil
	}
	// JSON round-trip keeps the decode behaviour identical to the remote store.
	b, err := json.Marshal(node)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, v)
}

func (s *MemoryStore) Set(_ context.Context, path string, v any) error {
	plain, err := toPlain(v)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	parent, key := s.materialize(path)
	parent[key] = plain
	return nil
}

func (s *MemoryStore) Patch(_ context.Context, path string, fields map[string]any) error {
	plain, err := toPlain(fields)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	parent, key := s.materialize(path)
	node, ok := parent[key].(map[string]any)
	if !ok {
		node = make(map[string]any)
		parent[key] = node
	}
	for k, v := range plain.(map[string]any) {
		node[k] = v
	}
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	segs := split(path)
	if len(segs) == 0 {
		s.root = make(map[string]any)
		return nil
	}
	node := s.root
	for _, seg := range segs[:len(segs)-1] {
		child, ok := node[seg].(map[string]any)
		if !ok {
			return nil
		}
		node = child
	}
	delete(node, segs[len(segs)-1])
	return nil
}

// lookup walks to the node at path. Caller holds the read lock.
func (s *MemoryStore) lookup(path string) (any, bool) {
	var node any = s.root
	for _, seg := range split(path) {
		m, ok := node.(map[string]any)
		if !ok {
			return nil, false
		}
		node, ok = m[seg]
		if !ok {
			return nil, false
		}
	}
	return node, true
}

// materialize walks to the parent of path, creating intermediate nodes, and
// returns the parent map plus the final key. Caller holds the write lock.
func (s *MemoryStore) materialize(path string) (map[string]any, string) {
	segs := split(path)
	node := s.root
	for _, seg := range segs[:len(segs)-1] {
		child, ok := node[seg].(map[string]any)
		if !ok {
			child = make(map[string]any)
			node[seg] = child
		}
		node = child
	}
	return node, segs[len(segs)-1]
}

func split(path string) []string {
	var segs []string
	for _, seg := range strings.Split(path, "/") {
		if seg != "" {
			segs = append(segs, seg)
		}
	}
	return segs
}

// toPlain converts typed values into the generic map/slice/float shape the
// store holds, so that struct tags apply on write exactly as they would
// against the remote store.
func toPlain(v any) (any, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var plain any
	if err := json.Unmarshal(b, &plain); err != nil {
		return nil, err
	}
	return plain, nil
}
