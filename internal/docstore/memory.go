package docstore

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/wanderbase/wanderbase/internal/app/common"
)

// MemoryProvider is an in-memory store with the same point-access and
// query semantics as the Postgres-backed client. It backs repository
// tests and local runs without a database.
type MemoryProvider struct {
	mu         sync.Mutex
	containers map[string]*MemoryContainer
}

func NewMemoryProvider() *MemoryProvider {
	return &MemoryProvider{containers: make(map[string]*MemoryContainer)}
}

func (p *MemoryProvider) Container(_ context.Context, name string) (Container, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if c, ok := p.containers[name]; ok {
		return c, nil
	}
	c := &MemoryContainer{name: name, items: make(map[memoryKey][]byte)}
	p.containers[name] = c
	return c, nil
}

type memoryKey struct {
	id        string
	partition string
}

type MemoryContainer struct {
	name  string
	mu    sync.Mutex
	items map[memoryKey][]byte
	order []memoryKey
}

var _ Container = (*MemoryContainer)(nil)

func (c *MemoryContainer) Name() string { return c.name }

func (c *MemoryContainer) CreateItem(_ context.Context, id, partition string, body []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	key := memoryKey{id: id, partition: partition}
	if _, exists := c.items[key]; exists {
		return &common.StorageError{Collection: c.name, Op: "CreateItem", Err: fmt.Errorf("duplicate id %s", id)}
	}
	c.items[key] = append([]byte(nil), body...)
	c.order = append(c.order, key)
	return nil
}

func (c *MemoryContainer) ReadItem(_ context.Context, id, partition string) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	body, ok := c.items[memoryKey{id: id, partition: partition}]
	if !ok {
		return nil, ErrItemNotFound
	}
	return append([]byte(nil), body...), nil
}

func (c *MemoryContainer) ReplaceItem(_ context.Context, id, partition string, body []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	key := memoryKey{id: id, partition: partition}
	if _, ok := c.items[key]; !ok {
		return ErrItemNotFound
	}
	c.items[key] = append([]byte(nil), body...)
	return nil
}

func (c *MemoryContainer) DeleteItem(_ context.Context, id, partition string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	key := memoryKey{id: id, partition: partition}
	if _, ok := c.items[key]; !ok {
		return ErrItemNotFound
	}
	delete(c.items, key)
	for i, k := range c.order {
		if k == key {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	return nil
}

func (c *MemoryContainer) QueryItems(_ context.Context, q Query) ([][]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	type doc struct {
		body   []byte
		fields map[string]any
	}
	var matched []doc
	for _, key := range c.order {
		if q.ID != "" && key.id != q.ID {
			continue
		}
		if q.Partition != "" && key.partition != q.Partition {
			continue
		}
		body := c.items[key]
		var fields map[string]any
		if err := json.Unmarshal(body, &fields); err != nil {
			return nil, &common.StorageError{Collection: c.name, Op: "QueryItems", Err: err}
		}
		if !matchesFilters(fields, q.Filters) {
			continue
		}
		matched = append(matched, doc{body: body, fields: fields})
	}

	for i := len(q.OrderBy) - 1; i >= 0; i-- {
		ord := q.OrderBy[i]
		sort.SliceStable(matched, func(a, b int) bool {
			less := compareField(matched[a].fields[ord.Field], matched[b].fields[ord.Field], ord.Numeric)
			if ord.Desc {
				return !less && !equalField(matched[a].fields[ord.Field], matched[b].fields[ord.Field])
			}
			return less
		})
	}

	if q.Limit > 0 && len(matched) > q.Limit {
		matched = matched[:q.Limit]
	}

	bodies := make([][]byte, 0, len(matched))
	for _, d := range matched {
		bodies = append(bodies, append([]byte(nil), d.body...))
	}
	return bodies, nil
}

func matchesFilters(fields map[string]any, filters map[string]any) bool {
	for name, want := range filters {
		got, ok := fields[name]
		if !ok {
			return false
		}
		if fmt.Sprint(got) != fmt.Sprint(want) {
			return false
		}
	}
	return true
}

func compareField(a, b any, numeric bool) bool {
	if numeric {
		return toFloat(a) < toFloat(b)
	}
	// RFC 3339 stamps with trimmed fractions do not sort lexically
	if ta, err := parseTime(a); err == nil {
		if tb, err := parseTime(b); err == nil {
			return ta.Before(tb)
		}
	}
	return fmt.Sprint(a) < fmt.Sprint(b)
}

func parseTime(v any) (time.Time, error) {
	s, ok := v.(string)
	if !ok {
		return time.Time{}, fmt.Errorf("not a string")
	}
	return time.Parse(time.RFC3339Nano, s)
}

func equalField(a, b any) bool {
	return fmt.Sprint(a) == fmt.Sprint(b)
}

func toFloat(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case string:
		f, _ := strconv.ParseFloat(n, 64)
		return f
	default:
		return 0
	}
}
