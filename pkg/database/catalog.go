package database

import (
	"fmt"
	"sort"
	"sync"

	"github.com/bisegni/eatable/pkg/table"
)

// Catalog manages a collection of named tables.
//
// The lock guards the name map only. A *table.Table handed out by GetTable
// has no locking of its own; callers that mutate it from several goroutines
// must serialize those calls.
type Catalog struct {
	tables map[string]*table.Table
	mu     sync.RWMutex
}

// NewCatalog creates a new empty catalog
func NewCatalog() *Catalog {
	return &Catalog{
		tables: make(map[string]*table.Table),
	}
}

// RegisterTable adds a table to the catalog, replacing any table with the same name
func (c *Catalog) RegisterTable(name string, t *table.Table) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tables[name] = t
}

// GetTable retrieves a table by name
func (c *Catalog) GetTable(name string) (*table.Table, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	t, ok := c.tables[name]
	if !ok {
		return nil, fmt.Errorf("table '%s' not found", name)
	}
	return t, nil
}

// Drop removes a table. It reports whether the table existed.
func (c *Catalog) Drop(name string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.tables[name]
	delete(c.tables, name)
	return ok
}

// Names returns the registered table names in sorted order
func (c *Catalog) Names() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	names := make([]string, 0, len(c.tables))
	for name := range c.tables {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
