package levels

import (
	"fmt"
	"sort"
	"sync"
)

var (
	registered = make(map[string]Level)
	mu         sync.RWMutex
)

// Register adds a level to the built-in catalog.
// Typically called from an init() function.
// Panics if a level with the same ID is already registered or the level
// does not validate.
func Register(l Level) {
	if err := l.Validate(); err != nil {
		panic(fmt.Sprintf("levels: cannot register %q: %v", l.ID, err))
	}

	mu.Lock()
	defer mu.Unlock()

	if _, exists := registered[l.ID]; exists {
		panic(fmt.Sprintf("levels: level %q already registered", l.ID))
	}
	registered[l.ID] = l
}

// List returns all registered levels in campaign order.
func List() []Level {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]Level, 0, len(registered))
	for _, l := range registered {
		result = append(result, l)
	}
	sortLevels(result)
	return result
}

// Get returns a registered level by ID.
func Get(id string) (Level, error) {
	mu.RLock()
	defer mu.RUnlock()

	l, ok := registered[id]
	if !ok {
		return Level{}, fmt.Errorf("levels: unknown level %q", id)
	}
	return l, nil
}

// Exists checks if a level with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := registered[id]
	return ok
}

// Catalog returns the built-in levels followed by any custom levels found
// under dir. Custom levels that reuse a built-in ID are skipped.
// An empty dir yields only the built-in levels.
func Catalog(dir string) ([]Level, error) {
	all := List()
	if dir == "" {
		return all, nil
	}

	custom, err := NewLoader(dir).LoadAll()
	if err != nil {
		return nil, err
	}
	for _, l := range custom {
		if Exists(l.ID) {
			continue
		}
		all = append(all, l)
	}
	sortLevels(all)
	return all, nil
}

// Find returns the level with the given ID from a catalog slice.
func Find(all []Level, id string) (Level, bool) {
	for _, l := range all {
		if l.ID == id {
			return l, true
		}
	}
	return Level{}, false
}

func sortLevels(ls []Level) {
	sort.SliceStable(ls, func(i, j int) bool {
		if ls[i].Order != ls[j].Order {
			return ls[i].Order < ls[j].Order
		}
		return ls[i].ID < ls[j].ID
	})
}

// ByIndex returns the i-th level of a catalog slice, wrapping around in
// either direction.
func ByIndex(all []Level, i int) (Level, bool) {
	if len(all) == 0 {
		return Level{}, false
	}
	i %= len(all)
	if i < 0 {
		i += len(all)
	}
	return all[i], true
}
