package repo

import (
	"context"
	"slices"
	"sync"

	"github.com/sme-marketplace/server/internal/marketplace/model"
)

// MemorySelectionRepository keeps selections in process memory. It is used
// when no Redis URL is configured; nothing survives a restart.
type MemorySelectionRepository struct {
	mu         sync.RWMutex
	bookmarks  map[string]map[string]struct{}
	comparison map[string][]string
}

func NewMemorySelectionRepository() *MemorySelectionRepository {
	return &MemorySelectionRepository{
		bookmarks:  make(map[string]map[string]struct{}),
		comparison: make(map[string][]string),
	}
}

func memoryKey(owner string, category model.Category) string {
	return owner + "|" + category.String()
}

func (m *MemorySelectionRepository) AddBookmark(_ context.Context, owner string, category model.Category, itemID string) error {
	if err := checkArgs(owner, category); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	key := memoryKey(owner, category)
	set, ok := m.bookmarks[key]
	if !ok {
		set = make(map[string]struct{})
		m.bookmarks[key] = set
	}
	set[itemID] = struct{}{}
	return nil
}

func (m *MemorySelectionRepository) RemoveBookmark(_ context.Context, owner string, category model.Category, itemID string) error {
	if err := checkArgs(owner, category); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.bookmarks[memoryKey(owner, category)], itemID)
	return nil
}

func (m *MemorySelectionRepository) ListBookmarks(_ context.Context, owner string, category model.Category) ([]string, error) {
	if err := checkArgs(owner, category); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	ids := make([]string, 0, len(m.bookmarks[memoryKey(owner, category)]))
	for id := range m.bookmarks[memoryKey(owner, category)] {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids, nil
}

func (m *MemorySelectionRepository) SetComparison(_ context.Context, owner string, category model.Category, itemIDs []string) error {
	if err := checkArgs(owner, category); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.comparison[memoryKey(owner, category)] = comparisonIDs(itemIDs)
	return nil
}

func (m *MemorySelectionRepository) LoadComparison(_ context.Context, owner string, category model.Category) ([]string, error) {
	if err := checkArgs(owner, category); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	ids := slices.Clone(m.comparison[memoryKey(owner, category)])
	if ids == nil {
		ids = []string{}
	}
	return ids, nil
}

var _ model.SelectionRepository = (*MemorySelectionRepository)(nil)
