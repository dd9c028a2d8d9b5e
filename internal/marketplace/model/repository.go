package model

import "context"

// MaxCompareItems is the largest number of items shown side by side.
const MaxCompareItems = 3

// SelectionRepository persists a visitor's bookmarks and comparison picks.
// It is a collaborator of the catalog core, which never calls it itself.
type SelectionRepository interface {
	// AddBookmark bookmarks an item for the owner within a category.
	AddBookmark(ctx context.Context, owner string, category Category, itemID string) error

	// RemoveBookmark removes a bookmark; removing a missing bookmark is not an error.
	RemoveBookmark(ctx context.Context, owner string, category Category, itemID string) error

	// ListBookmarks returns the bookmarked item ids, sorted.
	ListBookmarks(ctx context.Context, owner string, category Category) ([]string, error)

	// SetComparison replaces the comparison picks; at most MaxCompareItems are kept.
	SetComparison(ctx context.Context, owner string, category Category, itemIDs []string) error

	// LoadComparison returns the comparison picks in the order they were set.
	LoadComparison(ctx context.Context, owner string, category Category) ([]string, error)
}
