package dataset

import "context"

// Source supplies row tables from whatever storage the dataset builder wrote
// them to. Implementations return typed rows only; they never interpret them.
type Source interface {
	// FolderIDs lists every folder id present in the beatmaps table, sorted.
	FolderIDs(ctx context.Context) ([]string, error)

	// LoadFolder loads all rows belonging to one folder. Loading per folder
	// keeps peak memory bounded when batch-processing large datasets.
	LoadFolder(ctx context.Context, folderID string) (*Dataset, error)

	Close(ctx context.Context) error
}
