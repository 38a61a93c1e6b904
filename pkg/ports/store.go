package ports

import "context"

// DocumentSource defines where record documents are read from.
type DocumentSource interface {
	// Get returns the document text stored under key.
	// Returns domain.ErrDocumentNotFound if the key does not exist.
	Get(ctx context.Context, key string) (string, error)

	// List returns every available key, sorted.
	List(ctx context.Context) ([]string, error)
}

// DocumentStore is a DocumentSource that can be written to.
type DocumentStore interface {
	DocumentSource

	// Put stores text under key, replacing any previous document.
	Put(ctx context.Context, key, text string) error

	// Delete removes the document stored under key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}
