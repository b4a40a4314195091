package couchbase

import "context"

// Client represents a Couchbase client that orchestrates all operations
type Client struct {
	connManager *ConnectionManager
	docManager  *DocumentManager
	locker      *DatabaseLocker
}

// NewClient connects using cfg and wires the document manager and locker
func NewClient(cfg Config) (*Client, error) {
	connManager, err := NewConnectionManager(cfg)
	if err != nil {
		return nil, err
	}

	locker := NewDatabaseLocker(connManager.GetBucket())
	docManager := NewDocumentManager(connManager.GetScope())

	return &Client{
		connManager: connManager,
		docManager:  docManager,
		locker:      locker,
	}, nil
}

// Close closes the Couchbase connection
func (c *Client) Close() error {
	return c.connManager.Close()
}

// GetLocker returns the database locker
func (c *Client) GetLocker() *DatabaseLocker {
	return c.locker
}

// UpsertDocument stores or replaces a document
func (c *Client) UpsertDocument(ctx context.Context, collection, docID string, data interface{}) error {
	return c.docManager.UpsertDocument(ctx, collection, docID, data)
}

// GetDocument retrieves a document
func (c *Client) GetDocument(ctx context.Context, collection, docID string, result interface{}) error {
	return c.docManager.GetDocument(ctx, collection, docID, result)
}
