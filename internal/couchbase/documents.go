package couchbase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/couchbase/gocb/v2"
	"stealthcompany.com/maternalhealth/internal/metrics"
)

var (
	// ErrDocumentNotFound is returned when no document exists under the key
	ErrDocumentNotFound = errors.New("document not found")
	// ErrDocumentDecode is returned when a stored document cannot be decoded into the target
	ErrDocumentDecode = errors.New("document could not be decoded")
)

// DocumentManager handles keyed document reads and writes within one scope.
// Writes are never gated by the import lock: concurrent saves race and the
// last writer wins.
type DocumentManager struct {
	scope *gocb.Scope
}

// NewDocumentManager creates a new document manager
func NewDocumentManager(scope *gocb.Scope) *DocumentManager {
	return &DocumentManager{scope: scope}
}

func operationResult(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, ErrDocumentNotFound):
		return "not_found"
	default:
		return "error"
	}
}

// UpsertDocument stores data under docID, replacing any existing document
func (dm *DocumentManager) UpsertDocument(ctx context.Context, collection, docID string, data interface{}) (err error) {
	start := time.Now()
	defer func() { metrics.RecordStoreOperation(collection, "upsert", operationResult(err), start) }()

	col := dm.scope.Collection(collection)
	_, err = col.Upsert(docID, data, &gocb.UpsertOptions{Context: ctx})
	if err != nil {
		return fmt.Errorf("failed to upsert document %s: %w", docID, err)
	}

	return nil
}

// GetDocument retrieves the document under docID and decodes it into result
func (dm *DocumentManager) GetDocument(ctx context.Context, collection, docID string, result interface{}) (err error) {
	start := time.Now()
	defer func() { metrics.RecordStoreOperation(collection, "get", operationResult(err), start) }()

	col := dm.scope.Collection(collection)
	resultDoc, err := col.Get(docID, &gocb.GetOptions{Context: ctx})
	if err != nil {
		if errors.Is(err, gocb.ErrDocumentNotFound) {
			return fmt.Errorf("%s/%s: %w", collection, docID, ErrDocumentNotFound)
		}
		return fmt.Errorf("failed to get document %s: %w", docID, err)
	}

	err = resultDoc.Content(result)
	if err != nil {
		return fmt.Errorf("%w: %s/%s: %v", ErrDocumentDecode, collection, docID, err)
	}

	return nil
}
