package storage

import (
	"context"

	"github.com/adfharrison1/protondb/pkg/domain"
)

// streamBuffer is the channel capacity used by StreamDocuments
const streamBuffer = 100

// StreamDocuments yields the documents matching filter in collection order.
// The collection is read before returning so lookup errors surface
// immediately. The channel is closed when all matches are sent or ctx is done.
func (se *StorageEngine) StreamDocuments(ctx context.Context, dbName, collName string, filter domain.Filter) (<-chan domain.Document, error) {
	docs, _, err := se.loadCollection(dbName, collName)
	if err != nil {
		return nil, err
	}

	out := make(chan domain.Document, streamBuffer)
	go func() {
		defer close(out)
		for _, doc := range docs {
			if !Matches(doc, filter) {
				continue
			}
			select {
			case out <- doc:
			case <-ctx.Done():
				se.debugf("Stream of '%s.%s' cancelled: %v", dbName, collName, ctx.Err())
				return
			}
		}
	}()
	return out, nil
}
