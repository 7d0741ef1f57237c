package storage

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/adfharrison1/protondb/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStorageEngine_StreamDocuments_Basic(t *testing.T) {
	engine := newTestEngine(t)
	newTestCollection(t, engine, "shop", "users",
		`[{"name":"Alice","age":30},{"name":"Bob","age":25},{"name":"Charlie","age":35}]`)

	docChan, err := engine.StreamDocuments(context.Background(), "shop", "users", domain.MatchAll())
	require.NoError(t, err)

	var names []string
	for doc := range docChan {
		names = append(names, doc["name"].(string))
	}
	assert.Equal(t, []string{"Alice", "Bob", "Charlie"}, names)
}

func TestStorageEngine_StreamDocuments_Filter(t *testing.T) {
	engine := newTestEngine(t)
	newTestCollection(t, engine, "shop", "users",
		`[{"name":"Alice","age":30},{"name":"Bob","age":25},{"name":"Charlie","age":35}]`)

	docChan, err := engine.StreamDocuments(context.Background(), "shop", "users",
		domain.Filter{Key: "age", Value: "30", Condition: domain.ConditionGreaterThanEqual})
	require.NoError(t, err)

	var names []string
	for doc := range docChan {
		names = append(names, doc["name"].(string))
	}
	assert.Equal(t, []string{"Alice", "Charlie"}, names)
}

func TestStorageEngine_StreamDocuments_EmptyCollection(t *testing.T) {
	engine := newTestEngine(t)
	newTestCollection(t, engine, "shop", "empty", "")

	docChan, err := engine.StreamDocuments(context.Background(), "shop", "empty", domain.MatchAll())
	require.NoError(t, err)

	count := 0
	for range docChan {
		count++
	}
	assert.Zero(t, count)
}

func TestStorageEngine_StreamDocuments_MissingCollection(t *testing.T) {
	engine := newTestEngine(t)
	require.NoError(t, engine.CreateDatabase("shop"))

	docChan, err := engine.StreamDocuments(context.Background(), "shop", "ghost", domain.MatchAll())
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Nil(t, docChan)
}

func TestStorageEngine_StreamDocuments_Cancel(t *testing.T) {
	engine := newTestEngine(t)
	newTestCollection(t, engine, "shop", "items", "")

	var payload strings.Builder
	payload.WriteString("[")
	for i := 0; i < 500; i++ {
		if i > 0 {
			payload.WriteString(",")
		}
		fmt.Fprintf(&payload, `{"i":%d}`, i)
	}
	payload.WriteString("]")
	_, err := engine.InsertDocuments("shop", "items", []byte(payload.String()))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	docChan, err := engine.StreamDocuments(ctx, "shop", "items", domain.MatchAll())
	require.NoError(t, err)

	<-docChan
	cancel()

	// the producer must stop and close the channel without the consumer draining everything
	done := make(chan int)
	go func() {
		received := 1
		for range docChan {
			received++
		}
		done <- received
	}()

	select {
	case received := <-done:
		assert.LessOrEqual(t, received, 500)
	case <-time.After(5 * time.Second):
		t.Fatal("stream was not closed after cancellation")
	}
}
