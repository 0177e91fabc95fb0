package db

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Nothing listens on port 1, so every round trip fails fast.
const unreachableMongo = "mongodb://127.0.0.1:1/?serverSelectionTimeoutMS=200&connectTimeoutMS=200"

func TestNewMongoStore_Unreachable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	s, err := NewMongoStore(ctx, unreachableMongo, "taltos", DiscardLogger())
	require.NoError(t, err)
	require.NotNil(t, s)
	t.Cleanup(func() { _ = s.Close() })

	pingCtx, pingCancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer pingCancel()

	err = s.Ping(pingCtx)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnavailable))
}

func TestOpen_MongoUnreachable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	s, err := Open(ctx, Options{Backend: BackendMongo, URL: unreachableMongo, Name: "taltos"}, DiscardLogger())
	require.NoError(t, err)
	require.NotNil(t, s)
	assert.NoError(t, s.Close())
}

func TestNewMongoStore_BadURI(t *testing.T) {
	s, err := NewMongoStore(context.Background(), "http://not-mongo", "taltos", DiscardLogger())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnavailable))
	assert.Nil(t, s)
}
