package db

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// idString renders an IDKey value the way the backends report inserted ids.
func idString(v any) string {
	if h, ok := v.(interface{ Hex() string }); ok {
		return h.Hex()
	}
	return fmt.Sprint(v)
}

// runStoreTests runs the common behaviour checks against an empty Store.
func runStoreTests(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()

	t.Run("FindOnEmptyCollection", func(t *testing.T) {
		docs, err := s.Find(ctx, "horse", nil, 10)
		require.NoError(t, err)
		assert.NotNil(t, docs)
		assert.Empty(t, docs)
	})

	t.Run("InsertReturnsDistinctIDs", func(t *testing.T) {
		fields := map[string]any{"name": "Anna", "email": "a@b.com", "subject": "Hi", "message": "Hello", "lang": "hu"}

		first, err := s.Insert(ctx, "contactmessage", fields)
		require.NoError(t, err)
		second, err := s.Insert(ctx, "contactmessage", fields)
		require.NoError(t, err)

		assert.NotEmpty(t, first)
		assert.NotEmpty(t, second)
		assert.NotEqual(t, first, second)

		docs, err := s.Find(ctx, "contactmessage", nil, 10)
		require.NoError(t, err)
		require.Len(t, docs, 2)

		ids := map[string]bool{}
		for _, d := range docs {
			ids[idString(d[IDKey])] = true
			assert.Equal(t, "Anna", d["name"])
		}
		assert.True(t, ids[first])
		assert.True(t, ids[second])
	})

	require.NoError(t, LoadTestData(ctx, s))

	t.Run("FindWithoutFilterRespectsLimit", func(t *testing.T) {
		docs, err := s.Find(ctx, "review", Filter{}, 2)
		require.NoError(t, err)
		assert.Len(t, docs, 2)

		docs, err = s.Find(ctx, "review", nil, 50)
		require.NoError(t, err)
		assert.Len(t, docs, 3)
	})

	t.Run("FindWithLangFilter", func(t *testing.T) {
		docs, err := s.Find(ctx, "review", Filter{"lang": "en"}, 10)
		require.NoError(t, err)
		require.Len(t, docs, 2)
		for _, d := range docs {
			assert.Equal(t, "en", d["lang"])
			assert.NotEmpty(t, idString(d[IDKey]))
		}

		docs, err = s.Find(ctx, "review", Filter{"lang": "de"}, 10)
		require.NoError(t, err)
		assert.Empty(t, docs)
	})

	t.Run("FindWithNonPositiveLimit", func(t *testing.T) {
		for _, limit := range []int{0, -5} {
			docs, err := s.Find(ctx, "horse", nil, limit)
			require.NoError(t, err)
			assert.NotNil(t, docs)
			assert.Empty(t, docs)
		}
	})

	t.Run("FindKeepsNumericValues", func(t *testing.T) {
		docs, err := s.Find(ctx, "review", Filter{"name": "Jakab"}, 1)
		require.NoError(t, err)
		require.Len(t, docs, 1)
		assert.EqualValues(t, 4, docs[0]["rating"])
	})

	t.Run("Collections", func(t *testing.T) {
		names, err := s.Collections(ctx)
		require.NoError(t, err)
		assert.Subset(t, names, []string{"contactmessage", "horse", "newspost", "review"})
	})

	t.Run("Ping", func(t *testing.T) {
		assert.NoError(t, s.Ping(ctx))
	})
}
