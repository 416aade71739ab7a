package survey

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCache(t *testing.T) {
	loads := 0
	loader := func() ([]FieldDefinition, error) {
		loads++
		return []FieldDefinition{TextField(SectionPersonal, "date", "Date", true, false)}, nil
	}

	c := NewCache(loader, time.Minute)

	fields, err := c.Fields()
	require.NoError(t, err)
	require.Len(t, fields, 1)

	_, err = c.Fields()
	require.NoError(t, err)
	assert.Equal(t, 1, loads, "second read within TTL is served from cache")

	c.Invalidate()
	_, err = c.Fields()
	require.NoError(t, err)
	assert.Equal(t, 2, loads, "invalidation forces a reload")
}

func TestCacheEmptyStoreFallsBackToDefaults(t *testing.T) {
	c := NewCache(func() ([]FieldDefinition, error) { return nil, nil }, time.Minute)
	fields, err := c.Fields()
	require.NoError(t, err)
	assert.Equal(t, len(DefaultFields()), len(fields))
}

func TestCacheKeepsStaleEntryOnLoadError(t *testing.T) {
	calls := 0
	c := NewCache(func() ([]FieldDefinition, error) {
		calls++
		if calls > 1 {
			return nil, errors.New("store down")
		}
		return []FieldDefinition{TextField(SectionPersonal, "date", "Date", true, false)}, nil
	}, time.Minute)

	_, err := c.Fields()
	require.NoError(t, err)

	c.Invalidate()
	fields, err := c.Fields()
	require.NoError(t, err, "stale entry keeps serving when the reload fails")
	assert.Len(t, fields, 1)
}
