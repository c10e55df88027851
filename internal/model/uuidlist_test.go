package model

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUUIDListAddRemove(t *testing.T) {
	a, b := uuid.New(), uuid.New()

	var list UUIDList
	list = list.Add(a)
	list = list.Add(a)
	assert.Len(t, list, 1, "Add is idempotent")

	list = list.Add(b)
	assert.True(t, list.Contains(a))
	assert.True(t, list.Contains(b))

	list = list.Remove(a)
	assert.False(t, list.Contains(a))
	assert.True(t, list.Contains(b))
}

func TestUUIDListRoundTripsThroughColumn(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	original := UUIDList{a, b}

	value, err := original.Value()
	require.NoError(t, err)

	var scanned UUIDList
	require.NoError(t, scanned.Scan(value))
	assert.Equal(t, original, scanned)

	var empty UUIDList
	require.NoError(t, empty.Scan(nil))
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestStringListScanRejectsUnknownType(t *testing.T) {
	var list StringList
	assert.Error(t, list.Scan(42))
}
