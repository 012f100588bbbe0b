package safety

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookup(t *testing.T) {
	rec := Lookup("fitzroy")
	require.NotNil(t, rec)
	assert.Equal(t, 65.0, rec.SafetyPct)
	assert.Equal(t, "2024-05-15", rec.Date)

	assert.Nil(t, Lookup("nowhere"))
}

func TestSnapshotIsACopy(t *testing.T) {
	snap := Snapshot()
	require.Contains(t, snap, "carlton")
	snap["carlton"] = Record{SafetyPct: 1, Date: "x"}

	again := Lookup("carlton")
	require.NotNil(t, again)
	assert.Equal(t, 70.0, again.SafetyPct)
}
