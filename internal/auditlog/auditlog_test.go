package auditlog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleEntries() []Entry {
	ts := time.Date(2026, 1, 15, 10, 30, 0, 0, time.UTC)
	return []Entry{
		{
			Timestamp: ts, Source: "chase_1234.csv", Action: "categorized",
			RuleID: "bank-maintenance-fee", TransactionID: "2026-01-001",
			Reference: "chase_20260115_MONTHLYMAI",
		},
		{
			Timestamp: ts.Add(time.Second), Source: "chase_1234.csv", Action: "suspense",
			TransactionID: "2026-01-002", Reference: "chase_20260115_SOMETHINGN",
		},
	}
}

func TestAppendAndRead(t *testing.T) {
	root := t.TempDir()

	require.NoError(t, Append(root, sampleEntries()))

	entries, err := Read(root)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, sampleEntries(), entries)
}

func TestAppend_AccumulatesAcrossRuns(t *testing.T) {
	root := t.TempDir()
	first := sampleEntries()

	require.NoError(t, Append(root, first[:1]))
	require.NoError(t, Append(root, first[1:]))

	entries, err := Read(root)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	// Exactly one header line regardless of run count.
	data, err := os.ReadFile(filepath.Join(root, "logs", "categorization-log.csv"))
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(string(data), "timestamp,source"))
}

func TestRead_MissingFile(t *testing.T) {
	entries, err := Read(t.TempDir())
	require.NoError(t, err)
	assert.Nil(t, entries)
}

func TestReferences(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, Append(root, sampleEntries()))

	refs, err := References(root)
	require.NoError(t, err)
	assert.Len(t, refs, 2)
	_, ok := refs["chase_20260115_MONTHLYMAI"]
	assert.True(t, ok)

	empty, err := References(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, empty)
}
