package tablestore_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tablewright/tablewright/automaton"
	"github.com/tablewright/tablewright/grammar"
	"github.com/tablewright/tablewright/internal/demogrammar"
	"github.com/tablewright/tablewright/internal/tablestore"
	"github.com/tablewright/tablewright/lrtable"
	"github.com/tablewright/tablewright/parse"
)

func TestStore_PutGetRoundTrip(t *testing.T) {
	g, err := demogrammar.BuildArithmetic()
	require.NoError(t, err)
	aut, err := automaton.Build(g)
	require.NoError(t, err)
	table, err := lrtable.Build(aut, g)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "cache.db")
	store, err := tablestore.Open(path)
	require.NoError(t, err)
	defer store.Close()

	require.NoError(t, store.Put("arithmetic-v1", 1700000000, table, aut))

	gotTable, gotAut, ok, err := store.Get("arithmetic-v1", g)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, aut.Len(), gotAut.Len())
	assert.Equal(t, table.NumStates(), gotTable.NumStates())

	// a driver built over the rehydrated table must parse identically to
	// one built over the freshly computed table.
	d := parse.New(gotTable, g)
	accepted, err := d.ReadToken(grammar.NewValue(demogrammar.ArithID, "7"))
	require.NoError(t, err)
	assert.False(t, accepted)
	accepted, err = d.ReadToken(grammar.NewValue(demogrammar.ArithDollar, nil))
	require.NoError(t, err)
	assert.True(t, accepted)

	val, err := d.Result()
	require.NoError(t, err)
	assert.Equal(t, 7, val.Data)
}

func TestStore_GetMissReportsNotOK(t *testing.T) {
	g, err := demogrammar.BuildArithmetic()
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "cache.db")
	store, err := tablestore.Open(path)
	require.NoError(t, err)
	defer store.Close()

	_, _, ok, err := store.Get("does-not-exist", g)
	require.NoError(t, err)
	assert.False(t, ok)
}
