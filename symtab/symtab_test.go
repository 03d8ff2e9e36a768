package symtab_test

import (
	"testing"

	"github.com/lookbusy1344/r32asm/symtab"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefineAndLookup(t *testing.T) {
	tbl := symtab.NewTable()
	tbl.Define("main", 100, symtab.KindCode)

	sym, ok := tbl.Lookup("main")
	require.True(t, ok)
	assert.EqualValues(t, 100, sym.Value)
	assert.Equal(t, symtab.KindCode, sym.Kind)
}

func TestInsertionOrderPreserved(t *testing.T) {
	tbl := symtab.NewTable()
	tbl.Define("b", 0, symtab.KindData)
	tbl.Define("a", 4, symtab.KindData)

	all := tbl.All()
	require.Len(t, all, 2)
	assert.Equal(t, "b", all[0].Name)
	assert.Equal(t, "a", all[1].Name)
}

func TestAddICFOnlyAffectsDataSymbols(t *testing.T) {
	tbl := symtab.NewTable()
	tbl.Define("code_label", 100, symtab.KindCode)
	tbl.Define("data_label", 0, symtab.KindData)

	tbl.AddICF(108)

	code, _ := tbl.Lookup("code_label")
	data, _ := tbl.Lookup("data_label")
	assert.EqualValues(t, 100, code.Value)
	assert.EqualValues(t, 108, data.Value)
}

func TestImageRelocateData(t *testing.T) {
	img := symtab.NewImage()
	img.AppendData(&symtab.DataEntry{Address: 0, VariableSize: 4, NumVariables: 2})
	img.RelocateData(108)
	assert.EqualValues(t, 108, img.Data[0].Address)
}

func TestDataEntryDataSize(t *testing.T) {
	d := &symtab.DataEntry{VariableSize: 2, NumVariables: 3}
	assert.Equal(t, 6, d.DataSize())
}
