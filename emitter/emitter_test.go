package emitter_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/lookbusy1344/r32asm/assembler"
	"github.com/lookbusy1344/r32asm/emitter"
	"github.com/lookbusy1344/r32asm/srcline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOutputPaths(t *testing.T) {
	ob, ext, ent := emitter.OutputPaths("foo/bar.asm")
	assert.Equal(t, "foo/bar.ob", ob)
	assert.Equal(t, "foo/bar.ext", ext)
	assert.Equal(t, "foo/bar.ent", ent)
}

// spec.md §8 scenario 1
func TestWrite_AddAndStop(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "main.asm")
	require.NoError(t, os.WriteFile(src, []byte("main: add $1, $2, $3\nstop\n"), 0644))

	p := assembler.New(src, srcline.Split("main: add $1, $2, $3\nstop\n"))
	require.True(t, p.Assemble())
	require.NoError(t, emitter.Write(src, 100, p.ICF, p.DCF, p.Image, emitter.DefaultWriteOptions()))

	obPath, _, _ := emitter.OutputPaths(src)
	data, err := os.ReadFile(obPath)
	require.NoError(t, err)
	assert.Equal(t, "8 0\n0100 40 18 22 00\n0104 00 00 00 FC\n", string(data))
}

// spec.md §8 scenario 2
func TestWrite_DwAndEntry(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "x.asm")
	source := "x: .dw 5, -1\n.entry x\n"
	require.NoError(t, os.WriteFile(src, []byte(source), 0644))

	p := assembler.New(src, srcline.Split(source))
	require.True(t, p.Assemble())
	require.NoError(t, emitter.Write(src, 100, p.ICF, p.DCF, p.Image, emitter.DefaultWriteOptions()))

	obPath, _, entPath := emitter.OutputPaths(src)
	ob, err := os.ReadFile(obPath)
	require.NoError(t, err)
	assert.Equal(t, "0 8\n0100 05 00 00 00\n0104 FF FF FF FF\n", string(ob))

	ent, err := os.ReadFile(entPath)
	require.NoError(t, err)
	assert.Equal(t, "x 0100\n", string(ent))
}

// spec.md §8 scenario 3
func TestWrite_ExternReference(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "y.asm")
	source := ".extern foo\nla foo\nstop\n"
	require.NoError(t, os.WriteFile(src, []byte(source), 0644))

	p := assembler.New(src, srcline.Split(source))
	require.True(t, p.Assemble())
	require.NoError(t, emitter.Write(src, 100, p.ICF, p.DCF, p.Image, emitter.DefaultWriteOptions()))

	_, extPath, _ := emitter.OutputPaths(src)
	ext, err := os.ReadFile(extPath)
	require.NoError(t, err)
	assert.Equal(t, "foo 0100\n", string(ext))
}
