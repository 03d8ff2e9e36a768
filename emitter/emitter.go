// Package emitter serialises the code image, data image, and attributes
// table of a successfully assembled unit into the `.ob`, `.ext`, `.ent`
// file formats of spec.md §6.
//
// Grounded on the original implementation's createOutputFiles (original_source/src/createOutputFiles.c)
// for the line formats, and on the teacher's own emission helpers
// (encoder/encoder.go) for little-endian byte layout — reimplemented here
// against bufio.Writer rather than C's fprintf, matching the buffered-write
// style the teacher uses when writing its own trace output.
package emitter

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/lookbusy1344/r32asm/encode"
	"github.com/lookbusy1344/r32asm/symtab"
)

// OutputPaths derives the .ob/.ext/.ent paths from a source path stem by
// stripping the longest suffix from the final '.' onward (spec.md §6).
func OutputPaths(sourcePath string) (ob, ext, ent string) {
	stem := sourcePath
	if idx := strings.LastIndex(sourcePath, "."); idx >= 0 {
		stem = sourcePath[:idx]
	}
	return stem + ".ob", stem + ".ext", stem + ".ent"
}

// WriteOptions gates which output files Write produces and where, mirroring
// config.Config.Output.
type WriteOptions struct {
	Directory  string // empty means alongside the source file
	EmitObject bool
	EmitExtern bool
	EmitEntry  bool
}

// DefaultWriteOptions emits every file alongside the source, matching
// spec.md §6's default behaviour.
func DefaultWriteOptions() WriteOptions {
	return WriteOptions{EmitObject: true, EmitExtern: true, EmitEntry: true}
}

// Write emits the .ob file (when there is at least one code or data entry
// and opts.EmitObject) and the .ext/.ent files (only when the attributes
// table is non-empty and the corresponding opts flag is set; each is still
// created with zero rows of its own kind if the other kind has rows).
func Write(sourcePath string, origin, icf, dcf int64, image *symtab.Image, opts WriteOptions) error {
	obPath, extPath, entPath := OutputPaths(sourcePath)
	if opts.Directory != "" {
		obPath = filepath.Join(opts.Directory, filepath.Base(obPath))
		extPath = filepath.Join(opts.Directory, filepath.Base(extPath))
		entPath = filepath.Join(opts.Directory, filepath.Base(entPath))
	}

	if opts.EmitObject && (len(image.Code) > 0 || len(image.Data) > 0) {
		if err := writeObject(obPath, origin, icf, dcf, image); err != nil {
			return err
		}
	}

	if len(image.Attributes) == 0 {
		return nil
	}

	if opts.EmitExtern {
		if err := writeNamedAddresses(extPath, image.Attributes, symtab.AttrExternal); err != nil {
			return err
		}
	}
	if opts.EmitEntry {
		if err := writeNamedAddresses(entPath, image.Attributes, symtab.AttrEntry); err != nil {
			return err
		}
	}
	return nil
}

func writeObject(path string, origin, icf, dcf int64, image *symtab.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	fmt.Fprintf(w, "%d %d\n", icf-origin, dcf)

	for _, c := range image.Code {
		b := encode.ToBytesLE(c.Data)
		writeMemoryLine(w, int64(c.Address), b[:])
	}

	writeDataLines(w, icf, image.Data)

	return w.Flush()
}

// writeDataLines packs the data image 4 bytes per line in address order,
// starting a new line whenever the running byte count reaches a multiple
// of 4 (spec.md §6). The final line may hold fewer than 4 bytes.
func writeDataLines(w io.Writer, icf int64, entries []*symtab.DataEntry) {
	var pending []byte
	lineAddr := icf
	addr := icf

	flush := func() {
		if len(pending) == 0 {
			return
		}
		writeMemoryLine(w, lineAddr, pending)
		pending = pending[:0]
	}

	for _, d := range entries {
		for _, b := range d.Data {
			if len(pending) == 0 {
				lineAddr = addr
			}
			pending = append(pending, b)
			addr++
			if len(pending) == 4 {
				flush()
			}
		}
	}
	flush()
}

func writeMemoryLine(w io.Writer, addr int64, data []byte) {
	fmt.Fprintf(w, "%04d", addr)
	for _, b := range data {
		fmt.Fprintf(w, " %02X", b)
	}
	fmt.Fprint(w, "\n")
}

func writeNamedAddresses(path string, attrs []*symtab.Attribute, kind symtab.AttributeKind) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for _, a := range attrs {
		if a.Kind != kind {
			continue
		}
		fmt.Fprintf(w, "%s %04d\n", a.Name, a.Address)
	}
	return w.Flush()
}
