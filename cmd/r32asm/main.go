// Command r32asm translates one or more .asm source files into their
// .ob/.ext/.ent object artifacts (spec.md §6).
package main

import (
	"fmt"
	"os"

	"github.com/lookbusy1344/r32asm/assembler"
	"github.com/lookbusy1344/r32asm/config"
	"github.com/lookbusy1344/r32asm/emitter"
	"github.com/lookbusy1344/r32asm/srcline"
)

func main() {
	args := os.Args[1:]

	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "Missing input files")
		os.Exit(0)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		cfg = config.DefaultConfig()
	}

	for _, path := range args {
		ok := assembleOne(path, cfg)
		if !ok && cfg.Diagnostics.StopOnFirstFile {
			break
		}
	}
}

// assembleOne assembles one source file and returns whether it succeeded.
func assembleOne(path string, cfg *config.Config) bool {
	raw, err := os.ReadFile(path) // #nosec G304 -- path is an explicit CLI argument
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error! file '%s': %v.\n", path, err)
		return false
	}

	lines := srcline.SplitN(string(raw), cfg.Assembly.MaxLineLength)
	pipeline := assembler.New(path, lines)
	pipeline.IC = cfg.Assembly.CodeOrigin
	pipeline.MaxLabelLength = cfg.Assembly.MaxLabelLength
	pipeline.WarnOnExternShadow = cfg.Diagnostics.WarnOnExternShadow

	if !pipeline.Assemble() {
		pipeline.Errors.Print(os.Stderr)
		return false
	}

	opts := emitter.WriteOptions{
		Directory:  cfg.Output.Directory,
		EmitObject: cfg.Output.EmitObject,
		EmitExtern: cfg.Output.EmitExtern,
		EmitEntry:  cfg.Output.EmitEntry,
	}
	if err := emitter.Write(path, cfg.Assembly.CodeOrigin, pipeline.ICF, pipeline.DCF, pipeline.Image, opts); err != nil {
		fmt.Fprintf(os.Stderr, "Error! file '%s': %v.\n", path, err)
		return false
	}
	return true
}
