// Command gcnspvc drives a translator.Translator run from a JSON
// shader manifest instead of a real GCN shader binary — manifest.go's
// own substitute for the external GCN decoder and analysis pass
// (spec.md §1, SPEC_FULL.md §8). It is not part of the translation
// core; it exists so the core can be exercised end to end from the
// command line and from tests.
package main

import (
	"context"
	"fmt"
	"os"

	"nikand.dev/go/cli"
	"tlog.app/go/errors"
	"tlog.app/go/tlog"

	"github.com/gogpu/gcnspv/translator"
)

func main() {
	compileCmd := &cli.Command{
		Name:        "compile",
		Description: "translate a JSON shader manifest to a SPIR-V binary",
		Action:      compileAct,
		Args:        cli.Args{},
	}

	summaryCmd := &cli.Command{
		Name:        "disasm-summary",
		Description: "translate a JSON shader manifest and print an opcode-count summary of the result",
		Action:      summaryAct,
		Args:        cli.Args{},
	}

	app := &cli.Command{
		Name:        "gcnspvc",
		Description: "translates decoded GCN shader instructions to a SPIR-V module",
		Commands: []*cli.Command{
			compileCmd,
			summaryCmd,
		},
	}

	cli.RunAndExit(app, os.Args, os.Environ())
}

// compileAct reads one manifest file per argument and writes the
// resulting SPIR-V binary next to it with a .spv extension, or to
// stdout when a single "-" argument is given.
func compileAct(c *cli.Command) (err error) {
	ctx := context.Background()
	ctx = tlog.ContextWithSpan(ctx, tlog.Root())

	for _, path := range c.Args {
		spv, err := compileManifestFile(ctx, path)
		if err != nil {
			return errors.Wrap(err, "compile %v", path)
		}

		if path == "-" {
			if _, err := os.Stdout.Write(spv); err != nil {
				return errors.Wrap(err, "write stdout")
			}
			continue
		}

		out := path + ".spv"
		if err := os.WriteFile(out, spv, 0o644); err != nil {
			return errors.Wrap(err, "write %v", out)
		}
		fmt.Fprintf(os.Stderr, "%s: wrote %d bytes to %s\n", path, len(spv), out)
	}

	return nil
}

// summaryAct compiles each manifest and prints the module's size in
// bytes, its id bound, and how many instructions of each opcode it
// produced, a quick sanity check that doesn't require a full
// disassembler.
func summaryAct(c *cli.Command) (err error) {
	ctx := context.Background()
	ctx = tlog.ContextWithSpan(ctx, tlog.Root())

	for _, path := range c.Args {
		spv, err := compileManifestFile(ctx, path)
		if err != nil {
			return errors.Wrap(err, "compile %v", path)
		}

		summary, err := summarizeModule(spv)
		if err != nil {
			return errors.Wrap(err, "summarize %v", path)
		}
		fmt.Printf("%s: %s\n", path, summary)
	}

	return nil
}

func compileManifestFile(ctx context.Context, path string) ([]byte, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read manifest")
	}

	programInfo, analysis, shaderInput, instructions, err := parseManifest(raw)
	if err != nil {
		return nil, err
	}

	t := translator.New(ctx, programInfo, analysis, shaderInput)
	for _, ins := range instructions {
		t.Process(ctx, ins)
	}

	return t.Finalize(ctx)
}
