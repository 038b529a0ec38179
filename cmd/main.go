// CLI entry point for sunc, per spec.md §6: "compile <PATH> [--crate-name
// NAME]". Grounded on the teacher's cmd/main.go phase-banner style, wired
// to github.com/spf13/cobra for flag parsing per SPEC_FULL.md's Ambient
// Stack section (the one real dependency in the example pack's
// conneroisu-gix/go.mod that no repo in the pack actually exercises yet).
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sunshine-lang/sunc/internal/ast"
	"github.com/sunshine-lang/sunc/internal/diag"
	"github.com/sunshine-lang/sunc/internal/hir"
	"github.com/sunshine-lang/sunc/internal/itemtable"
	"github.com/sunshine-lang/sunc/internal/parser"
	"github.com/sunshine-lang/sunc/internal/source"
	"github.com/sunshine-lang/sunc/internal/token"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "sunc",
		Short:         "sunc compiles a sunshine crate's front end",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newCompileCmd())
	return root
}

func newCompileCmd() *cobra.Command {
	var crateName string
	var dumpAST bool
	cmd := &cobra.Command{
		Use:   "compile <PATH>",
		Short: "lex, parse, and lower a crate's root file to HIR",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			if crateName == "" {
				crateName = defaultCrateName(path)
			}
			exitCode := compile(cmd.OutOrStdout(), path, crateName, dumpAST)
			if exitCode != 0 {
				os.Exit(exitCode)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&crateName, "crate-name", "", "crate name (defaults to the root file's base name)")
	cmd.Flags().BoolVar(&dumpAST, "dump-ast", false, "print the root file's AST instead of the item table")
	return cmd
}

// defaultCrateName derives a crate name from the root file's base name
// when --crate-name is omitted, e.g. "src/main.sun" -> "main".
func defaultCrateName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// compile runs the full pipeline described by spec.md §6's exposed
// surfaces (SourceMap -> Parser -> ItemTable -> hir.Builder) and prints
// either the pretty-printed item table or the accumulated diagnostics,
// per §6's CLI contract: "Output on success is the pretty-printed item
// table" and "Exit codes: 0 on success including when only warnings are
// reported; non-zero on any Deny-severity error."
func compile(out io.Writer, path string, crateName string, dumpAST bool) int {
	reporter := diag.NewReporter()

	srcMap, rootFile, err := source.NewMap(path, crateName)
	if err != nil {
		if ce, ok := err.(diag.CompilerError); ok {
			reporter.ReportErr(ce, token.Span{}, path)
		}
		fmt.Fprint(out, reporter.String())
		return 1
	}

	text, err := rootFile.Read()
	if err != nil {
		if ce, ok := err.(diag.CompilerError); ok {
			reporter.ReportErr(ce, token.Span{}, path)
		}
		fmt.Fprint(out, reporter.String())
		return 1
	}

	table := itemtable.New()
	p := parser.NewParser(reporter, table, srcMap, crateName)
	crate := p.ParseCrate(text)

	builder := hir.NewBuilder(reporter, crateName)
	builder.Populate(table)
	builder.Build()

	if reporter.CompilationFailed() {
		fmt.Fprint(out, reporter.String())
		return 1
	}

	if dumpAST {
		fmt.Fprint(out, ast.PrettyPrint(crate))
	} else {
		fmt.Fprint(out, table.Pretty())
	}
	if len(reporter.Diagnostics()) > 0 {
		fmt.Fprint(out, reporter.String())
	}
	return 0
}
