package main

import (
	"encoding/json"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/hooksett/internal/scan"
	"github.com/aretw0/hooksett/pkg/domain"
)

var (
	scanFormat  string
	scanSnippet bool
)

var scanCmd = &cobra.Command{
	Use:   "scan [paths...]",
	Short: "List tracked local declarations in Go source",
	Long: `Scan parses Go files and reports every local variable declared through
a role constructor, with its name, role and position. With --snippet it reads
a bare function body or whole file from stdin instead of paths.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if scanSnippet {
			return runScanSnippet(cmd.OutOrStdout(), cmd.InOrStdin())
		}
		if len(args) == 0 {
			return fmt.Errorf("no paths given (or use --snippet for stdin)")
		}
		return runScanPaths(cmd.OutOrStdout(), args)
	},
}

func init() {
	scanCmd.Flags().StringVar(&scanFormat, "format", "text", "Output format: text or json")
	scanCmd.Flags().BoolVar(&scanSnippet, "snippet", false, "Read a code snippet from stdin")
	rootCmd.AddCommand(scanCmd)
}

// declReport is the JSON shape of one found declaration.
type declReport struct {
	Name       string `json:"name"`
	Role       string `json:"role"`
	Func       string `json:"func,omitempty"`
	File       string `json:"file,omitempty"`
	Line       int    `json:"line"`
	HasDefault bool   `json:"has_default"`
}

func runScanSnippet(out io.Writer, in io.Reader) error {
	src, err := io.ReadAll(in)
	if err != nil {
		return fmt.Errorf("read stdin: %w", err)
	}
	decls, err := scan.New(scan.WithLogger(logger())).ScanSnippet(domain.Default(), string(src))
	if err != nil {
		return err
	}
	return render(out, decls)
}

func runScanPaths(out io.Writer, paths []string) error {
	scanner := scan.New(scan.WithLogger(logger()))
	var decls []scan.Decl

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return err
		}
		if !info.IsDir() {
			found, err := scanner.ScanFile(domain.Default(), path)
			if err != nil {
				return err
			}
			decls = append(decls, found...)
			continue
		}
		err = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() || !strings.HasSuffix(p, ".go") || strings.HasSuffix(p, "_test.go") {
				return nil
			}
			found, err := scanner.ScanFile(domain.Default(), p)
			if err != nil {
				return err
			}
			decls = append(decls, found...)
			return nil
		})
		if err != nil {
			return err
		}
	}
	return render(out, decls)
}

func render(out io.Writer, decls []scan.Decl) error {
	reports := make([]declReport, 0, len(decls))
	for _, d := range decls {
		reports = append(reports, declReport{
			Name:       d.Name,
			Role:       d.Role.String(),
			Func:       d.Func,
			File:       d.File,
			Line:       d.Line,
			HasDefault: d.HasDefault,
		})
	}

	if scanFormat == "json" {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(reports)
	}

	if len(reports) == 0 {
		fmt.Fprintln(out, "no tracked declarations found")
		return nil
	}
	for _, r := range reports {
		loc := fmt.Sprintf("line %d", r.Line)
		if r.File != "" {
			loc = fmt.Sprintf("%s:%d", r.File, r.Line)
		}
		fn := r.Func
		if fn == "" {
			fn = "(snippet)"
		}
		fmt.Fprintf(out, "%-20s %-10s %s in %s\n", r.Name, r.Role, loc, fn)
	}
	return nil
}
