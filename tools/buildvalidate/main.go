// Command buildvalidate checks that build-tag variants stay interchangeable.
// Where a package has files for both `tag` and `!tag` (such as the sonic and
// default JSON codecs of the graph client), both sides must declare the same
// top-level names, otherwise one of the two builds breaks.
package main

import (
	"bufio"
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
)

var buildTagRe = regexp.MustCompile(`^//go:build\s+(!?)([A-Za-z_][A-Za-z0-9_]*)\s*$`)

// variantFile is a non-test Go file guarded by a single build tag.
type variantFile struct {
	Path    string
	Tag     string
	Negated bool
	Names   []string
}

// Mismatch reports names declared by only one side of a tag pair.
type Mismatch struct {
	Dir          string
	Tag          string
	OnlyTagged   []string
	OnlyNegated  []string
	TaggedFiles  []string
	NegatedFiles []string
}

func (m Mismatch) String() string {
	return fmt.Sprintf("%s: tag %q: only with %s: %v; only with !%s: %v",
		m.Dir, m.Tag, m.Tag, m.OnlyTagged, m.Tag, m.OnlyNegated)
}

// scanVariants collects the files under root guarded by `//go:build tag` or
// `//go:build !tag`. Files with compound expressions are ignored.
func scanVariants(root string) ([]variantFile, error) {
	var files []variantFile

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() && (d.Name() == "vendor" || d.Name() == ".git" || strings.HasPrefix(d.Name(), "_")) {
			return filepath.SkipDir
		}
		if d.IsDir() || !strings.HasSuffix(path, ".go") || strings.HasSuffix(path, "_test.go") {
			return nil
		}

		vf, ok, err := analyzeFile(path)
		if err != nil {
			return fmt.Errorf("failed to analyze %s: %w", path, err)
		}
		if ok {
			files = append(files, vf)
		}
		return nil
	})

	return files, err
}

func analyzeFile(path string) (variantFile, bool, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return variantFile{}, false, err
	}

	vf := variantFile{Path: path}
	found := false
	scanner := bufio.NewScanner(strings.NewReader(string(content)))
	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(line, "package ") {
			break
		}
		if m := buildTagRe.FindStringSubmatch(line); m != nil {
			vf.Negated = m[1] == "!"
			vf.Tag = m[2]
			found = true
		}
	}
	if !found {
		return variantFile{}, false, nil
	}

	node, err := parser.ParseFile(token.NewFileSet(), path, content, parser.SkipObjectResolution)
	if err != nil {
		return variantFile{}, false, err
	}
	vf.Names = declaredNames(node)
	return vf, true, nil
}

// declaredNames lists the package-level functions, types, vars and consts.
// Methods are recorded as Receiver.Method.
func declaredNames(file *ast.File) []string {
	var names []string
	for _, decl := range file.Decls {
		switch d := decl.(type) {
		case *ast.FuncDecl:
			name := d.Name.Name
			if d.Recv != nil && len(d.Recv.List) == 1 {
				name = receiverName(d.Recv.List[0].Type) + "." + name
			}
			names = append(names, name)
		case *ast.GenDecl:
			for _, spec := range d.Specs {
				switch s := spec.(type) {
				case *ast.TypeSpec:
					names = append(names, s.Name.Name)
				case *ast.ValueSpec:
					for _, n := range s.Names {
						names = append(names, n.Name)
					}
				}
			}
		}
	}
	return names
}

func receiverName(expr ast.Expr) string {
	switch t := expr.(type) {
	case *ast.StarExpr:
		return receiverName(t.X)
	case *ast.Ident:
		return t.Name
	case *ast.IndexExpr:
		return receiverName(t.X)
	default:
		return "?"
	}
}

// findMismatches compares both sides of every tag pair per directory.
// Tags used on one side only are not checked.
func findMismatches(files []variantFile) []Mismatch {
	type side struct {
		names map[string]bool
		files []string
	}
	type key struct{ dir, tag string }
	pairs := make(map[key]*[2]side)

	for _, f := range files {
		k := key{filepath.Dir(f.Path), f.Tag}
		p, ok := pairs[k]
		if !ok {
			p = &[2]side{{names: map[string]bool{}}, {names: map[string]bool{}}}
			pairs[k] = p
		}
		i := 0
		if f.Negated {
			i = 1
		}
		p[i].files = append(p[i].files, f.Path)
		for _, n := range f.Names {
			p[i].names[n] = true
		}
	}

	var mismatches []Mismatch
	for k, p := range pairs {
		if len(p[0].files) == 0 || len(p[1].files) == 0 {
			continue
		}
		onlyTagged := difference(p[0].names, p[1].names)
		onlyNegated := difference(p[1].names, p[0].names)
		if len(onlyTagged) == 0 && len(onlyNegated) == 0 {
			continue
		}
		mismatches = append(mismatches, Mismatch{
			Dir:          k.dir,
			Tag:          k.tag,
			OnlyTagged:   onlyTagged,
			OnlyNegated:  onlyNegated,
			TaggedFiles:  p[0].files,
			NegatedFiles: p[1].files,
		})
	}

	sort.Slice(mismatches, func(i, j int) bool {
		if mismatches[i].Dir != mismatches[j].Dir {
			return mismatches[i].Dir < mismatches[j].Dir
		}
		return mismatches[i].Tag < mismatches[j].Tag
	})
	return mismatches
}

func difference(a, b map[string]bool) []string {
	var out []string
	for n := range a {
		if !b[n] {
			out = append(out, n)
		}
	}
	sort.Strings(out)
	return out
}

// validateBuildTags scans root and reports every mismatched tag pair.
func validateBuildTags(root string) error {
	files, err := scanVariants(root)
	if err != nil {
		return fmt.Errorf("failed to scan directory: %w", err)
	}

	mismatches := findMismatches(files)
	if len(mismatches) > 0 {
		fmt.Printf("Found %d build tag variant mismatches:\n", len(mismatches))
		for _, m := range mismatches {
			fmt.Printf("  - %s\n", m)
		}
		return fmt.Errorf("build tag variants differ")
	}

	fmt.Printf("Build tag validation passed (%d tagged files)\n", len(files))
	return nil
}

func main() {
	root := "."
	if len(os.Args) > 1 {
		root = os.Args[1]
	}

	if err := validateBuildTags(root); err != nil {
		fmt.Fprintf(os.Stderr, "Validation failed: %v\n", err)
		os.Exit(1)
	}
}
