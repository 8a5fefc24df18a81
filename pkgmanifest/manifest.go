// Package pkgmanifest reads the `onyx.pkg.kdl` package manifest
// (SPEC_FULL.md §4.11 addition): the declaration of a package's name,
// version, source directories, and dependencies that the `package
// validate` subcommand consults. The
// format echoes the teacher pack's own `.lci.kdl` project configuration
// idiom: a small hand-rolled walk over the parsed KDL document rather
// than a full struct-tag-driven unmarshal, since the manifest's shape
// is small and fixed.
package pkgmanifest

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	kdl "github.com/sblinch/kdl-go"
	"github.com/sblinch/kdl-go/document"
	"golang.org/x/sync/errgroup"
)

// Dependency is one `dependency name version` entry.
type Dependency struct {
	Name    string
	Version string
	Path    string // local path override, given as a child node: `dependency name { path "../foo" }`
}

// Manifest is the parsed contents of an onyx.pkg.kdl file.
type Manifest struct {
	Name         string
	Version      string
	SourceDirs   []string
	Dependencies []Dependency
}

// ManifestFileName is the well-known manifest file name the `package`
// subcommand looks for in the current directory.
const ManifestFileName = "onyx.pkg.kdl"

// Load reads and parses the manifest at path.
func Load(path string) (*Manifest, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("pkgmanifest: %w", err)
	}
	return Parse(string(content))
}

// FindAndLoad looks for ManifestFileName in dir, returning (nil, nil) if
// it does not exist (a missing manifest is not an error; packages may be
// compiled without one).
func FindAndLoad(dir string) (*Manifest, error) {
	path := filepath.Join(dir, ManifestFileName)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, nil
	}
	return Load(path)
}

// Parse parses manifest source from an in-memory string.
func Parse(content string) (*Manifest, error) {
	m := &Manifest{SourceDirs: []string{"."}}

	doc, err := kdl.Parse(strings.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("pkgmanifest: failed to parse: %w", err)
	}

	for _, n := range doc.Nodes {
		switch nodeName(n) {
		case "package":
			for _, cn := range n.Children {
				switch nodeName(cn) {
				case "name":
					if s, ok := firstStringArg(cn); ok {
						m.Name = s
					}
				case "version":
					if s, ok := firstStringArg(cn); ok {
						m.Version = s
					}
				}
			}
		case "source":
			if s, ok := firstStringArg(n); ok {
				if len(m.SourceDirs) == 1 && m.SourceDirs[0] == "." {
					m.SourceDirs = m.SourceDirs[:0]
				}
				m.SourceDirs = append(m.SourceDirs, s)
			}
		case "dependency":
			dep := Dependency{}
			if s, ok := firstStringArg(n); ok {
				dep.Name = s
			}
			if len(n.Arguments) > 1 {
				if s, ok := stringArg(n, 1); ok {
					dep.Version = s
				}
			}
			for _, cn := range n.Children {
				if nodeName(cn) == "path" {
					if s, ok := firstStringArg(cn); ok {
						dep.Path = s
					}
				}
			}
			if dep.Name != "" {
				m.Dependencies = append(m.Dependencies, dep)
			}
		}
	}

	if m.Name == "" {
		return nil, fmt.Errorf("pkgmanifest: missing required %q node", "package > name")
	}
	return m, nil
}

func nodeName(n *document.Node) string {
	if n == nil || n.Name == nil {
		return ""
	}
	return n.Name.NodeNameString()
}

func firstStringArg(n *document.Node) (string, bool) {
	return stringArg(n, 0)
}

func stringArg(n *document.Node, index int) (string, bool) {
	if len(n.Arguments) <= index {
		return "", false
	}
	s, ok := n.Arguments[index].Value.(string)
	return s, ok
}

// ValidateDependencies resolves every dependency with a local Path
// override relative to baseDir and loads its own manifest, concurrently,
// reporting one error per dependency that fails to resolve or parse.
// Dependencies with no Path (registry-resolved) are skipped; registry
// resolution is not implemented by the package subcommand (spec.md §1
// scopes the driver to already-resolved sources).
func (m *Manifest) ValidateDependencies(ctx context.Context, baseDir string) []error {
	var (
		mu   sync.Mutex
		errs []error
	)

	g, gctx := errgroup.WithContext(ctx)
	for _, dep := range m.Dependencies {
		dep := dep
		if dep.Path == "" {
			continue
		}
		g.Go(func() error {
			if gctx.Err() != nil {
				return nil
			}
			depDir := filepath.Join(baseDir, dep.Path)
			depManifest, err := FindAndLoad(depDir)
			if err == nil && depManifest == nil {
				err = fmt.Errorf("no %s in %s", ManifestFileName, depDir)
			}
			if err != nil {
				mu.Lock()
				errs = append(errs, fmt.Errorf("dependency %q: %w", dep.Name, err))
				mu.Unlock()
			}
			return nil
		})
	}
	_ = g.Wait()
	return errs
}

