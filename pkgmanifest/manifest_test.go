package pkgmanifest

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseMinimal(t *testing.T) {
	m, err := Parse(`
package {
	name "widgets"
	version "1.2.0"
}
`)
	require.NoError(t, err)
	require.Equal(t, "widgets", m.Name)
	require.Equal(t, "1.2.0", m.Version)
}

func TestParseMissingNameErrors(t *testing.T) {
	_, err := Parse(`source "lib"`)
	require.Error(t, err)
}

func TestParseDependenciesAndSources(t *testing.T) {
	m, err := Parse(`
package {
	name "app"
}
source "src"
source "vendor/extra"
dependency "json_codec" "2.0.0"
dependency "local_util" {
	path "../local_util"
}
`)
	require.NoError(t, err)
	require.Equal(t, []string{"src", "vendor/extra"}, m.SourceDirs)
	require.Len(t, m.Dependencies, 2)
	require.Equal(t, "json_codec", m.Dependencies[0].Name)
	require.Equal(t, "2.0.0", m.Dependencies[0].Version)
	require.Equal(t, "../local_util", m.Dependencies[1].Path)
}

func TestValidateDependenciesReportsMissingPath(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ManifestFileName), []byte(`
package {
	name "app"
}
dependency "missing_dep" {
	path "../nowhere"
}
`), 0o644))

	m, err := FindAndLoad(dir)
	require.NoError(t, err)
	require.NotNil(t, m)

	errs := m.ValidateDependencies(context.Background(), dir)
	require.Len(t, errs, 1)
	require.ErrorContains(t, errs[0], "missing_dep")
}

func TestValidateDependenciesOKWhenResolvable(t *testing.T) {
	root := t.TempDir()
	depDir := filepath.Join(root, "local_util")
	require.NoError(t, os.MkdirAll(depDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(depDir, ManifestFileName), []byte(`
package {
	name "local_util"
}
`), 0o644))

	appDir := filepath.Join(root, "app")
	require.NoError(t, os.MkdirAll(appDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(appDir, ManifestFileName), []byte(`
package {
	name "app"
}
dependency "local_util" {
	path "../local_util"
}
`), 0o644))

	m, err := FindAndLoad(appDir)
	require.NoError(t, err)

	errs := m.ValidateDependencies(context.Background(), appDir)
	require.Empty(t, errs)
}
