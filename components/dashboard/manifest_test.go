package dashboard

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeManifest(t *testing.T) {
	const payload = `
version: "1"
name: community-pack
widgets:
  - definition:
      code: community.widget.metrics
      name: Community Metrics
      description: Shows metrics pushed by the community pack.
      category: community
      schema:
        type: object
        properties:
          range:
            type: string
    provider:
      name: Community Provider
      summary: Calls the community metrics API.
      capabilities: ["html","json"]
layout:
  admin.dashboard.main:
    - id: community
      definition: community.widget.metrics
      configuration:
        range: 7d
datasets:
  community: fixtures/community.yaml
`
	doc, err := DecodeManifest(strings.NewReader(payload))
	require.NoError(t, err)
	require.Len(t, doc.Widgets, 1)

	widget := doc.Widgets[0]
	assert.Equal(t, "community.widget.metrics", widget.Definition.Code)
	assert.Equal(t, "Community Metrics", widget.Definition.Name)
	assert.Equal(t, "Community Provider", widget.Provider.Name)
	assert.Equal(t, []string{"html", "json"}, widget.Provider.Capabilities)
	assert.Equal(t, "community", widget.Definition.Category)

	layout := doc.LayoutValue()
	require.NotNil(t, layout)
	main := layout.Areas[AreaMain]
	require.Len(t, main, 1)
	assert.Equal(t, AreaMain, main[0].AreaCode)
	assert.Equal(t, "7d", main[0].Configuration["range"])

	path, ok := doc.DatasetPath("community")
	require.True(t, ok)
	assert.Equal(t, "fixtures/community.yaml", path)
}

func TestDecodeManifestDefaultsVersion(t *testing.T) {
	doc, err := DecodeManifest(strings.NewReader("name: bare\n"))
	require.NoError(t, err)
	assert.Equal(t, ManifestVersion, doc.Version)
	assert.Nil(t, doc.LayoutValue())
}

func TestDecodeManifestRejectsUnknownFields(t *testing.T) {
	_, err := DecodeManifest(strings.NewReader("version: \"1\"\nwidgts: []\n"))
	require.Error(t, err)

	_, err = DecodeManifest(strings.NewReader("version: \"2\"\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported manifest version")

	_, err = DecodeManifest(strings.NewReader(""))
	assert.ErrorContains(t, err, "empty")
}

func TestRegistryLoadManifestDocument(t *testing.T) {
	doc := &WidgetManifestDocument{
		Version: ManifestVersion,
		Widgets: []ManifestWidget{
			{
				Definition: WidgetDefinition{
					Code: "acme.widget.inventory",
					Name: "Inventory",
				},
				Provider: ManifestProvider{
					Name:    "Inventory Provider",
					Summary: "Fetches inventory counts",
				},
			},
		},
	}
	reg := NewRegistry()

	err := reg.LoadManifestDocument(doc)
	require.NoError(t, err)

	def, ok := reg.Definition("acme.widget.inventory")
	require.True(t, ok)
	assert.Equal(t, "Inventory", def.Name)

	meta, ok := reg.ProviderMetadata("acme.widget.inventory")
	require.True(t, ok)
	assert.Equal(t, "Inventory Provider", meta.Name)

	_, ok = reg.Definition(WidgetLineChart)
	assert.True(t, ok, "built-in definitions stay registered")
	assert.Error(t, reg.LoadManifestDocument(nil))
}

func TestManifestDuplicateCodes(t *testing.T) {
	const payload = `
widgets:
  - definition:
      code: dup.widget
      name: First
  - definition:
      code: dup.widget
      name: Second
`
	_, err := DecodeManifest(strings.NewReader(payload))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicates widget code")
}

func TestManifestLayoutValidation(t *testing.T) {
	const duplicate = `
layout:
  admin.dashboard.main:
    - id: a
      definition: admin.widget.goals
  admin.dashboard.footer:
    - id: a
      definition: admin.widget.goals
`
	_, err := DecodeManifest(strings.NewReader(duplicate))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicates widget id")

	const missing = `
layout:
  admin.dashboard.main:
    - id: a
`
	_, err = DecodeManifest(strings.NewReader(missing))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing definition")
}

func TestManifestDatasetPathIsRelativeToSource(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "manifest.yaml")
	require.NoError(t, os.WriteFile(path, []byte("datasets:\n  sales: data/sales.yaml\n  abs: /srv/abs.yaml\n"), 0o600))

	doc, err := ReadManifest(path)
	require.NoError(t, err)
	assert.Equal(t, path, doc.Source)

	resolved, ok := doc.DatasetPath("sales")
	require.True(t, ok)
	assert.Equal(t, filepath.Join(dir, "data", "sales.yaml"), resolved)

	resolved, ok = doc.DatasetPath("abs")
	require.True(t, ok)
	assert.Equal(t, "/srv/abs.yaml", resolved)

	_, ok = doc.DatasetPath("missing")
	assert.False(t, ok)
}

func TestDocsManifestsAreValid(t *testing.T) {
	dir := filepath.Join("..", "..", "docs", "manifests")
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		doc, err := ReadManifest(path)
		require.NoErrorf(t, err, "manifest %s should parse", path)
		assert.NoErrorf(t, VerifyManifest(doc), "manifest %s should verify", path)
	}
}

func TestVerifyManifestRejectsBadLayout(t *testing.T) {
	doc, err := DecodeManifest(strings.NewReader(`
version: "1"
layout:
  admin.dashboard.main:
    - id: t1
      definition: admin.widget.data_table
      configuration:
        page_size: 0
`))
	require.NoError(t, err)
	assert.ErrorContains(t, VerifyManifest(doc), "failed validation")

	doc, err = DecodeManifest(strings.NewReader(`
version: "1"
layout:
  admin.dashboard.main:
    - id: c1
      definition: admin.widget.line_chart
      configuration:
        dataset: regional
`))
	require.NoError(t, err)
	assert.ErrorIs(t, VerifyManifest(doc), ErrUnknownDataset)

	doc, err = DecodeManifest(strings.NewReader(`
version: "1"
layout:
  admin.dashboard.main:
    - id: x1
      definition: admin.widget.nope
`))
	require.NoError(t, err)
	assert.ErrorIs(t, VerifyManifest(doc), ErrUnknownWidget)
}
