package localization

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNewLocalizer_EmbeddedDefaults verifies the compiled-in English catalog
// loads without any locale directory.
func TestNewLocalizer_EmbeddedDefaults(t *testing.T) {
	l, err := NewLocalizer("")
	require.NoError(t, err)

	assert.NotEqual(t, "error.internal", l.GetString("en", "error.internal"))
}

// TestGetString_FallsBackToEnglish verifies an unsupported language and an
// unknown key both degrade gracefully.
func TestGetString_FallsBackToEnglish(t *testing.T) {
	l, err := NewLocalizer("")
	require.NoError(t, err)

	assert.Equal(t, l.GetString("en", "error.internal"), l.GetString("fr", "error.internal"))
	assert.Equal(t, "no.such.key", l.GetString("en", "no.such.key"))
}

// TestNewLocalizer_DirectoryOverrides verifies deploy-time files add
// languages and override individual English keys.
func TestNewLocalizer_DirectoryOverrides(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "uk.json"),
		[]byte(`{"error.internal": "Внутрішня помилка"}`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "en.json"),
		[]byte(`{"error.internal": "overridden"}`), 0o644))

	l, err := NewLocalizer(dir)
	require.NoError(t, err)

	assert.Equal(t, "Внутрішня помилка", l.GetString("uk", "error.internal"))
	assert.Equal(t, "overridden", l.GetString("en", "error.internal"))
	// keys absent from uk.json fall back to English
	assert.Equal(t, l.GetString("en", "error.validation"), l.GetString("uk", "error.validation"))
}

// TestPickLanguage parses Accept-Language values against loaded catalogs.
func TestPickLanguage(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "uk.json"), []byte(`{}`), 0o644))

	l, err := NewLocalizer(dir)
	require.NoError(t, err)

	assert.Equal(t, "uk", l.PickLanguage("uk-UA,uk;q=0.9,en;q=0.8"))
	assert.Equal(t, "en", l.PickLanguage("fr-FR,fr;q=0.9"))
	assert.Equal(t, "en", l.PickLanguage(""))
}
