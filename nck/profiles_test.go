package nck

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadProfiles_BuildsConfig(t *testing.T) {
	doc := `
profiles:
  - name: hf-ssb-narrow
    fs: 6000
    cf: 1250
    bw: 500
    kr: 20
    m: 2
    barker: 13
`
	set, err := LoadProfiles(strings.NewReader(doc))
	require.NoError(t, err)
	require.Contains(t, set, "hf-ssb-narrow")

	cfg, err := set["hf-ssb-narrow"].Config()
	require.NoError(t, err)
	assert.Equal(t, 6000, cfg.FS)
	assert.True(t, cfg.UseBarker)
	assert.Equal(t, 13, cfg.BarkerLen)
}

func TestLoadProfiles_RejectsMissingName(t *testing.T) {
	doc := `
profiles:
  - fs: 6000
    bw: 500
    kr: 20
    m: 2
`
	_, err := LoadProfiles(strings.NewReader(doc))
	assert.Error(t, err)
}
