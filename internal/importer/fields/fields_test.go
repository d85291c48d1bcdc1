package fields

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_Order(t *testing.T) {
	d := Default()
	require.Len(t, d, 34)
	assert.Equal(t, ID, d[0].Name)
	assert.Equal(t, Portal, d[2].Name)
	assert.Equal(t, Enviar, d[len(d)-1].Name)
	assert.Contains(t, d.Aliases(Portal), "Bot")
	assert.Nil(t, d.Aliases("nope"))
}

func TestDefault_IsCopy(t *testing.T) {
	d := Default()
	d[2].Aliases[0] = "changed"
	assert.Equal(t, "portal", Default().Aliases(Portal)[0])
}

func TestExtend_AppendsAfterBuiltin(t *testing.T) {
	d, err := Default().Extend([]byte("fields:\n  portal: [\"Robô\", \"Nome do Robô\"]\n  status: [Situação]\n"))
	require.NoError(t, err)

	portal := d.Aliases(Portal)
	builtinLen := len(Default().Aliases(Portal))
	require.Len(t, portal, builtinLen+2)
	assert.Equal(t, "portal", portal[0])
	assert.Equal(t, []string{"Robô", "Nome do Robô"}, portal[builtinLen:])
	assert.Equal(t, "Situação", d.Aliases(Status)[len(d.Aliases(Status))-1])
}

func TestExtend_UnknownField(t *testing.T) {
	_, err := Default().Extend([]byte("fields:\n  portais: [x]\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "portais")
}

func TestExtend_BadYAML(t *testing.T) {
	_, err := Default().Extend([]byte("fields: [unterminated"))
	assert.Error(t, err)
}

func TestLoad(t *testing.T) {
	d, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), d)

	path := filepath.Join(t.TempDir(), "aliases.yaml")
	require.NoError(t, os.WriteFile(path, []byte("fields:\n  esfera: [Nível]\n"), 0o644))
	d, err = Load(path)
	require.NoError(t, err)
	assert.Contains(t, d.Aliases(Esfera), "Nível")

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
