package format

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func TestNew_InvalidLocale(t *testing.T) {
	_, err := New("not a locale!!")

	assert.Error(t, err)
}

func TestNew_DefaultLocale(t *testing.T) {
	f, err := New(DefaultLocale)

	require.NoError(t, err)
	assert.Equal(t, "es", mustBase(t, f.Tag()))
}

func TestFormatter_English(t *testing.T) {
	f, err := New("en")
	require.NoError(t, err)

	assert.Equal(t, "1,234,567.50", f.Number(1234567.5, 2))
	assert.Equal(t, "12", f.Number(12.2, 0))
	assert.Equal(t, "$1,500.00", f.Money(1500))
	assert.Equal(t, "10.0%", f.Percent("10.0"))
}

func mustBase(t *testing.T, tag language.Tag) string {
	t.Helper()
	base, _ := tag.Base()
	return base.String()
}
