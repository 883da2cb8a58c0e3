package term

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectedNonTTYFallsBackToDefaultWidth(t *testing.T) {
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()
	defer w.Close()

	d := New(r)
	assert.False(t, d.IsATTY())
	assert.Equal(t, 80, d.WidthCells())
}

func TestSupportsTrueColorRespectsNoColor(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	d := New(nil)
	assert.False(t, d.SupportsTrueColor())
}

func TestSupportsTrueColorFromColorterm(t *testing.T) {
	t.Setenv("NO_COLOR", "")
	t.Setenv("COLORTERM", "truecolor")
	d := New(nil)
	assert.True(t, d.SupportsTrueColor())
}
