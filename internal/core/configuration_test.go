package core

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCoordinates(t *testing.T) {
	tests := []struct {
		name string
		text string
		want Configuration
	}{
		{"pairs", "1,2;3,4", Configuration{{X: 1, Y: 2}, {X: 3, Y: 4}}},
		{"whitespace", " 1 , 2 ;\n 3,4 ", Configuration{{X: 1, Y: 2}, {X: 3, Y: 4}}},
		{"trailing separator", "0,0;", Configuration{{X: 0, Y: 0}}},
		{"negative", "-1,-5", Configuration{{X: -1, Y: -5}}},
		{"empty", "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseCoordinates(tt.text)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseCoordinatesMalformed(t *testing.T) {
	for _, text := range []string{"1", "1,2,3", "a,1", "1,b", "1;2"} {
		_, err := ParseCoordinates(text)
		if !errors.Is(err, ErrMalformedCoordinates) {
			t.Errorf("ParseCoordinates(%q) error = %v, want ErrMalformedCoordinates", text, err)
		}
	}
}

func TestCoordinatesFileRoundTrip(t *testing.T) {
	c := Configuration{{X: 0, Y: 0}, {X: -2, Y: 7}, {X: 3, Y: 1}}
	path := filepath.Join(t.TempDir(), "config.txt")

	require.NoError(t, SaveCoordinates(path, c))
	got, err := LoadCoordinates(path)
	require.NoError(t, err)
	assert.Equal(t, c, got)
	assert.Equal(t, "0,0;-2,7;3,1", FormatCoordinates(c))
}

func TestConfigurationCopyIsIndependent(t *testing.T) {
	c := Configuration{{X: 1, Y: 1}, {X: 2, Y: 3}}
	moved := c.Translate(Point{X: 1, Y: 1})

	assert.Equal(t, Configuration{{X: 0, Y: 0}, {X: 1, Y: 2}}, moved)
	assert.Equal(t, Configuration{{X: 1, Y: 1}, {X: 2, Y: 3}}, c)

	n := Configuration{{X: 5, Y: -1}, {X: 7, Y: 2}}.Normalize()
	assert.Equal(t, Configuration{{X: 0, Y: 0}, {X: 2, Y: 3}}, n)
	assert.Nil(t, Configuration(nil).Copy())
}

func TestEqualMultiset(t *testing.T) {
	a := Configuration{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 0}}
	assert.True(t, a.EqualMultiset(Configuration{{X: 1, Y: 0}, {X: 0, Y: 0}, {X: 1, Y: 0}}))
	assert.False(t, a.EqualMultiset(Configuration{{X: 1, Y: 0}, {X: 0, Y: 0}, {X: 0, Y: 0}}))
	assert.False(t, a.EqualMultiset(a[:2]))
}

func TestBounds(t *testing.T) {
	b := Configuration{{X: -1, Y: 2}, {X: 4, Y: 0}, {X: 0, Y: 3}}.Bounds()

	assert.Equal(t, Point{X: -1, Y: 0}, b.Min())
	assert.Equal(t, Point{X: 4, Y: 3}, b.Max())
	assert.Equal(t, 6, b.Width())
	assert.Equal(t, 4, b.Height())
	assert.Equal(t, 4, b.SERWidth())
	assert.Equal(t, 6, b.SERHeight())
}

func TestNewInstance(t *testing.T) {
	tests := []struct {
		name          string
		configuration Configuration
		pattern       Configuration
		wantErr       bool
	}{
		{"both empty", nil, nil, false},
		{"equal", Configuration{{X: 0, Y: 0}}, Configuration{{X: 3, Y: 3}}, false},
		{"more robots", Configuration{{X: 0, Y: 0}, {X: 1, Y: 0}}, Configuration{{X: 0, Y: 0}}, true},
		{"more targets", nil, Configuration{{X: 0, Y: 0}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inst, err := NewInstance(tt.configuration, tt.pattern)
			if !tt.wantErr {
				require.NoError(t, err)
				assert.Equal(t, len(tt.configuration), inst.RobotCount())
				return
			}
			var invalid *InvalidInputError
			require.ErrorAs(t, err, &invalid)
			assert.Equal(t, len(tt.configuration), invalid.ConfigurationLen)
			assert.Equal(t, len(tt.pattern), invalid.PatternLen)
		})
	}
}

func TestInstanceSolved(t *testing.T) {
	inst, err := NewInstance(Configuration{{X: 1, Y: 0}, {X: 0, Y: 0}}, Configuration{{X: 0, Y: 0}, {X: 1, Y: 0}})
	require.NoError(t, err)
	assert.True(t, inst.Solved())
}
