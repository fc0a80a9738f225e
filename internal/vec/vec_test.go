package vec

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew_Defaults(t *testing.T) {
	tests := []struct {
		name string
		args []float64
		want Vec
	}{
		{"no args", nil, Vec{0, 0, 1}},
		{"x only", []float64{100}, Vec{100, 0, 1}},
		{"x and y", []float64{4, 5}, Vec{4, 5, 1}},
		{"all three", []float64{10, 20, 30}, Vec{10, 20, 30}},
		{"explicit zero z", []float64{1, 2, 0}, Vec{1, 2, 0}},
		{"negative", []float64{-1.5, -2, -3}, Vec{-1.5, -2, -3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, New(tt.args...))
		})
	}
}

func TestNew_TooManyComponents(t *testing.T) {
	assert.Panics(t, func() { New(1, 2, 3, 4) })
}

func TestDefault(t *testing.T) {
	assert.Equal(t, New(), Default())
}

func TestAliasesShareType(t *testing.T) {
	var p Position = New(1, 2, 3)
	var v Velocity = p
	var raw Vec = v
	assert.Equal(t, p, raw)
}

func TestFieldsMutable(t *testing.T) {
	v := New()
	v.X = 7
	v.Z = 100
	assert.Equal(t, Vec{7, 0, 100}, v)
}

func TestFormatFloat(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{1, "1"},
		{130, "130"},
		{-4, "-4"},
		{0.5, "0.5"},
		{1234567, "1.23457e+06"},
		{0.0000001, "1e-07"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatFloat(tt.in))
	}
}

func TestString(t *testing.T) {
	assert.Equal(t, "100 200 300", New(100, 200, 300).String())
	assert.Equal(t, "0 0 1", Default().String())
}
