package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseNumberBR(t *testing.T) {
	cases := []struct {
		in   string
		want string
		ok   bool
	}{
		{"1.234,56", "1234.56", true},
		{"1.500", "1500", true},
		{"12,5%", "12.5", true},
		{"R$ 2.345,60", "2345.6", true},
		{"1\u00A0234,5", "1234.5", true},
		{"-3,25", "-3.25", true},
		{",5", "0.5", true},
		{"7,", "7", true},
		{"12-3", "12", true},
		{"", "0", false},
		{"n/a", "0", false},
		{"-", "0", false},
	}
	for _, c := range cases {
		got, ok := ParseNumberBR(c.in)
		assert.Equal(t, c.ok, ok, c.in)
		assert.Equal(t, c.want, got.String(), c.in)
	}
}
