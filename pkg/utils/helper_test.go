package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{"Test: Movie!", "test-movie"},
		{"Avatar: Fire and Ash", "avatar-fire-and-ash"},
		{"  Leading & Trailing  ", "leading-trailing"},
		{"A: B", "a-b"},
		{"a b", "a-b"},
		{"2001: A Space Odyssey", "2001-a-space-odyssey"},
		{"!!!", ""},
		{"already-a-slug", "already-a-slug"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Slugify(tt.title), "Slugify(%q)", tt.title)
	}
}

func TestSlugifyIsIdempotent(t *testing.T) {
	slug := Slugify("Captain America: Brave New World")
	assert.Equal(t, slug, Slugify(slug))
}

func TestFormatTime(t *testing.T) {
	tests := []struct {
		seconds float64
		want    string
	}{
		{0, "0:00"},
		{9, "0:09"},
		{59, "0:59"},
		{60, "1:00"},
		{75.6, "1:15"},
		{3599, "59:59"},
		{3600, "1:00:00"},
		{11820, "3:17:00"},
		{-5, "0:00"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatTime(tt.seconds), "FormatTime(%v)", tt.seconds)
	}
}

func TestParseInt(t *testing.T) {
	assert.Equal(t, 5, ParseInt("", 5))
	assert.Equal(t, 5, ParseInt("abc", 5))
	assert.Equal(t, 5, ParseInt("0", 5))
	assert.Equal(t, 3, ParseInt("3", 5))
}

func TestParseFloat(t *testing.T) {
	assert.Equal(t, 8.0, ParseFloat("", 8.0))
	assert.Equal(t, 8.0, ParseFloat("n/a", 8.0))
	assert.Equal(t, 7.5, ParseFloat("7.5", 8.0))
	assert.Equal(t, 7.5, ParseFloat(" 7.5 ", 8.0))
}
