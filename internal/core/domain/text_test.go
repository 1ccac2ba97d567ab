package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		max  int
		want string
	}{
		{"Hello World", 0, "hello-world"},
		{"  Bongao   Municipal  Hall ", 0, "bongao-municipal-hall"},
		{"Peñablanca Road", 0, "penablanca-road"},
		{"Governor's Office!", 0, "governors-office"},
		{"a--b", 0, "a-b"},
		{"---", 0, ""},
		{"abc def ghi", 7, "abc-def"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Slugify(tt.in, tt.max), "Slugify(%q, %d)", tt.in, tt.max)
	}

	long := Slugify(strings.Repeat("word ", 50), NewsSlugMax)
	assert.LessOrEqual(t, len(long), NewsSlugMax)
	assert.False(t, strings.HasSuffix(long, "-"))
}

func TestPlainText(t *testing.T) {
	assert.Equal(t, "Hello world again", PlainText("<p>Hello <b>world</b></p>\n<p>again</p>"))
	assert.Equal(t, "", PlainText(""))
}

func TestExcerpt(t *testing.T) {
	assert.Equal(t, "short", Excerpt("<p>short</p>", ExcerptLength))

	long := "<p>" + strings.Repeat("á", ExcerptLength+10) + "</p>"
	got := Excerpt(long, ExcerptLength)
	assert.True(t, strings.HasSuffix(got, "..."))
	assert.Equal(t, ExcerptLength+3, len([]rune(got)))
}

func TestTrunc(t *testing.T) {
	assert.Equal(t, "", Trunc("abc", 0))
	assert.Equal(t, "ab", Trunc("abc", 2))
	assert.Equal(t, "abc", Trunc("abc", 5))
	assert.Equal(t, "ñ", Trunc("ñandu", 1))
}
