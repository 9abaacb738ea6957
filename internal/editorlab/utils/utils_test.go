package utils

import (
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPreview(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"paragraphs", "<p>hello</p><p>world</p>", "hello\nworld"},
		{"marks", `<h2><span style="color: red"><strong>Title</strong></span></h2>`, "Title"},
		{"list", "<ul><li>a</li><li>b</li></ul>", "a\nb"},
		{"entities", "<p>a &amp; b</p>", "a & b"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Preview(tt.in))
		})
	}

	long := "<p>" + strings.Repeat("я", 500) + "</p>"
	assert.Len(t, []rune(Preview(long)), PreviewLength)
}

func TestSubstr(t *testing.T) {
	assert.Equal(t, "при", Substr("привет", 0, 3))
	assert.Equal(t, "ет", Substr("привет", 4, 10))
	assert.Equal(t, "", Substr("привет", 10, 1))
}

func TestCheckInSlice(t *testing.T) {
	assert.True(t, CheckInSlice([]string{"html", "pdf"}, "pdf"))
	assert.False(t, CheckInSlice([]string{"html"}, "html", "pdf"))
}

func TestCheckHttps(t *testing.T) {
	u, _ := url.Parse("http://editorlab.example.com")
	assert.Equal(t, "https", CheckHttps(u).Scheme)
	u, _ = url.Parse("http://localhost:8080")
	assert.Equal(t, "http", CheckHttps(u).Scheme)
}
