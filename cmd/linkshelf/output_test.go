package main

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

var testLink = signResult{
	Path:      "/a/b.txt",
	URL:       "https://example.com/download/a/b.txt?h=C0GIsp8Sn5ibAgVJeHZ7Dg&e=1000",
	Token:     "C0GIsp8Sn5ibAgVJeHZ7Dg",
	ExpiresAt: 1000,
	Expires:   time.Unix(1000, 0).UTC(),
}

func TestNewFormatter(t *testing.T) {
	tests := []struct {
		format string
		want   Formatter
	}{
		{"", &HumanFormatter{}},
		{"text", &HumanFormatter{}},
		{"json", &JSONFormatter{}},
		{"yaml", &YAMLFormatter{}},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			f, err := newFormatter(tt.format)
			require.NoError(t, err)
			assert.IsType(t, tt.want, f)
		})
	}

	t.Run("unknown", func(t *testing.T) {
		_, err := newFormatter("xml")
		assert.Error(t, err)
	})
}

func TestHumanFormatter_FormatLink(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, (&HumanFormatter{}).FormatLink(&buf, testLink))

	output := buf.String()
	assert.Contains(t, output, testLink.URL+"\n")
	assert.Contains(t, output, "Path:    /a/b.txt")
	assert.Contains(t, output, "1970-01-01T00:16:40Z (1000, ")
}

func TestHumanFormatter_FormatLink_RelativeExpiry(t *testing.T) {
	link := testLink
	link.Expires = time.Now().Add(25 * time.Hour)

	var buf bytes.Buffer
	require.NoError(t, (&HumanFormatter{}).FormatLink(&buf, link))
	assert.Contains(t, buf.String(), "from now")
}

func TestHumanFormatter_FormatVerify(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, (&HumanFormatter{}).FormatVerify(&buf, verifyResult{URL: "u", Valid: true}))
		assert.Equal(t, "Valid: u\n", buf.String())
	})

	t.Run("invalid", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, (&HumanFormatter{}).FormatVerify(&buf, verifyResult{URL: "u", Reason: "token mismatch"}))
		assert.Contains(t, buf.String(), "Invalid: u")
		assert.Contains(t, buf.String(), "Reason: token mismatch")
	})
}

func TestJSONFormatter_FormatLink(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, (&JSONFormatter{}).FormatLink(&buf, testLink))

	var got map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, testLink.URL, got["url"])
	assert.Equal(t, "/a/b.txt", got["path"])
	assert.InDelta(t, 1000, got["expires_at"], 0)
}

func TestJSONFormatter_FormatVerify_OmitsEmptyReason(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, (&JSONFormatter{}).FormatVerify(&buf, verifyResult{URL: "u", Valid: true}))
	assert.NotContains(t, buf.String(), "reason")
}

func TestYAMLFormatter_FormatLink(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, (&YAMLFormatter{}).FormatLink(&buf, testLink))

	var got map[string]any
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, testLink.URL, got["url"])
	assert.Equal(t, "C0GIsp8Sn5ibAgVJeHZ7Dg", got["token"])
	assert.Equal(t, 1000, got["expires_at"])
}
