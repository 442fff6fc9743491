package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseObjectURL(t *testing.T) {
	cases := []struct {
		name   string
		raw    string
		bucket string
		key    string
		ok     bool
	}{
		{"fallback form", "s3://photos/citizens/2026/09/01/abc-123", "photos", "citizens/2026/09/01/abc-123", true},
		{"public https url", "https://cdn.example.com/citizens/2026/09/01/abc-123", "", "", false},
		{"missing key", "s3://photos", "", "", false},
		{"missing bucket", "s3:///citizens/abc", "", "", false},
		{"empty", "", "", "", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			bucket, key, ok := ParseObjectURL(tc.raw)
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.bucket, bucket)
			assert.Equal(t, tc.key, key)
		})
	}
}
