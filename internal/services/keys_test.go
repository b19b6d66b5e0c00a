package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseCandidateID(t *testing.T) {
	tests := []struct {
		name     string
		key      string
		wantID   int
		wantOK   bool
	}{
		{name: "valid key", key: "userId-42.pdf", wantID: 42, wantOK: true},
		{name: "valid key under prefix", key: "resumes/userId-7.pdf", wantID: 7, wantOK: true},
		{name: "non-numeric id", key: "userId-abc.pdf", wantOK: false},
		{name: "unrelated object", key: "random.pdf", wantOK: false},
		{name: "text file", key: "notes.txt", wantOK: false},
		{name: "wrong case", key: "UserId-42.pdf", wantOK: false},
		{name: "trailing suffix", key: "userId-42.pdf.bak", wantOK: false},
		{name: "missing id", key: "userId-.pdf", wantOK: false},
		{name: "empty key", key: "", wantOK: false},
		{name: "directory-like key", key: "resumes/", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, ok := ParseCandidateID(tt.key)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.wantID, id)
			}
		})
	}
}
