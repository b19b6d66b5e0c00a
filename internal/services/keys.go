package services

import (
	"regexp"
	"strconv"
	"strings"
)

// Resume objects are keyed as userId-<candidateId>.pdf by the upload
// service. The key is the only channel carrying candidate identity into
// the pipeline.
var resumeKeyPattern = regexp.MustCompile(`^userId-([0-9]+)\.pdf$`)

// ParseCandidateID extracts the candidate id from a storage key. Keys
// that do not match the upload convention (unrelated objects sharing the
// prefix) yield ok=false and must be skipped without error.
func ParseCandidateID(key string) (int, bool) {
	name := key
	if idx := strings.LastIndex(name, "/"); idx != -1 {
		name = name[idx+1:]
	}

	m := resumeKeyPattern.FindStringSubmatch(name)
	if m == nil {
		return 0, false
	}

	id, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}

	return id, true
}
