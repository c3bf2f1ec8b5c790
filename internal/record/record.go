// Package record stores the text records waiting to be printed.
package record

import (
	"strings"

	"github.com/google/uuid"
)

// Record is one normalized entry handed to the print pipeline.
type Record struct {
	Uuid    uuid.UUID
	Author  string
	Title   string
	Body    string
	Tags    []string
	Date    string
	Printed bool
}

func joinTags(tags []string) string {
	return strings.Join(tags, " ")
}

func splitTags(s string) []string {
	return strings.Fields(s)
}
