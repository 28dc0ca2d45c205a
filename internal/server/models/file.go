// Package models defines the data shared by storage, services and transports.
package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/gophdrop/internal/common"
)

// FileInfo is what a namespace store knows about one stored entry.
type FileInfo struct {
	Name       string
	Size       int64
	ModifiedAt time.Time
}

// FileEntry is a FileInfo placed in its namespace, as returned to callers.
type FileEntry struct {
	Name       string     `json:"name"`
	Owner      string     `json:"owner"`
	SizeBytes  int64      `json:"sizeBytes"`
	ModifiedAt time.Time  `json:"modifiedAt"`
	Visibility Visibility `json:"visibility"`
}

// NewFileEntry decorates info with ownership derived from ns.
func NewFileEntry(ns Namespace, info FileInfo) FileEntry {
	return FileEntry{
		Name:       info.Name,
		Owner:      ns.Owner(),
		SizeBytes:  info.Size,
		ModifiedAt: info.ModifiedAt,
		Visibility: ns.Visibility(),
	}
}

// Ack acknowledges a mutation.
type Ack struct {
	Message  string `json:"message"`
	Filename string `json:"filename,omitempty"`
}

// ValidateFileName rejects names that cannot map to exactly one entry
// inside a namespace.
func ValidateFileName(name string) error {
	switch {
	case name == "", name == ".", name == "..":
		return fmt.Errorf("%w: %q", common.ErrorInvalidFileName, name)
	case strings.ContainsAny(name, "/\\\x00"):
		return fmt.Errorf("%w: %q", common.ErrorInvalidFileName, name)
	}
	return nil
}
