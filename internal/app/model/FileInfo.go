package model

import "time"

// FileInfo is a source recording found by a directory scan.
type FileInfo struct {
	Name     string
	FullPath string
	Size     int64
	ModTime  time.Time
}
