// Package render turns server records into the render model drawn by a
// front end. Everything here is pure: no I/O besides the writers passed in.
package render

import (
	"time"

	"github.com/atinyakov/HomeDrive/internal/models"
)

// ListState tells which of the mutually exclusive file list states is shown.
type ListState int

const (
	// ListIdle is the state before the first refresh.
	ListIdle ListState = iota
	ListLoading
	ListEmpty
	ListError
	ListRows
)

func (s ListState) String() string {
	switch s {
	case ListIdle:
		return "idle"
	case ListLoading:
		return "loading"
	case ListEmpty:
		return "empty"
	case ListError:
		return "error"
	case ListRows:
		return "rows"
	default:
		return "unknown"
	}
}

const (
	MsgLoading = "Chargement..."
	MsgEmpty   = "Aucun fichier dans le workspace."
)

// CreatedLayout is the display format of creation timestamps.
const CreatedLayout = "02/01/2006 15:04:05"

// FileRow is one rendered file with its two actions.
type FileRow struct {
	ID       string
	Filename string
	Owner    string
	Created  string
}

// FileList is the workspace list. Message is set for every state but
// ListRows; Rows is set only for ListRows.
type FileList struct {
	State   ListState
	Message string
	Rows    []FileRow
}

// LoadingFiles is shown while a refresh is in flight.
func LoadingFiles() FileList {
	return FileList{State: ListLoading, Message: MsgLoading}
}

// FilesError is shown when the list could not be fetched.
func FilesError(msg string) FileList {
	return FileList{State: ListError, Message: msg}
}

// Files maps the records to rows, or to the empty state when there are none.
// Naive timestamps are read in loc.
func Files(records []models.FileRecord, loc *time.Location) FileList {
	if len(records) == 0 {
		return FileList{State: ListEmpty, Message: MsgEmpty}
	}
	rows := make([]FileRow, 0, len(records))
	for _, r := range records {
		rows = append(rows, FileRow{
			ID:       string(r.ID),
			Filename: r.Filename,
			Owner:    r.Owner,
			Created:  FormatCreated(r.CreatedAt, loc),
		})
	}
	return FileList{State: ListRows, Rows: rows}
}

var createdLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// FormatCreated renders a server timestamp in loc. Empty input gives "";
// input in an unknown format is returned unchanged.
func FormatCreated(s string, loc *time.Location) string {
	if s == "" {
		return ""
	}
	if loc == nil {
		loc = time.Local
	}
	for _, layout := range createdLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t.In(loc).Format(CreatedLayout)
		}
	}
	return s
}
