package session

import "errors"

// ErrNotFound indicates the session id is unknown or expired.
var ErrNotFound = errors.New("session not found")

// ErrNoDataset indicates the session has no active dataset yet (a
// multi-sheet workbook is waiting for a sheet selection).
var ErrNoDataset = errors.New("no dataset selected for session")
