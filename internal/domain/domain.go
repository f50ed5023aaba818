// Package domain holds the pure entity models shared by the store, the
// session lifecycle manager and the analytics aggregator. Models carry no
// persistence concerns; the JSON tags describe the canonical wire shape used
// at the serialization boundary.
package domain

import "errors"

var (
	errAlreadyCompleted = errors.New("cannot clock out: session is already completed")
	errEndBeforeStart   = errors.New("end time must be after start time")
)
