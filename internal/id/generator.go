package id

import (
	"sync"
	"time"

	fid "github.com/amterp/flexid"
)

// sessionIDs is built on first use. IDs only need to be unique per machine.
var sessionIDs = sync.OnceValue(func() *fid.Generator {
	return fid.MustNewGenerator(fid.NewConfig().
		WithEpoch(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)).
		WithTickSize(10 * time.Millisecond).
		WithNumRandomChars(3))
})

// Generate returns a new session ID.
func Generate() string {
	return sessionIDs().MustGenerate()
}
