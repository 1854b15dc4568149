package store

import (
	"crypto/rand"
	"encoding/hex"
	"strconv"
	"time"
)

// newID returns a fresh record id: the millisecond timestamp in base 36
// plus a random suffix, so rapid sequential adds never collide.
func newID(t time.Time) string {
	suffix := make([]byte, 4)
	rand.Read(suffix)
	return strconv.FormatInt(t.UnixMilli(), 36) + "-" + hex.EncodeToString(suffix)
}
