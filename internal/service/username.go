package service

import (
	"strconv"
	"strings"
	"time"
)

const maxUsernameLen = 25

// DeriveUsername builds a handle from a display name: the first two
// lowercased whitespace-separated tokens concatenated with the current
// epoch milliseconds, clamped to 25 characters. Collisions are accepted
// here and left to the storage uniqueness constraint.
func DeriveUsername(name string) string {
	parts := strings.Fields(strings.ToLower(name))
	if len(parts) > 2 {
		parts = parts[:2]
	}

	username := strings.Join(parts, "") + strconv.FormatInt(time.Now().UnixMilli(), 10)
	if len(username) > maxUsernameLen {
		username = username[:maxUsernameLen]
	}
	return username
}
