package realtime

import "fmt"

// CanonicalPair orders two participant identifiers so (a,b) and (b,a) map to
// the same pair.
func CanonicalPair(a, b int64) (low, high int64) {
	if a <= b {
		return a, b
	}
	return b, a
}

// RoomID derives the shared room identifier for a participant pair. The
// identifier is commutative: RoomID(a,b) == RoomID(b,a), so both
// participants subscribe to one channel regardless of who initiates.
func RoomID(a, b int64) string {
	low, high := CanonicalPair(a, b)
	return fmt.Sprintf("%d_%d", low, high)
}
