package draft

// MicrosPerSecond converts between the float-second core model and the
// integer-microsecond persisted documents. Conversion happens only at the
// schema boundary.
const MicrosPerSecond = 1_000_000

// ToMicros converts float seconds to integer microseconds.
func ToMicros(sec float64) int64 { return int64(sec * MicrosPerSecond) }

// ToSeconds converts integer microseconds to float seconds.
func ToSeconds(us int64) float64 { return float64(us) / MicrosPerSecond }
