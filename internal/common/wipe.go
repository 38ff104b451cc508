package common

// WipeBytes overwrites the contents of the provided byte slice with zeros.
// Useful for removing passwords from memory after use. A nil slice is a no-op.
func WipeBytes(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
