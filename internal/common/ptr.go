package common

// Ptr returns a pointer to v. Handy for building partial-update patches.
func Ptr[T any](v T) *T {
	return &v
}
