package utils

func FindIndex[T comparable](slice []T, item T) int {
	for i, v := range slice {
		if v == item {
			return i
		}
	}
	return -1
}

// RemoveIndex returns a copy of slice without the element at i.
func RemoveIndex[T any](slice []T, i int) []T {
	out := make([]T, 0, len(slice)-1)
	out = append(out, slice[:i]...)
	return append(out, slice[i+1:]...)
}
