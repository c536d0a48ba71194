package pulse

import "unsafe"

func AsByteSlice[T any](value *T) []byte {
	var zeroT T

	n := unsafe.Sizeof(zeroT)
	ptr := (*byte)(unsafe.Pointer(value))

	return unsafe.Slice(ptr, n)
}

// SliceAsBytes reinterprets the backing array of values as bytes.
// The result aliases values.
func SliceAsBytes[T any](values []T) []byte {
	if len(values) == 0 {
		return nil
	}

	n := int(unsafe.Sizeof(values[0])) * len(values)
	ptr := (*byte)(unsafe.Pointer(unsafe.SliceData(values)))

	return unsafe.Slice(ptr, n)
}

func sizeOf[T any]() int {
	var zeroT T
	return int(unsafe.Sizeof(zeroT))
}
