// Package conv formats numbers without fmt or strconv so MCU builds stay small.
package conv

// AppendUint appends the base-10 digits of n to dst.
func AppendUint(dst []byte, n uint64) []byte {
	var tmp [20]byte
	i := len(tmp)
	for {
		i--
		tmp[i] = byte('0' + n%10)
		n /= 10
		if n == 0 {
			break
		}
	}
	return append(dst, tmp[i:]...)
}

// Uint returns n as a decimal string.
func Uint(n uint64) string { return string(AppendUint(nil, n)) }
