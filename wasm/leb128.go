package wasm

// AppendULEB128 appends v to dst as an unsigned LEB128 integer, the
// variable-length encoding the WebAssembly binary format uses for
// section lengths, indices, and unsigned immediates.
func AppendULEB128(dst []byte, v uint64) []byte {
	for {
		b := byte(v & 0x7f)
		v >>= 7
		if v != 0 {
			b |= 0x80
		}
		dst = append(dst, b)
		if v == 0 {
			return dst
		}
	}
}

// AppendSLEB128 appends v to dst as a signed LEB128 integer, used for
// i32.const/i64.const immediates.
func AppendSLEB128(dst []byte, v int64) []byte {
	more := true
	for more {
		b := byte(v & 0x7f)
		v >>= 7
		signBitSet := b&0x40 != 0
		if (v == 0 && !signBitSet) || (v == -1 && signBitSet) {
			more = false
		} else {
			b |= 0x80
		}
		dst = append(dst, b)
	}
	return dst
}

// DecodeULEB128 reads an unsigned LEB128 integer from the front of b,
// returning its value and the number of bytes consumed.
func DecodeULEB128(b []byte) (uint64, int) {
	var result uint64
	var shift uint
	for i, by := range b {
		result |= uint64(by&0x7f) << shift
		if by&0x80 == 0 {
			return result, i + 1
		}
		shift += 7
	}
	return result, len(b)
}
