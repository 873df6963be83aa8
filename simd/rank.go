package simd

// byteRank orders bytes by how often they occur in ordinary text and source
// code; lower is rarer. Memmem anchors its scan on the rarest needle byte.
var byteRank [256]uint8

func init() {
	// Most frequent first.
	const common = " etaoinsrhldcumfpgwybvkxjqzETAOINSRHLDCUMFPGWYBVKXJQZ" +
		"0123456789.,_-()\"'=/;:*\n\t{}[]<>+#!?&|%$@\\^`~"
	r := 255
	for i := 0; i < len(common); i++ {
		byteRank[common[i]] = uint8(r)
		r -= 2
	}
}

// RareByte returns the rarest byte of needle and its index. Ties go to the
// later position. It returns (0, -1) for an empty needle.
func RareByte(needle []byte) (byte, int) {
	if len(needle) == 0 {
		return 0, -1
	}
	idx := len(needle) - 1
	for i := len(needle) - 2; i >= 0; i-- {
		if byteRank[needle[i]] < byteRank[needle[idx]] {
			idx = i
		}
	}
	return needle[idx], idx
}
