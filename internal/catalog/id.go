package catalog

import (
	"strconv"
	"strings"
)

// GenerateID derives a stable identifier from a group name and a product
// name. Both inputs are trimmed, joined with an underscore, and run through a
// 32-bit rolling hash; the absolute value is rendered in hex.
//
// The hash is the classic h = h*31 + c accumulation truncated to int32 at
// every step, so identical (group, product) pairs always map to the same id.
// Distinct pairs can collide; callers do not guard against that.
func GenerateID(groupName, productName string) string {
	key := strings.TrimSpace(groupName) + "_" + strings.TrimSpace(productName)
	var h int32
	for i := 0; i < len(key); i++ {
		h = h<<5 - h + int32(key[i])
	}
	v := int64(h)
	if v < 0 {
		v = -v
	}
	return strconv.FormatInt(v, 16)
}
