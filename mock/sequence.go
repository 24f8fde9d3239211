package mock

import (
	"fmt"
	"strconv"
	"strings"
)

// NextCode returns prefix + (max numeric suffix + 1), zero padded to three
// digits. Codes that do not carry the prefix or a numeric suffix are ignored.
func NextCode(prefix string, existing []string) string {
	maxNum := 0
	for _, code := range existing {
		if !strings.HasPrefix(code, prefix) {
			continue
		}
		n, err := strconv.Atoi(strings.TrimPrefix(code, prefix))
		if err != nil {
			continue
		}
		if n > maxNum {
			maxNum = n
		}
	}
	return fmt.Sprintf("%s%03d", prefix, maxNum+1)
}
