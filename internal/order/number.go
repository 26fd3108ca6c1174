package order

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"
)

const numberAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// NewOrderNumber returns ORD-YYYYMMDD-HHMMSS-mmm-RRRR in UTC with a random suffix.
func NewOrderNumber(now time.Time) (string, error) {
	suffix := make([]byte, 4)
	base := big.NewInt(int64(len(numberAlphabet)))
	for i := range suffix {
		n, err := rand.Int(rand.Reader, base)
		if err != nil {
			return "", fmt.Errorf("generate order number: %w", err)
		}
		suffix[i] = numberAlphabet[n.Int64()]
	}

	t := now.UTC()
	return fmt.Sprintf("ORD-%s-%03d-%s",
		t.Format("20060102-150405"),
		t.Nanosecond()/int(time.Millisecond),
		suffix,
	), nil
}
