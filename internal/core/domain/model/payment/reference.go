package payment

import (
	"strings"
	"time"

	"github.com/lucsky/cuid"
)

const (
	referencePrefix = "TXN-"
	suffixLength    = 6
)

// GenerateReference returns TXN-YYYYMMDDHHMMSS-XXXXXX where the suffix is six
// uppercase alphanumerics. transactions.reference is unique.
func GenerateReference(now time.Time) string {
	slug := strings.ToUpper(cuid.Slug())
	for len(slug) < suffixLength {
		slug += strings.ToUpper(cuid.Slug())
	}
	return referencePrefix + now.UTC().Format("20060102150405") + "-" + slug[len(slug)-suffixLength:]
}
