package order

import (
	"strings"
	"time"

	"github.com/lucsky/cuid"
)

const numberPrefix = "ORD-"

// GenerateNumber returns a human readable order number, ORD-YYYYMMDD-<slug>.
// The slug comes from cuid, which keeps numbers unique across processes; the
// orders.number unique index backs this up.
func GenerateNumber(now time.Time) string {
	return numberPrefix + now.UTC().Format("20060102") + "-" + strings.ToUpper(cuid.Slug())
}
