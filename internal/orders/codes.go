package orders

import (
	"crypto/rand"
	"strconv"
	"strings"
	"time"
)

const base36 = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// NewOrderCode returns the external order key: "SC" + unix-millis in base36
// + 4 random base36 chars, all uppercase. Uniqueness rests on the timestamp
// plus suffix entropy; the store additionally enforces it with a unique
// constraint on order_code.
func NewOrderCode() string {
	ts := strconv.FormatInt(time.Now().UnixMilli(), 36)

	buf := make([]byte, 4)
	if _, err := rand.Read(buf); err != nil {
		panic(err)
	}
	for i := range buf {
		buf[i] = base36[int(buf[i])%len(base36)]
	}

	return "SC" + strings.ToUpper(ts) + string(buf)
}
