package interp

import (
	"log"
	"strings"
)

func newTestLogger(sb *strings.Builder) *log.Logger {
	return log.New(sb, "", 0)
}
