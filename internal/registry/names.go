package registry

import (
	"path"
	"strconv"
	"strings"
	"sync/atomic"
	"time"
	"unicode"
	"unicode/utf8"
)

const (
	maxNameLen   = 200
	fallbackName = "file"
)

// nameGenerator hands out storage names prefixed with a nanosecond timestamp
// that strictly increases within the process, even when the clock does not.
type nameGenerator struct {
	last atomic.Int64
	now  func() time.Time
}

func newNameGenerator(now func() time.Time) *nameGenerator {
	return &nameGenerator{now: now}
}

func (g *nameGenerator) next(cleanName string) string {
	for {
		last := g.last.Load()
		ts := g.now().UnixNano()
		if ts <= last {
			ts = last + 1
		}
		if g.last.CompareAndSwap(last, ts) {
			return strconv.FormatInt(ts, 10) + "_" + cleanName
		}
	}
}

// SanitizeName reduces a client file name to a single safe path element.
func SanitizeName(name string) string {
	name = strings.ReplaceAll(name, `\`, "/")
	name = path.Base(name)
	name = strings.Map(func(r rune) rune {
		if unicode.IsControl(r) || r == '"' {
			return -1
		}
		return r
	}, name)
	name = strings.TrimSpace(name)
	if name == "" || name == "." || name == ".." || name == "/" {
		return fallbackName
	}
	if len(name) > maxNameLen {
		ext := path.Ext(name)
		if len(ext) > 16 {
			ext = ""
		}
		name = truncate(name[:len(name)-len(ext)], maxNameLen-len(ext)) + ext
	}
	return name
}

// truncate cuts s to at most n bytes without splitting a rune.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
