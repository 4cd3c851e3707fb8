package debug

import (
	"os"
	"strconv"
)

type debug struct {
	Traverse bool
	Cache    bool
	Format   bool
}

var d *debug

func init() {
	d = &debug{}
	d.Traverse = boolEnv("DOCMAP_DEBUG_TRAVERSE")
	d.Cache = boolEnv("DOCMAP_DEBUG_CACHE")
	d.Format = boolEnv("DOCMAP_DEBUG_FORMAT")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func Traverse() bool {
	return d.Traverse
}
func Cache() bool {
	return d.Cache
}
func Format() bool {
	return d.Format
}

func enabled() bool {
	return d.Traverse || d.Cache || d.Format
}
