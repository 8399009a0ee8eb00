package debug

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
)

type debug struct {
	Parse   bool
	Diff    bool
	Reduce  bool
	Patch   bool
	Plugins bool
}

var d *debug

func init() {
	d = &debug{}
	all := boolEnv("SPLICE_DEBUG")
	d.Parse = all || boolEnv("SPLICE_DEBUG_PARSE")
	d.Diff = all || boolEnv("SPLICE_DEBUG_DIFF")
	d.Reduce = all || boolEnv("SPLICE_DEBUG_REDUCE")
	d.Patch = all || boolEnv("SPLICE_DEBUG_PATCH")
	d.Plugins = all || boolEnv("SPLICE_DEBUG_PLUGINS")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func Parse() bool {
	return d.Parse
}
func Diff() bool {
	return d.Diff
}
func Reduce() bool {
	return d.Reduce
}
func Patch() bool {
	return d.Patch
}
func Plugins() bool {
	return d.Plugins
}

func LogAny(v any) {
	d, err := json.Marshal(v)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", v)
		return
	}
	os.Stderr.Write(d)
	os.Stderr.Write([]byte{'\n'})
}
