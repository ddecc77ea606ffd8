// Package debug provides env-gated tracing for the diff engine.
package debug

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
)

type debug struct {
	Diff   bool
	Snakes bool
	Patch  bool
}

var d *debug

func init() {
	d = &debug{}
	d.Diff = boolEnv("NBDIFF_DEBUG_DIFF")
	d.Snakes = boolEnv("NBDIFF_DEBUG_SNAKES")
	d.Patch = boolEnv("NBDIFF_DEBUG_PATCH")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func Diff() bool {
	return d.Diff
}
func Snakes() bool {
	return d.Snakes
}
func Patch() bool {
	return d.Patch
}

func Logf(msg string, args ...any) {
	for i := range args {
		switch a := args[i].(type) {
		case map[string]any, []any, json.Number:
			d, err := json.Marshal(a)
			if err != nil {
				args[i] = fmt.Sprintf("%v", a)
				continue
			}
			args[i] = string(d)
		default:
		}
	}
	fmt.Fprintf(os.Stderr, msg, args...)
}
