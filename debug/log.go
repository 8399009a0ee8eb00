package debug

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/signadot/splice/encode"
	"github.com/signadot/splice/ir"
)

// Logf writes a formatted message to stderr. *ir.Node arguments are
// rendered as source text, maps and slices as indented JSON.
func Logf(msg string, args ...any) {
	for i := range args {
		a := args[i]
		switch x := a.(type) {
		case map[string]any, []any:
			d, err := json.MarshalIndent(a, "   |", "  ")
			if err != nil {
				args[i] = fmt.Sprintf("%v", a)
				continue
			}
			args[i] = string(d)
		case *ir.Node:
			if x == nil {
				args[i] = "<nil>"
				continue
			}
			s, err := encode.String(x)
			if err != nil {
				args[i] = fmt.Sprintf("[raw %s] %v", x.Kind, err)
				continue
			}
			args[i] = s
		case bool, string, float64, int:

		default:
		}
	}
	fmt.Fprintf(os.Stderr, msg, args...)
}
