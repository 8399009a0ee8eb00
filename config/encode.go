package config

import (
	"fmt"

	"github.com/signadot/splice/encode"
)

func validateEncode(o *encode.Options) error {
	for key, q := range map[string]string{"quote": o.Quote, "attrQuote": o.AttrQuote} {
		switch q {
		case "", `"`, "'":
		default:
			return fmt.Errorf("%w: encode.%s must be a quote character, not %q", ErrConfig, key, q)
		}
	}
	if o.Indent < 0 || o.Width < 0 {
		return fmt.Errorf("%w: encode.indent and encode.width must not be negative", ErrConfig)
	}
	return nil
}
