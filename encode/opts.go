package encode

type EncodeOption func(*EncState)

// Quote sets the quote character of code string literals.
func Quote(q byte) EncodeOption {
	return func(es *EncState) { es.quote = q }
}

// AttrQuote sets the quote character of markup attribute values.
func AttrQuote(q byte) EncodeOption {
	return func(es *EncState) { es.attrQuote = q }
}

func Indent(n int) EncodeOption {
	return func(es *EncState) { es.indent = n }
}

func TrailingComma(v bool) EncodeOption {
	return func(es *EncState) { es.trailingComma = v }
}

// Width sets the line width above which objects and arrays are broken
// over several lines. A width <= 0 never breaks.
func Width(n int) EncodeOption {
	return func(es *EncState) { es.width = n }
}

// Depth sets the starting indentation depth, for output spliced into text
// that is already indented.
func Depth(n int) EncodeOption {
	return func(es *EncState) { es.depth = n }
}

func EncodeColors(c *Colors) EncodeOption {
	return func(es *EncState) { es.Color = c.Color }
}

// Options collects a renderer style in one value, as read from a
// configuration file. Zero fields keep the defaults.
type Options struct {
	Quote         string `yaml:"quote"`
	AttrQuote     string `yaml:"attrQuote"`
	Indent        int    `yaml:"indent"`
	TrailingComma *bool  `yaml:"trailingComma"`
	Width         int    `yaml:"width"`
}

func (o *Options) EncodeOptions() []EncodeOption {
	if o == nil {
		return nil
	}
	var res []EncodeOption
	if o.Quote != "" {
		res = append(res, Quote(o.Quote[0]))
	}
	if o.AttrQuote != "" {
		res = append(res, AttrQuote(o.AttrQuote[0]))
	}
	if o.Indent > 0 {
		res = append(res, Indent(o.Indent))
	}
	if o.TrailingComma != nil {
		res = append(res, TrailingComma(*o.TrailingComma))
	}
	if o.Width != 0 {
		res = append(res, Width(o.Width))
	}
	return res
}
