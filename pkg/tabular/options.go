package tabular

// options configures reading.
type options struct {
	delimiter rune
	skipLines int
}

func defaultOptions() *options {
	return &options{delimiter: ','}
}

func (o *options) format() string {
	if o.delimiter == '\t' {
		return "tsv"
	}
	return "csv"
}

// Option configures a Read or ReadFile call.
type Option func(*options)

// WithDelimiter sets the field delimiter. The default is a comma.
func WithDelimiter(d rune) Option {
	return func(o *options) {
		o.delimiter = d
	}
}

// WithSkipLines skips n leading lines before the header row. IEDB
// exports carry a grouping line above the real header.
func WithSkipLines(n int) Option {
	return func(o *options) {
		o.skipLines = n
	}
}
