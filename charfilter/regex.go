package charfilter

import (
	"regexp"
	"strings"

	"github.com/npillmayer/kaiseki/errs"
)

// RegexName is the kind of the regex filter.
const RegexName = "regex"

// RegexConfig configures a regex filter. The replacement is inserted
// literally: capture group references like $1 or ${name} are not expanded,
// and a replacement containing one is rejected.
type RegexConfig struct {
	Pattern     string `json:"pattern"`
	Replacement string `json:"replacement"`
}

// Regex replaces every match of a pattern by a literal replacement.
type Regex struct {
	config RegexConfig
	re     *regexp.Regexp
}

var groupReference = regexp.MustCompile(`\$(\d|\{|[A-Za-z_])`)

// NewRegex compiles a regex filter. An invalid pattern or a replacement
// referring to a capture group is an error of kind errs.ErrArgs.
func NewRegex(c RegexConfig) (*Regex, error) {
	re, err := regexp.Compile(c.Pattern)
	if err != nil {
		return nil, errs.Argsf("regex filter: %v", err)
	}
	if ref := groupReference.FindString(c.Replacement); ref != "" {
		return nil, errs.Argsf("regex filter: replacement refers to capture group %q", ref)
	}
	return &Regex{config: c, re: re}, nil
}

func (f *Regex) Name() string { return RegexName }

func (f *Regex) Apply(text string) (string, *OffsetTable, error) {
	t := &OffsetTable{}
	matches := f.re.FindAllStringIndex(text, -1)
	if len(matches) == 0 {
		return text, t, nil
	}
	var b strings.Builder
	b.Grow(len(text))
	last := 0
	for _, m := range matches {
		t.replaced(m[1], m[1]-m[0], len(f.config.Replacement))
		b.WriteString(text[last:m[0]])
		b.WriteString(f.config.Replacement)
		last = m[1]
	}
	b.WriteString(text[last:])
	return b.String(), t, nil
}
