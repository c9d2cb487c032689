package tokenfilter

import (
	"unicode/utf8"

	"github.com/npillmayer/kaiseki"
	"github.com/npillmayer/kaiseki/errs"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Case maps token texts to lower or upper case.
type Case struct {
	name  string
	caser func() cases.Caser
}

// NewLowercase creates a lowercase filter.
func NewLowercase() *Case {
	return &Case{name: LowercaseName, caser: func() cases.Caser { return cases.Lower(language.Und) }}
}

// NewUppercase creates an uppercase filter.
func NewUppercase() *Case {
	return &Case{name: UppercaseName, caser: func() cases.Caser { return cases.Upper(language.Und) }}
}

func (c *Case) Name() string { return c.name }

func (c *Case) Apply(tokens []*kaiseki.Token) ([]*kaiseki.Token, error) {
	caser := c.caser() // a Caser is stateful, one per call
	for _, t := range tokens {
		t.Text = caser.String(t.Text)
	}
	return tokens, nil
}

// LengthConfig configures the length filter. Lengths count runes; a missing
// bound is unlimited.
type LengthConfig struct {
	Min *int `json:"min"`
	Max *int `json:"max"`
}

// Length drops tokens whose text is shorter than Min or longer than Max.
type Length struct {
	min, max int
}

// NewLength creates a length filter.
func NewLength(c LengthConfig) (*Length, error) {
	f := &Length{min: 0, max: -1}
	if c.Min != nil {
		f.min = *c.Min
	}
	if c.Max != nil {
		f.max = *c.Max
	}
	if f.min < 0 || (c.Max != nil && (f.max < 0 || f.max < f.min)) {
		return nil, errs.Configf("length: invalid bounds [%d, %d]", f.min, f.max)
	}
	return f, nil
}

func (f *Length) Name() string { return LengthName }

func (f *Length) Apply(tokens []*kaiseki.Token) ([]*kaiseki.Token, error) {
	return retain(tokens, func(t *kaiseki.Token) bool {
		n := utf8.RuneCountInString(t.Text)
		return n >= f.min && (f.max < 0 || n <= f.max)
	}), nil
}
