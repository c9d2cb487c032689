package tokenfilter

import (
	"github.com/npillmayer/kaiseki"
	"github.com/npillmayer/kaiseki/dict"
	"github.com/npillmayer/kaiseki/errs"
)

// FormConfig configures the japanese_reading_form and japanese_base_form
// filters. Kind names the dictionary format, which fixes the detail field
// holding the form.
type FormConfig struct {
	Kind string `json:"kind"`
}

var readingField = map[dict.Kind]int{
	dict.IPADIC: 7,
	dict.UniDic: 6,
	dict.KoDic:  3,
}

var baseField = map[dict.Kind]int{
	dict.IPADIC: 6,
	dict.UniDic: 10,
}

// Form replaces a token's text by one of its detail fields.
type Form struct {
	name  string
	field int
}

// NewReadingForm creates a japanese_reading_form filter, replacing token
// texts by their reading.
func NewReadingForm(c FormConfig) (*Form, error) {
	return newForm(ReadingFormName, c, readingField)
}

// NewBaseForm creates a japanese_base_form filter, replacing inflected token
// texts by their dictionary form.
func NewBaseForm(c FormConfig) (*Form, error) {
	return newForm(BaseFormName, c, baseField)
}

func newForm(name string, c FormConfig, fields map[dict.Kind]int) (*Form, error) {
	kind, err := dict.ParseKind(c.Kind)
	if err != nil {
		return nil, err
	}
	field, ok := fields[kind]
	if !ok {
		return nil, errs.Configf("%s: not supported for dictionary kind %s", name, kind)
	}
	return &Form{name: name, field: field}, nil
}

func (f *Form) Name() string { return f.name }

// Apply leaves unknown words and words without the field untouched.
func (f *Form) Apply(tokens []*kaiseki.Token) ([]*kaiseki.Token, error) {
	for _, t := range tokens {
		if isUnknown(t) {
			continue
		}
		if s := t.Detail(f.field); s != "" && s != "*" {
			t.Text = s
		}
	}
	return tokens, nil
}
