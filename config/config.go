/*
Package config reads tokenizer and analyzer configurations and builds the
configured tokenizers.

A configuration file (YAML, JSON or TOML) looks like this:

	tokenizer:
	  dictionary:
	    kind: ipadic
	    path: /usr/local/share/kaiseki/ipadic
	  user_dictionary:
	    path: userdic.csv
	  mode: decompose
	character_filters:
	  - kind: unicode_normalize
	    args: { kind: nfkc }
	token_filters:
	  - kind: japanese_stop_tags
	    args: { tags: ["助詞,係助詞"] }

Configuration keys of the tokenizer may also be given by any
schuko.Configuration, see FromConfiguration.
*/
package config

import (
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"strings"

	"github.com/npillmayer/kaiseki"
	"github.com/npillmayer/kaiseki/csvdict"
	"github.com/npillmayer/kaiseki/dict"
	"github.com/npillmayer/kaiseki/errs"
	"github.com/npillmayer/kaiseki/lattice"
	"github.com/npillmayer/schuko"
	"github.com/npillmayer/schuko/tracing"
	"github.com/spf13/viper"
)

func tracer() tracing.Trace {
	return tracing.Select("kaiseki")
}

// Dictionary locates a dictionary. Kind names the dictionary format and
// defaults to ipadic.
type Dictionary struct {
	Kind string `json:"kind" mapstructure:"kind"`
	Path string `json:"path" mapstructure:"path"`
}

// Penalty overrides the penalty of decompose mode.
type Penalty struct {
	KanjiThreshold int `json:"kanji_penalty_length_threshold" mapstructure:"kanji_penalty_length_threshold"`
	KanjiPenalty   int `json:"kanji_penalty_length_penalty" mapstructure:"kanji_penalty_length_penalty"`
	OtherThreshold int `json:"other_penalty_length_threshold" mapstructure:"other_penalty_length_threshold"`
	OtherPenalty   int `json:"other_penalty_length_penalty" mapstructure:"other_penalty_length_penalty"`
}

// Tokenizer configures a tokenizer. The system dictionary is a directory of
// compiled dictionary blobs, the user dictionary (optional) is a CSV file.
type Tokenizer struct {
	Dictionary     Dictionary  `json:"dictionary" mapstructure:"dictionary"`
	UserDictionary *Dictionary `json:"user_dictionary,omitempty" mapstructure:"user_dictionary"`
	Mode           string      `json:"mode,omitempty" mapstructure:"mode"`
	Penalty        *Penalty    `json:"penalty,omitempty" mapstructure:"penalty"`
	WithDetails    bool        `json:"with_details,omitempty" mapstructure:"with_details"`
}

// Filter configures a character or token filter. Args is handed to the
// filter's factory as JSON.
type Filter struct {
	Kind string                 `json:"kind" mapstructure:"kind"`
	Args map[string]interface{} `json:"args,omitempty" mapstructure:"args"`
}

// RawArgs returns the filter arguments as JSON, or nil if there are none.
func (f Filter) RawArgs() (json.RawMessage, error) {
	if len(f.Args) == 0 {
		return nil, nil
	}
	data, err := json.Marshal(f.Args)
	if err != nil {
		return nil, errs.Configf("arguments of filter %s: %v", f.Kind, err)
	}
	return data, nil
}

// Analyzer configures an analysis pipeline: character filters, a tokenizer
// and token filters.
type Analyzer struct {
	CharacterFilters []Filter  `json:"character_filters,omitempty" mapstructure:"character_filters"`
	Tokenizer        Tokenizer `json:"tokenizer" mapstructure:"tokenizer"`
	TokenFilters     []Filter  `json:"token_filters,omitempty" mapstructure:"token_filters"`
}

// Load reads an analyzer configuration from a file. The file type is derived
// from its extension.
func Load(path string) (*Analyzer, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetDefault("tokenizer.dictionary.kind", string(dict.IPADIC))
	v.SetDefault("tokenizer.mode", kaiseki.Normal.String())
	v.SetEnvPrefix("kaiseki")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.ReadInConfig(); err != nil {
		var perr *fs.PathError
		if errors.As(err, &perr) {
			return nil, errs.IO(path, err)
		}
		return nil, errs.Configf("%s: %v", path, err)
	}
	c := &Analyzer{}
	if err := v.Unmarshal(c); err != nil {
		return nil, errs.Configf("%s: %v", path, err)
	}
	tracer().Debugf("configuration loaded from %s", v.ConfigFileUsed())
	return c, nil
}

// Configuration keys read by FromConfiguration.
const (
	KeyDictionaryKind     = "tokenizer.dictionary.kind"
	KeyDictionaryPath     = "tokenizer.dictionary.path"
	KeyUserDictionaryKind = "tokenizer.user_dictionary.kind"
	KeyUserDictionaryPath = "tokenizer.user_dictionary.path"
	KeyMode               = "tokenizer.mode"
	KeyWithDetails        = "tokenizer.with_details"
)

// FromConfiguration reads a tokenizer configuration from a schuko
// configuration.
func FromConfiguration(conf schuko.Configuration) Tokenizer {
	c := Tokenizer{
		Dictionary: Dictionary{
			Kind: conf.GetString(KeyDictionaryKind),
			Path: conf.GetString(KeyDictionaryPath),
		},
		Mode:        conf.GetString(KeyMode),
		WithDetails: conf.GetBool(KeyWithDetails),
	}
	if conf.IsSet(KeyUserDictionaryPath) {
		c.UserDictionary = &Dictionary{
			Kind: conf.GetString(KeyUserDictionaryKind),
			Path: conf.GetString(KeyUserDictionaryPath),
		}
	}
	return c
}

// Build loads the configured dictionaries and creates a tokenizer.
func (c Tokenizer) Build(ctx context.Context) (*kaiseki.Tokenizer, error) {
	if c.Dictionary.Path == "" {
		return nil, errs.Configf("no dictionary path configured")
	}
	kind, err := parseKind(c.Dictionary.Kind, dict.IPADIC)
	if err != nil {
		return nil, err
	}
	opts, err := c.options()
	if err != nil {
		return nil, err
	}
	sys, err := dict.LoadDir(ctx, c.Dictionary.Path)
	if err != nil {
		return nil, err
	}
	if c.UserDictionary != nil && c.UserDictionary.Path != "" {
		userKind, err := parseKind(c.UserDictionary.Kind, kind)
		if err != nil {
			return nil, err
		}
		user, err := csvdict.LoadFile(c.UserDictionary.Path, userKind, sys.Matrix)
		if err != nil {
			return nil, err
		}
		opts = append(opts, kaiseki.WithUserDictionary(user))
	}
	return kaiseki.New(sys, opts...)
}

func (c Tokenizer) options() ([]kaiseki.Option, error) {
	opts := []kaiseki.Option{kaiseki.WithDetails(c.WithDetails)}
	if c.Mode != "" {
		mode, err := kaiseki.ParseMode(c.Mode)
		if err != nil {
			return nil, err
		}
		opts = append(opts, kaiseki.WithMode(mode))
	}
	if c.Penalty != nil {
		opts = append(opts, kaiseki.WithPenalty(lattice.Penalty{
			KanjiThreshold: c.Penalty.KanjiThreshold,
			KanjiPenalty:   c.Penalty.KanjiPenalty,
			OtherThreshold: c.Penalty.OtherThreshold,
			OtherPenalty:   c.Penalty.OtherPenalty,
		}))
	}
	return opts, nil
}

func parseKind(name string, dflt dict.Kind) (dict.Kind, error) {
	if name == "" {
		return dflt, nil
	}
	return dict.ParseKind(name)
}
