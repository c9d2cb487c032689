package tokenfilter

import (
	"strings"

	"github.com/emirpasic/gods/sets/hashset"
	"github.com/npillmayer/kaiseki"
)

// posDepth is the number of part-of-speech levels forming a tag.
const posDepth = 4

// TagsConfig configures the japanese_stop_tags and japanese_keep_tags
// filters. A tag is a comma-separated part-of-speech path like
// "名詞,固有名詞,地域,一般"; missing levels are filled with "*".
type TagsConfig struct {
	Tags []string `json:"tags"`
}

// Tags drops (or keeps only) tokens by part-of-speech tag.
type Tags struct {
	tags *hashset.Set
	keep bool
}

// NewTags creates a japanese_stop_tags filter, or a japanese_keep_tags filter
// if keep is set.
func NewTags(c TagsConfig, keep bool) *Tags {
	f := &Tags{tags: hashset.New(), keep: keep}
	for _, tag := range c.Tags {
		f.tags.Add(normalizeTag(strings.Split(tag, ",")))
	}
	return f
}

func (f *Tags) Name() string {
	if f.keep {
		return KeepTagsName
	}
	return StopTagsName
}

func (f *Tags) Apply(tokens []*kaiseki.Token) ([]*kaiseki.Token, error) {
	return retain(tokens, func(t *kaiseki.Token) bool {
		d := t.Details()
		if len(d) > posDepth {
			d = d[:posDepth]
		}
		return f.tags.Contains(normalizeTag(d)) == f.keep
	}), nil
}

func normalizeTag(levels []string) string {
	tag := [posDepth]string{"*", "*", "*", "*"}
	for i, l := range levels {
		if i == posDepth {
			break
		}
		if l = strings.TrimSpace(l); l != "" {
			tag[i] = l
		}
	}
	return strings.Join(tag[:], ",")
}
