package textproc

import (
	"fmt"
	"regexp"
	"strings"

	sastrawi "github.com/RadhiFadlillah/go-sastrawi"
	"github.com/forPelevin/gomoji"
	"github.com/kljensen/snowball/english"
)

// Language selects the stopword dictionary and stemmer used by a Normalizer.
// There is no implicit default: callers must pick one explicitly.
type Language string

const (
	LangIndonesian Language = "id"
	LangEnglish    Language = "en"
	LangBilingual  Language = "id+en"
)

var (
	hashtagRe = regexp.MustCompile(`#\w+`)
	urlRe     = regexp.MustCompile(`http\S+|www\.\S+`)
	nonAlpha  = regexp.MustCompile(`[^a-zA-Z\s]`)
	spaces    = regexp.MustCompile(`\s+`)
)

type stemmer interface {
	Stem(word string) string
}

type stopwordSet interface {
	Contains(word string) bool
}

type englishStemmer struct{}

func (englishStemmer) Stem(word string) string { return english.Stem(word, false) }

type mapStopwords map[string]struct{}

func (m mapStopwords) Contains(word string) bool {
	_, ok := m[word]
	return ok
}

// Normalizer cleans raw caption text into a stemmed, stopword-free string.
// It carries its own dictionaries so instances are independent: no
// process-wide state, safe to construct per test.
type Normalizer struct {
	lang     Language
	stops    []stopwordSet
	stemmers []stemmer
}

// NewNormalizer builds a Normalizer for lang. The stopword set is the
// language's base dictionary plus a curated supplement of informal
// abbreviations common in short-video captions.
func NewNormalizer(lang Language) (*Normalizer, error) {
	n := &Normalizer{lang: lang}
	switch lang {
	case LangIndonesian:
		n.stops = []stopwordSet{sastrawi.DefaultStopword(), mapStopwords(informalIndonesian)}
		n.stemmers = []stemmer{sastrawi.NewStemmer(sastrawi.DefaultDictionary())}
	case LangEnglish:
		n.stops = []stopwordSet{mapStopwords(englishStopwords)}
		n.stemmers = []stemmer{englishStemmer{}}
	case LangBilingual:
		n.stops = []stopwordSet{
			sastrawi.DefaultStopword(),
			mapStopwords(informalIndonesian),
			mapStopwords(englishStopwords),
		}
		// Indonesian first; fall through to English for tokens the
		// Sastrawi stemmer leaves unchanged.
		n.stemmers = []stemmer{sastrawi.NewStemmer(sastrawi.DefaultDictionary()), englishStemmer{}}
	default:
		return nil, fmt.Errorf("unknown language %q", lang)
	}
	return n, nil
}

// Language returns the language this Normalizer was built for.
func (n *Normalizer) Language() Language { return n.lang }

// Clean runs the full normalization pipeline. Order matters: hashtags are
// stripped before punctuation so hashtag text never leaks into the cleaned
// caption. Empty input yields an empty string, never an error.
func (n *Normalizer) Clean(text string) string {
	if text == "" {
		return ""
	}
	text = strings.ToLower(text)
	text = hashtagRe.ReplaceAllString(text, " ")
	text = stripEmoji(text)
	text = urlRe.ReplaceAllString(text, " ")
	text = nonAlpha.ReplaceAllString(text, " ")
	text = strings.TrimSpace(spaces.ReplaceAllString(text, " "))

	var out []string
	for _, tok := range strings.Fields(text) {
		if n.isStopword(tok) {
			continue
		}
		out = append(out, n.stem(tok))
	}
	return strings.Join(out, " ")
}

func (n *Normalizer) isStopword(word string) bool {
	for _, s := range n.stops {
		if s.Contains(word) {
			return true
		}
	}
	return false
}

func (n *Normalizer) stem(word string) string {
	for _, s := range n.stemmers {
		if stemmed := s.Stem(word); stemmed != word {
			return stemmed
		}
	}
	return word
}

// stripEmoji replaces every emoji rune with a space so adjacent words do
// not fuse when the emoji is removed.
func stripEmoji(s string) string {
	if !gomoji.ContainsEmoji(s) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if gomoji.ContainsEmoji(string(r)) {
			b.WriteRune(' ')
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
