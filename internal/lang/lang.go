package lang

import (
	"bufio"
	"embed"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode"

	"github.com/clipperhouse/uax29/v2/words"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

var ErrUnsupportedLanguage = errors.New("unsupported language")

//go:embed stopwords/*.txt
var builtin embed.FS

// Language tokenizes text and knows its stop words.
type Language interface {
	Name() string
	Tokenize(text string) []string
	IsStopword(word string) bool
}

// tags maps language names to BCP 47 tags for case folding. Unknown names
// fall back to language.Und.
var tags = map[string]language.Tag{
	"english":    language.English,
	"french":     language.French,
	"german":     language.German,
	"spanish":    language.Spanish,
	"italian":    language.Italian,
	"portuguese": language.Portuguese,
	"dutch":      language.Dutch,
	"turkish":    language.Turkish,
}

type wordLang struct {
	name string
	tag  language.Tag
	stop map[string]struct{}
}

// New builds a Language from a stop-word list.
func New(name string, tag language.Tag, stopwords []string) Language {
	l := &wordLang{name: name, tag: tag, stop: make(map[string]struct{}, len(stopwords))}
	for _, w := range stopwords {
		l.stop[l.fold(w)] = struct{}{}
	}
	return l
}

func (l *wordLang) Name() string { return l.name }

func (l *wordLang) IsStopword(word string) bool {
	_, ok := l.stop[word]
	return ok
}

func (l *wordLang) fold(s string) string {
	return cases.Lower(l.tag).String(norm.NFC.String(s))
}

// Tokenize lowercases text, splits it on Unicode word boundaries and
// returns the purely alphabetic tokens. Apostrophes split a word, so
// elisions and contractions ("l'amour", "don't") yield their parts.
func (l *wordLang) Tokenize(text string) []string {
	var out []string
	seg := words.FromString(l.fold(text))
	for seg.Next() {
		for _, part := range strings.FieldsFunc(seg.Value(), isApostrophe) {
			if isAlpha(part) {
				out = append(out, part)
			}
		}
	}
	return out
}

func isApostrophe(r rune) bool {
	return r == '\'' || r == '\u2019'
}

func isAlpha(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

// ReadStopwords reads one word per line. Blank lines and lines starting
// with '#' are ignored.
func ReadStopwords(r io.Reader) ([]string, error) {
	var out []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		out = append(out, line)
	}
	return out, sc.Err()
}

type Registry struct {
	langs map[string]Language
}

func NewRegistry() *Registry {
	return &Registry{langs: make(map[string]Language)}
}

// Default returns a registry with the built-in english and french resources.
func Default() *Registry {
	r := NewRegistry()
	entries, err := builtin.ReadDir("stopwords")
	if err != nil {
		panic(err)
	}
	for _, e := range entries {
		f, err := builtin.Open("stopwords/" + e.Name())
		if err != nil {
			panic(err)
		}
		list, err := ReadStopwords(f)
		f.Close()
		if err != nil {
			panic(err)
		}
		name := strings.TrimSuffix(e.Name(), ".txt")
		r.Register(New(name, tags[name], list))
	}
	return r
}

func (r *Registry) Register(l Language) {
	r.langs[strings.ToLower(l.Name())] = l
}

func (r *Registry) Lookup(name string) (Language, error) {
	l, ok := r.langs[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("%w: %q (available: %s)", ErrUnsupportedLanguage, name, strings.Join(r.Names(), ", "))
	}
	return l, nil
}

func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.langs))
	for n := range r.langs {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// LoadDir registers every <name>.txt stop-word list found in dir,
// replacing built-ins of the same name.
func (r *Registry) LoadDir(dir string) error {
	matches, err := filepath.Glob(filepath.Join(dir, "*.txt"))
	if err != nil {
		return err
	}
	for _, path := range matches {
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		list, err := ReadStopwords(f)
		f.Close()
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}
		name := strings.ToLower(strings.TrimSuffix(filepath.Base(path), ".txt"))
		r.Register(New(name, tags[name], list))
	}
	return nil
}
