package tokenizer

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"
	"unicode"

	"github.com/neurosnap/sentences"
)

// PunktTokenizer splits lines into word and punctuation tokens using a
// pretrained Punkt model (abbreviations, collocations, sentence starters and
// orthographic context, serialized as JSON).
//
// Words are whitespace-delimited. Leading and trailing punctuation is split
// into separate tokens. A trailing period stays attached to its word when the
// model does not end a sentence there, which keeps abbreviations such as
// "Dr." intact while "arrived." becomes "arrived" ".".
type PunktTokenizer struct {
	storage   *sentences.Storage
	sentences *sentences.DefaultSentenceTokenizer
}

// NewPunktTokenizer loads a Punkt model JSON file.
func NewPunktTokenizer(modelPath string) (*PunktTokenizer, error) {
	if modelPath == "" {
		return nil, ErrEmptyPath
	}

	data, err := os.ReadFile(modelPath)
	if err != nil {
		return nil, fmt.Errorf("read punkt model: %w", err)
	}

	tok, err := NewPunktTokenizerFromBytes(data)
	if err != nil {
		return nil, fmt.Errorf("punkt model %q: %w", modelPath, err)
	}

	return tok, nil
}

// NewPunktTokenizerFromBytes builds a PunktTokenizer from Punkt model JSON.
func NewPunktTokenizerFromBytes(data []byte) (*PunktTokenizer, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, errors.New("punkt model data must not be empty")
	}

	storage, err := sentences.LoadTraining(data)
	if err != nil {
		return nil, fmt.Errorf("decode punkt model: %w", err)
	}

	if storage.AbbrevTypes == nil && storage.Collocations == nil &&
		storage.SentStarters == nil && storage.OrthoContext == nil {
		return nil, errors.New("punkt model has no parameters")
	}

	if storage.AbbrevTypes == nil {
		storage.AbbrevTypes = map[string]int{}
	}
	if storage.Collocations == nil {
		storage.Collocations = map[string]int{}
	}
	if storage.SentStarters == nil {
		storage.SentStarters = map[string]int{}
	}
	if storage.OrthoContext == nil {
		storage.OrthoContext = map[string]int{}
	}

	return &PunktTokenizer{
		storage:   storage,
		sentences: sentences.NewSentenceTokenizer(storage),
	}, nil
}

// Tokenize implements Tokenizer.
func (t *PunktTokenizer) Tokenize(text string) ([]string, error) {
	words := strings.Fields(text)
	if len(words) == 0 {
		return []string{}, nil
	}

	finals := t.sentenceFinalWords(text, words)

	tokens := make([]string, 0, len(words)*2)
	for i, w := range words {
		tokens = t.appendWord(tokens, w, finals, i == len(words)-1, i)
	}

	return tokens, nil
}

// IsAbbreviation reports whether the model lists word (without its trailing
// period) as an abbreviation type.
func (t *PunktTokenizer) IsAbbreviation(word string) bool {
	key := strings.ToLower(strings.TrimSuffix(word, "."))
	if key == "" {
		return false
	}
	if _, ok := t.storage.AbbrevTypes[key]; ok {
		return true
	}
	// Hyphenated forms are stored by their last segment.
	if i := strings.LastIndexByte(key, '-'); i >= 0 && i+1 < len(key) {
		_, ok := t.storage.AbbrevTypes[key[i+1:]]
		return ok
	}
	return false
}

// sentenceFinalWords marks the words that close a sentence according to the
// model. It returns nil when the model's segmentation does not line up with
// whitespace word boundaries.
func (t *PunktTokenizer) sentenceFinalWords(text string, words []string) []bool {
	finals := make([]bool, len(words))

	idx := 0
	for _, s := range t.sentences.Tokenize(text) {
		n := len(strings.Fields(s.Text))
		if n == 0 {
			continue
		}
		idx += n
		if idx > len(words) {
			return nil
		}
		finals[idx-1] = true
	}

	if idx != len(words) {
		return nil
	}

	return finals
}

func (t *PunktTokenizer) appendWord(tokens []string, word string, finals []bool, last bool, i int) []string {
	runes := []rune(word)

	start := 0
	for start < len(runes) && isEdgePunct(runes[start]) {
		start++
	}
	if start == len(runes) {
		return appendPunct(tokens, runes)
	}

	end := len(runes)
	for end > start && isEdgePunct(runes[end-1]) {
		end--
	}

	core := string(runes[start:end])
	trail := runes[end:]

	// A single trailing period (not an ellipsis) stays with the word unless
	// the word ends a sentence.
	if len(trail) > 0 && trail[0] == '.' && (len(trail) == 1 || trail[1] != '.') {
		var final bool
		switch {
		case !last && t.IsAbbreviation(core):
			final = false
		case finals != nil:
			final = finals[i]
		default:
			final = !t.IsAbbreviation(core)
		}
		if last && len(trail) == 1 {
			final = true
		}
		if !final {
			core += "."
			trail = trail[1:]
		}
	}

	tokens = appendPunct(tokens, runes[:start])
	tokens = append(tokens, core)
	return appendPunct(tokens, trail)
}

// appendPunct emits one token per punctuation rune, keeping runs of periods
// or hyphens together ("...", "--").
func appendPunct(tokens []string, runes []rune) []string {
	for i := 0; i < len(runes); {
		j := i + 1
		if runes[i] == '.' || runes[i] == '-' {
			for j < len(runes) && runes[j] == runes[i] {
				j++
			}
		}
		tokens = append(tokens, string(runes[i:j]))
		i = j
	}
	return tokens
}

func isEdgePunct(r rune) bool {
	return unicode.IsPunct(r) || unicode.IsSymbol(r)
}
