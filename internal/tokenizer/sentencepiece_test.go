package tokenizer

import (
	"errors"
	"reflect"
	"testing"

	gosp "github.com/vikesh-raj/go-sentencepiece-encoder/sentencepiece"
	"google.golang.org/protobuf/proto"

	"github.com/example/go-linetok/internal/testutil"
)

func spPiece(text string, score float32, typ gosp.ModelProto_SentencePiece_Type) *gosp.ModelProto_SentencePiece {
	return &gosp.ModelProto_SentencePiece{
		Piece: proto.String(text),
		Score: proto.Float32(score),
		Type:  typ.Enum(),
	}
}

// tinySentencePieceModel returns a serialized UNIGRAM model that knows
// "▁hello", "▁world" and "!".
func tinySentencePieceModel(t *testing.T) []byte {
	t.Helper()

	m := &gosp.ModelProto{
		Pieces: []*gosp.ModelProto_SentencePiece{
			spPiece("<unk>", 0, gosp.ModelProto_SentencePiece_UNKNOWN),
			spPiece("<s>", 0, gosp.ModelProto_SentencePiece_CONTROL),
			spPiece("</s>", 0, gosp.ModelProto_SentencePiece_CONTROL),
			spPiece("▁hello", -1, gosp.ModelProto_SentencePiece_NORMAL),
			spPiece("▁world", -1, gosp.ModelProto_SentencePiece_NORMAL),
			spPiece("!", -1, gosp.ModelProto_SentencePiece_NORMAL),
		},
	}

	data, err := proto.Marshal(m)
	if err != nil {
		t.Fatalf("marshal model: %v", err)
	}

	return data
}

// ---------------------------------------------------------------------------
// NewSentencePieceTokenizer
// ---------------------------------------------------------------------------

func TestNewSentencePieceTokenizer_MissingFile(t *testing.T) {
	_, err := NewSentencePieceTokenizer("/nonexistent/tokenizer.model")
	if err == nil {
		t.Fatal("expected error for missing model file")
	}
}

func TestNewSentencePieceTokenizer_EmptyPath(t *testing.T) {
	_, err := NewSentencePieceTokenizer("")
	if err == nil {
		t.Fatal("expected error for empty path")
	}

	if !errors.Is(err, ErrEmptyPath) {
		t.Errorf("expected ErrEmptyPath, got: %v", err)
	}
}

func TestNewSentencePieceTokenizer_RejectsPunktJSON(t *testing.T) {
	_, err := NewSentencePieceTokenizer(testutil.WritePunktModel(t))
	if err == nil {
		t.Fatal("expected error for non-sentencepiece artifact")
	}
}

func TestNewSentencePieceTokenizerFromBytes_Empty(t *testing.T) {
	if _, err := NewSentencePieceTokenizerFromBytes(nil); err == nil {
		t.Fatal("expected error for empty data")
	}
}

// ---------------------------------------------------------------------------
// Tokenize
// ---------------------------------------------------------------------------

func TestSentencePieceTokenize_TinyModel(t *testing.T) {
	tok, err := NewSentencePieceTokenizerFromBytes(tinySentencePieceModel(t))
	if err != nil {
		t.Fatalf("NewSentencePieceTokenizerFromBytes: %v", err)
	}

	got, err := tok.Tokenize("hello world!")
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}

	want := []string{"hello", "world", "!"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Tokenize = %q; want %q", got, want)
	}
}

func TestSentencePieceTokenize_EmptyString(t *testing.T) {
	tok, err := NewSentencePieceTokenizerFromBytes(tinySentencePieceModel(t))
	if err != nil {
		t.Fatalf("NewSentencePieceTokenizerFromBytes: %v", err)
	}

	got, err := tok.Tokenize("")
	if err != nil {
		t.Fatalf("Tokenize(\"\") should not error: %v", err)
	}

	if len(got) != 0 {
		t.Errorf("Tokenize(\"\") = %v, want empty slice", got)
	}
}

func TestSentencePieceTokenize_RealModel(t *testing.T) {
	path := testutil.RequireModelFile(t, "LINETOK_SP_MODEL", "tokenizer.model")

	tok, err := NewSentencePieceTokenizer(path)
	if err != nil {
		t.Fatalf("NewSentencePieceTokenizer(%q): %v", path, err)
	}

	got, err := tok.Tokenize("The quick brown fox jumps over the lazy dog.")
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}

	if len(got) == 0 {
		t.Fatal("Tokenize returned empty result")
	}

	for i, piece := range got {
		if piece == "" {
			t.Errorf("token[%d] is empty", i)
		}
	}
}

func TestSentencePieceTokenizer_ImplementsInterface(t *testing.T) {
	tok, err := NewSentencePieceTokenizerFromBytes(tinySentencePieceModel(t))
	if err != nil {
		t.Fatalf("NewSentencePieceTokenizerFromBytes: %v", err)
	}

	var _ Tokenizer = tok
}
