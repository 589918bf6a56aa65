package model

import (
	"errors"
	"fmt"
	"os"

	gosp "github.com/vikesh-raj/go-sentencepiece-encoder/sentencepiece"
	"google.golang.org/protobuf/proto"
)

// SentencePieceInfo summarizes a SentencePiece model protobuf.
type SentencePieceInfo struct {
	Pieces      int
	Normal      int
	Control     int
	UserDefined int
	HasUnknown  bool
}

// InspectSentencePiece parses the model protobuf at path and rejects
// artifacts the UNIGRAM encoder cannot use: files that do not decode, models
// without pieces, and models lacking an unknown piece.
func InspectSentencePiece(path string) (SentencePieceInfo, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return SentencePieceInfo{}, fmt.Errorf("read sentencepiece model: %w", err)
	}
	return InspectSentencePieceBytes(data)
}

func InspectSentencePieceBytes(data []byte) (SentencePieceInfo, error) {
	if len(data) == 0 {
		return SentencePieceInfo{}, errors.New("sentencepiece model is empty")
	}

	var m gosp.ModelProto
	if err := proto.Unmarshal(data, &m); err != nil {
		return SentencePieceInfo{}, fmt.Errorf("unmarshal sentencepiece model: %w", err)
	}

	var info SentencePieceInfo
	for _, piece := range m.GetPieces() {
		info.Pieces++
		switch piece.GetType() {
		case gosp.ModelProto_SentencePiece_NORMAL:
			info.Normal++
		case gosp.ModelProto_SentencePiece_USER_DEFINED:
			info.UserDefined++
		case gosp.ModelProto_SentencePiece_CONTROL:
			info.Control++
		case gosp.ModelProto_SentencePiece_UNKNOWN:
			info.HasUnknown = true
		}
	}

	if info.Pieces == 0 {
		return info, errors.New("sentencepiece model has no pieces")
	}
	if info.Normal+info.UserDefined == 0 {
		return info, errors.New("sentencepiece model has no normal pieces")
	}
	if !info.HasUnknown {
		return info, errors.New("sentencepiece model has no unknown piece")
	}
	return info, nil
}
