package tokenizer

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// continuation marks a WordPiece symbol that does not start a word.
const continuation = "##"

// WordPieceTrainer merges the pair maximizing count(ab)/(count(a)*count(b)),
// the likelihood gain of the merge, rather than raw pair frequency.
type WordPieceTrainer struct{}

func (t *WordPieceTrainer) Train(ctx context.Context, counts WordCounts, cfg Config) (*Artifact, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if len(counts) == 0 {
		return nil, &TrainingError{Config: cfg, Err: fmt.Errorf("empty training corpus")}
	}

	words := counts.sortedWords()
	seqs := make([][]string, len(words))
	freqs := make([]int64, len(words))
	for i, w := range words {
		seqs[i] = splitWordPiece(w)
		freqs[i] = counts[w]
	}

	vocab := baseVocabulary(seqs)
	if len(vocab) > cfg.VocabSize {
		return nil, &TrainingError{
			Config: cfg,
			Err: fmt.Errorf(
				"alphabet alone has %d symbols, exceeds vocab size %d",
				len(vocab), cfg.VocabSize,
			),
		}
	}

	seen := make(map[string]struct{}, cfg.VocabSize)
	for _, v := range vocab {
		seen[v] = struct{}{}
	}

	var merges [][2]string
	for len(vocab) < cfg.VocabSize {
		if err := ctx.Err(); err != nil {
			return nil, &TrainingError{Config: cfg, Err: err}
		}

		symCounts := countSymbols(seqs, freqs)
		best, count := bestPair(seqs, freqs, func(p pair, c int64) float64 {
			return float64(c) / (float64(symCounts[p.left]) * float64(symCounts[p.right]))
		})
		if count < 2 {
			break
		}

		merged := mergeWordPiece(best)
		applyMerge(seqs, best, merged)
		merges = append(merges, [2]string{best.left, best.right})
		if _, dup := seen[merged]; !dup {
			seen[merged] = struct{}{}
			vocab = append(vocab, merged)
		}
	}

	a := &Artifact{
		Algorithm: cfg.Algorithm,
		VocabSize: cfg.VocabSize,
		TrainedAt: time.Now().UTC(),
		Vocab:     vocab,
		Merges:    merges,
	}
	if err := a.Validate(); err != nil {
		return nil, &TrainingError{Config: cfg, Err: err}
	}
	return a, nil
}

// splitWordPiece splits a word into symbols, prefixing every non-initial
// one with the continuation marker.
func splitWordPiece(w string) []string {
	var out []string
	for _, r := range w {
		if len(out) == 0 {
			out = append(out, string(r))
		} else {
			out = append(out, continuation+string(r))
		}
	}
	return out
}

// mergeWordPiece joins a pair, keeping the left symbol's position marker.
func mergeWordPiece(p pair) string {
	return p.left + strings.TrimPrefix(p.right, continuation)
}

func countSymbols(seqs [][]string, freqs []int64) map[string]int64 {
	out := make(map[string]int64)
	for i, seq := range seqs {
		for _, s := range seq {
			out[s] += freqs[i]
		}
	}
	return out
}

type wordPieceEncoder struct {
	vocab       map[string]struct{}
	maxPieceLen int
}

func newWordPieceEncoder(a *Artifact) *wordPieceEncoder {
	e := &wordPieceEncoder{vocab: make(map[string]struct{}, len(a.Vocab))}
	for _, v := range a.Vocab {
		e.vocab[v] = struct{}{}
		if n := len([]rune(strings.TrimPrefix(v, continuation))); n > e.maxPieceLen {
			e.maxPieceLen = n
		}
	}
	return e
}

// EncodeWord segments greedily, longest match first. A position with no
// matching piece collapses the whole word to the unknown token, matching
// WordPiece's all-or-nothing contract.
func (e *wordPieceEncoder) EncodeWord(word string) []string {
	if word == "" {
		return nil
	}
	runes := []rune(word)

	var out []string
	pos := 0
	for pos < len(runes) {
		end := len(runes)
		if pos+e.maxPieceLen < end {
			end = pos + e.maxPieceLen
		}

		matched := ""
		for ; end > pos; end-- {
			piece := string(runes[pos:end])
			if pos > 0 {
				piece = continuation + piece
			}
			if _, ok := e.vocab[piece]; ok {
				matched = piece
				break
			}
		}
		if matched == "" {
			return []string{UnknownToken}
		}
		out = append(out, matched)
		pos = end
	}
	return out
}

func (e *wordPieceEncoder) Encode(text string) []string {
	var out []string
	for _, w := range strings.Fields(text) {
		out = append(out, e.EncodeWord(w)...)
	}
	return out
}
