package tokenizer

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"
)

// BPETrainer builds a vocabulary by repeatedly merging the most frequent
// adjacent symbol pair until the vocabulary-size limit binds or no pair
// occurs more than once.
type BPETrainer struct{}

type pair struct {
	left  string
	right string
}

func (t *BPETrainer) Train(ctx context.Context, counts WordCounts, cfg Config) (*Artifact, error) {
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
		seqs[i] = splitRunes(w)
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

		best, count := bestPair(seqs, freqs, nil)
		if count < 2 {
			break // converged: every remaining pair is unique
		}

		merged := best.left + best.right
		applyMerge(seqs, best, merged)
		merges = append(merges, [2]string{best.left, best.right})
		// Distinct merges can yield the same surface form ("a"+"bc" and
		// "ab"+"c"); the vocabulary stores it once.
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

func splitRunes(w string) []string {
	out := make([]string, 0, len(w))
	for _, r := range w {
		out = append(out, string(r))
	}
	return out
}

// baseVocabulary returns the unknown token plus every distinct symbol, in
// lexicographic order for determinism.
func baseVocabulary(seqs [][]string) []string {
	set := make(map[string]struct{})
	for _, seq := range seqs {
		for _, s := range seq {
			set[s] = struct{}{}
		}
	}
	symbols := make([]string, 0, len(set))
	for s := range set {
		symbols = append(symbols, s)
	}
	sort.Strings(symbols)
	return append([]string{UnknownToken}, symbols...)
}

// bestPair counts adjacent pairs across all words (weighted by word
// frequency) and returns the highest-scoring one. score overrides the raw
// count when non-nil (used by WordPiece). Ties break lexicographically so
// training order never depends on map iteration.
func bestPair(seqs [][]string, freqs []int64, score func(p pair, count int64) float64) (pair, int64) {
	pairCounts := make(map[pair]int64)
	for i, seq := range seqs {
		for j := 0; j+1 < len(seq); j++ {
			pairCounts[pair{seq[j], seq[j+1]}] += freqs[i]
		}
	}

	var best pair
	var bestCount int64
	bestScore := 0.0
	found := false
	for p, c := range pairCounts {
		s := float64(c)
		if score != nil {
			s = score(p, c)
		}
		if !found || s > bestScore ||
			(s == bestScore && (p.left < best.left || (p.left == best.left && p.right < best.right))) {
			best, bestCount, bestScore = p, c, s
			found = true
		}
	}
	return best, bestCount
}

func applyMerge(seqs [][]string, p pair, merged string) {
	for i, seq := range seqs {
		var out []string
		j := 0
		changed := false
		for j < len(seq) {
			if j+1 < len(seq) && seq[j] == p.left && seq[j+1] == p.right {
				if out == nil {
					out = append(out, seq[:j]...)
				}
				out = append(out, merged)
				j += 2
				changed = true
				continue
			}
			if out != nil {
				out = append(out, seq[j])
			}
			j++
		}
		if changed {
			seqs[i] = out
		}
	}
}

type bpeEncoder struct {
	ranks map[pair]int
	vocab map[string]struct{}
}

func newBPEEncoder(a *Artifact) *bpeEncoder {
	e := &bpeEncoder{
		ranks: make(map[pair]int, len(a.Merges)),
		vocab: make(map[string]struct{}, len(a.Vocab)),
	}
	for i, m := range a.Merges {
		e.ranks[pair{m[0], m[1]}] = i
	}
	for _, v := range a.Vocab {
		e.vocab[v] = struct{}{}
	}
	return e
}

// EncodeWord applies the learned merges in rank order, then maps any symbol
// outside the vocabulary to the unknown token.
func (e *bpeEncoder) EncodeWord(word string) []string {
	if word == "" {
		return nil
	}
	seq := splitRunes(word)

	for {
		bestRank := -1
		bestAt := -1
		for j := 0; j+1 < len(seq); j++ {
			if r, ok := e.ranks[pair{seq[j], seq[j+1]}]; ok && (bestRank < 0 || r < bestRank) {
				bestRank, bestAt = r, j
			}
		}
		if bestAt < 0 {
			break
		}
		merged := seq[bestAt] + seq[bestAt+1]
		seq = append(seq[:bestAt], append([]string{merged}, seq[bestAt+2:]...)...)
	}

	for i, s := range seq {
		if _, ok := e.vocab[s]; !ok {
			seq[i] = UnknownToken
		}
	}
	return seq
}

func (e *bpeEncoder) Encode(text string) []string {
	var out []string
	for _, w := range strings.Fields(text) {
		out = append(out, e.EncodeWord(w)...)
	}
	return out
}
