package tokenizer

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"sort"
	"strings"
	"time"
)

// UnigramTrainer fits a unigram language model over subword pieces: a large
// seed vocabulary of frequent substrings is refined by EM and iteratively
// pruned down to the vocabulary-size limit. Single characters are never
// pruned so every word stays segmentable.
type UnigramTrainer struct {
	// MaxPieceLen bounds seed substrings, in runes. Zero means 8.
	MaxPieceLen int
	// SeedFactor scales the seed vocabulary relative to the target size.
	// Zero means 4.
	SeedFactor int
	// EMRounds is the number of EM passes between prunes. Zero means 2.
	EMRounds int
}

const (
	defaultMaxPieceLen = 8
	defaultSeedFactor  = 4
	defaultEMRounds    = 2
	pruneKeep          = 0.75
	unkPenalty         = 10.0
)

func (t *UnigramTrainer) Train(ctx context.Context, counts WordCounts, cfg Config) (*Artifact, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if len(counts) == 0 {
		return nil, &TrainingError{Config: cfg, Err: fmt.Errorf("empty training corpus")}
	}

	maxLen := t.MaxPieceLen
	if maxLen <= 0 {
		maxLen = defaultMaxPieceLen
	}
	seedFactor := t.SeedFactor
	if seedFactor <= 0 {
		seedFactor = defaultSeedFactor
	}
	emRounds := t.EMRounds
	if emRounds <= 0 {
		emRounds = defaultEMRounds
	}

	words := counts.sortedWords()
	freqs := make([]int64, len(words))
	for i, w := range words {
		freqs[i] = counts[w]
	}

	scores, mandatory := seedVocabulary(words, freqs, maxLen, seedFactor*cfg.VocabSize, cfg.Seed)
	if len(mandatory)+1 > cfg.VocabSize {
		return nil, &TrainingError{
			Config: cfg,
			Err: fmt.Errorf(
				"alphabet alone has %d symbols, exceeds vocab size %d",
				len(mandatory)+1, cfg.VocabSize,
			),
		}
	}

	// Reserve one slot for the unknown token.
	target := cfg.VocabSize - 1
	for {
		if err := ctx.Err(); err != nil {
			return nil, &TrainingError{Config: cfg, Err: err}
		}

		for round := 0; round < emRounds; round++ {
			scores = emStep(words, freqs, scores)
		}
		if len(scores) <= target {
			break
		}
		scores = prune(scores, mandatory, target)
	}

	a := &Artifact{
		Algorithm: cfg.Algorithm,
		VocabSize: cfg.VocabSize,
		Seed:      cfg.Seed,
		TrainedAt: time.Now().UTC(),
		Vocab:     unigramVocab(scores),
		Scores:    scores,
	}
	if err := a.Validate(); err != nil {
		return nil, &TrainingError{Config: cfg, Err: err}
	}
	return a, nil
}

// seedVocabulary collects substring candidates up to maxLen runes, scored by
// log relative frequency. The seeded RNG adds a vanishing jitter that makes
// later tie-breaks reproducible for a given seed. Single runes are returned
// as the mandatory set.
func seedVocabulary(words []string, freqs []int64, maxLen, limit int, seed int64) (map[string]float64, map[string]struct{}) {
	subCounts := make(map[string]int64)
	mandatory := make(map[string]struct{})

	for i, w := range words {
		runes := []rune(w)
		for s := 0; s < len(runes); s++ {
			mandatory[string(runes[s])] = struct{}{}
			for e := s + 1; e <= len(runes) && e-s <= maxLen; e++ {
				subCounts[string(runes[s:e])] += freqs[i]
			}
		}
	}

	pieces := make([]string, 0, len(subCounts))
	for p := range subCounts {
		pieces = append(pieces, p)
	}
	sort.Slice(pieces, func(i, j int) bool {
		ci, cj := subCounts[pieces[i]], subCounts[pieces[j]]
		if ci != cj {
			return ci > cj
		}
		return pieces[i] < pieces[j]
	})

	if limit > 0 && len(pieces) > limit {
		kept := pieces[:limit]
		// Mandatory single runes survive the cap unconditionally.
		keptSet := make(map[string]struct{}, len(kept))
		for _, p := range kept {
			keptSet[p] = struct{}{}
		}
		for m := range mandatory {
			if _, ok := keptSet[m]; !ok {
				kept = append(kept, m)
			}
		}
		pieces = kept
	}

	var total int64
	for _, p := range pieces {
		total += subCounts[p]
	}

	rng := rand.New(rand.NewSource(seed))
	scores := make(map[string]float64, len(pieces))
	sort.Strings(pieces) // fixed order for the jitter stream
	for _, p := range pieces {
		scores[p] = math.Log(float64(subCounts[p])/float64(total)) + rng.Float64()*1e-9
	}
	return scores, mandatory
}

// emStep reassigns piece probabilities from a hard-EM pass: each word is
// segmented by Viterbi under the current scores, and the piece usage counts
// become the next log-probabilities.
func emStep(words []string, freqs []int64, scores map[string]float64) map[string]float64 {
	usage := make(map[string]int64, len(scores))
	var total int64

	for i, w := range words {
		for _, piece := range viterbiSegment(w, scores) {
			if piece == UnknownToken {
				continue
			}
			usage[piece] += freqs[i]
			total += freqs[i]
		}
	}

	next := make(map[string]float64, len(scores))
	for p, old := range scores {
		if c, ok := usage[p]; ok && total > 0 {
			next[p] = math.Log(float64(c) / float64(total))
		} else {
			// Unused pieces keep a decayed score until pruning removes them.
			next[p] = old - 1
		}
	}
	return next
}

// prune drops the lowest-scoring quarter of prunable pieces, never going
// below target and never touching single-rune pieces.
func prune(scores map[string]float64, mandatory map[string]struct{}, target int) map[string]float64 {
	type scored struct {
		piece string
		score float64
	}
	var prunable []scored
	for p, s := range scores {
		if _, keep := mandatory[p]; keep {
			continue
		}
		prunable = append(prunable, scored{p, s})
	}
	sort.Slice(prunable, func(i, j int) bool {
		if prunable[i].score != prunable[j].score {
			return prunable[i].score < prunable[j].score
		}
		return prunable[i].piece < prunable[j].piece
	})

	drop := len(prunable) - int(float64(len(prunable))*pruneKeep)
	if len(scores)-drop < target {
		drop = len(scores) - target
	}
	if drop <= 0 {
		return scores
	}

	for _, s := range prunable[:drop] {
		delete(scores, s.piece)
	}
	return scores
}

// viterbiSegment finds the highest-probability segmentation of word under
// the current piece scores. Characters outside the model map to the
// unknown token at a fixed penalty below the worst piece.
func viterbiSegment(word string, scores map[string]float64) []string {
	runes := []rune(word)
	if len(runes) == 0 {
		return nil
	}

	minScore := 0.0
	for _, s := range scores {
		if s < minScore {
			minScore = s
		}
	}
	unkScore := minScore - unkPenalty

	negInf := math.Inf(-1)
	best := make([]float64, len(runes)+1)
	back := make([]int, len(runes)+1)
	tok := make([]string, len(runes)+1)
	for i := 1; i <= len(runes); i++ {
		best[i] = negInf
	}

	for end := 1; end <= len(runes); end++ {
		for start := 0; start < end; start++ {
			piece := string(runes[start:end])
			score, ok := scores[piece]
			if !ok {
				if end-start > 1 {
					continue
				}
				// Single unknown character.
				score = unkScore
				piece = UnknownToken
			}
			if cand := best[start] + score; cand > best[end] {
				best[end] = cand
				back[end] = start
				tok[end] = piece
			}
		}
	}

	var out []string
	for end := len(runes); end > 0; end = back[end] {
		out = append(out, tok[end])
	}
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// unigramVocab orders pieces by descending score for the artifact, with the
// unknown token first.
func unigramVocab(scores map[string]float64) []string {
	pieces := make([]string, 0, len(scores))
	for p := range scores {
		pieces = append(pieces, p)
	}
	sort.Slice(pieces, func(i, j int) bool {
		if scores[pieces[i]] != scores[pieces[j]] {
			return scores[pieces[i]] > scores[pieces[j]]
		}
		return pieces[i] < pieces[j]
	})
	return append([]string{UnknownToken}, pieces...)
}

type unigramEncoder struct {
	scores map[string]float64
}

func newUnigramEncoder(a *Artifact) *unigramEncoder {
	return &unigramEncoder{scores: a.Scores}
}

func (e *unigramEncoder) EncodeWord(word string) []string {
	return viterbiSegment(word, e.scores)
}

func (e *unigramEncoder) Encode(text string) []string {
	var out []string
	for _, w := range strings.Fields(text) {
		out = append(out, e.EncodeWord(w)...)
	}
	return out
}
