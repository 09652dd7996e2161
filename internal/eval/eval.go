package eval

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/Aishwarya-Selvamurugan/Tokenizer/internal/tokenizer"
)

// MetricRecord is one evaluation outcome for a (language, tokenizer
// configuration) pair. Created once, appended to a report, never mutated.
type MetricRecord struct {
	Language  string
	Algorithm string
	VocabSize int
	Scale     string
	// NSL is the tokenized sequence length divided by the reference
	// segmentation length, averaged per document.
	NSL float64
	// Fertility is the average number of subword tokens per word; at
	// least 1.0 since every word yields at least one token.
	Fertility float64
}

// Evaluator computes intrinsic metrics for trained artifacts. It has no
// side effects beyond the records it returns.
type Evaluator struct {
	Reference Reference
}

// EvaluateText computes NSL and fertility of one artifact over a held-out
// text (one document per line). Evaluating the same artifact on the same
// text always yields identical values.
func (e *Evaluator) EvaluateText(a *tokenizer.Artifact, lang, scale, text string) (MetricRecord, error) {
	enc, err := tokenizer.NewEncoder(a)
	if err != nil {
		return MetricRecord{}, err
	}

	var (
		ratioSum  float64
		docs      int
		tokensSum int64
		wordsSum  int64
	)

	sc := bufio.NewScanner(strings.NewReader(text))
	sc.Buffer(make([]byte, 64*1024), 16*1024*1024)
	for sc.Scan() {
		doc := strings.TrimSpace(sc.Text())
		if doc == "" {
			continue
		}

		tokens := enc.Encode(doc)
		refCount, err := e.Reference.Count(doc)
		if err != nil {
			return MetricRecord{}, fmt.Errorf("reference segmentation (%s): %w", lang, err)
		}
		if refCount == 0 {
			continue
		}

		ratioSum += float64(len(tokens)) / float64(refCount)
		docs++
		tokensSum += int64(len(tokens))
		wordsSum += int64(len(strings.Fields(doc)))
	}
	if err := sc.Err(); err != nil {
		return MetricRecord{}, fmt.Errorf("scan evaluation text (%s): %w", lang, err)
	}
	if docs == 0 || wordsSum == 0 {
		return MetricRecord{}, fmt.Errorf("evaluation text for %s holds no usable documents", lang)
	}

	return MetricRecord{
		Language:  lang,
		Algorithm: a.Algorithm,
		VocabSize: a.VocabSize,
		Scale:     scale,
		NSL:       ratioSum / float64(docs),
		Fertility: float64(tokensSum) / float64(wordsSum),
	}, nil
}

// EvaluateFile evaluates an artifact against a held-out corpus file.
func (e *Evaluator) EvaluateFile(a *tokenizer.Artifact, lang, scale, path string) (MetricRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return MetricRecord{}, fmt.Errorf("read evaluation text %s: %w", path, err)
	}
	return e.EvaluateText(a, lang, scale, string(data))
}
