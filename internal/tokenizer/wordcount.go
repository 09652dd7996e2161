package tokenizer

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
)

// WordCounts maps whitespace-pretokenized words to their corpus frequency.
// Scripts without word spacing (zh, ja) contribute whole segments as single
// "words"; the trainers segment those into subwords like any other.
type WordCounts map[string]int64

// CountWords accumulates word frequencies from a one-document-per-line
// corpus stream.
func CountWords(r io.Reader) (WordCounts, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 16*1024*1024)

	counts := make(WordCounts)
	for sc.Scan() {
		for _, w := range strings.Fields(sc.Text()) {
			counts[w]++
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("count words: %w", err)
	}
	return counts, nil
}

// CountWordsFile counts word frequencies in a corpus file.
func CountWordsFile(path string) (WordCounts, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open corpus %s: %w", path, err)
	}
	defer f.Close()
	return CountWords(f)
}

// Total returns the summed frequency of all words.
func (wc WordCounts) Total() int64 {
	var total int64
	for _, c := range wc {
		total += c
	}
	return total
}

// sortedWords returns the words in deterministic order: descending count,
// ascending word. Training must not depend on map iteration order.
func (wc WordCounts) sortedWords() []string {
	words := make([]string, 0, len(wc))
	for w := range wc {
		words = append(words, w)
	}
	sort.Slice(words, func(i, j int) bool {
		if wc[words[i]] != wc[words[j]] {
			return wc[words[i]] > wc[words[j]]
		}
		return words[i] < words[j]
	})
	return words
}
