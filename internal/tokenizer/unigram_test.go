package tokenizer

import (
	"context"
	"testing"

	"github.com/Aishwarya-Selvamurugan/Tokenizer/internal/config"
)

func TestUnigramTrainRespectsVocabLimit(t *testing.T) {
	counts := countsFrom("internationalization internationalization nation nation nation international")

	a, err := (&UnigramTrainer{}).Train(context.Background(), counts, Config{
		Algorithm: config.AlgorithmUnigram,
		VocabSize: 25,
		Seed:      42,
	})
	if err != nil {
		t.Fatalf("Train: %v", err)
	}

	if len(a.Vocab) > 25 {
		t.Errorf("vocab size = %d; want <= 25", len(a.Vocab))
	}
	if len(a.Scores) == 0 {
		t.Fatal("artifact carries no piece scores")
	}
	if a.Vocab[0] != UnknownToken {
		t.Errorf("Vocab[0] = %q; want %q", a.Vocab[0], UnknownToken)
	}
}

func TestUnigramKeepsSingleCharacters(t *testing.T) {
	counts := countsFrom("abcde abcde fghij fghij klmno")

	a, err := (&UnigramTrainer{}).Train(context.Background(), counts, Config{
		Algorithm: config.AlgorithmUnigram,
		VocabSize: 20,
		Seed:      1,
	})
	if err != nil {
		t.Fatalf("Train: %v", err)
	}

	for _, c := range "abcdefghijklmno" {
		if _, ok := a.Scores[string(c)]; !ok {
			t.Errorf("single character %q pruned from vocabulary", string(c))
		}
	}
}

func TestUnigramSeedReproducible(t *testing.T) {
	counts := countsFrom("сегментация сегмент сегмент модель модель модели")
	cfg := Config{Algorithm: config.AlgorithmUnigram, VocabSize: 40, Seed: 7}

	first, err := (&UnigramTrainer{}).Train(context.Background(), counts, cfg)
	if err != nil {
		t.Fatalf("first Train: %v", err)
	}
	second, err := (&UnigramTrainer{}).Train(context.Background(), counts, cfg)
	if err != nil {
		t.Fatalf("second Train: %v", err)
	}

	if len(first.Vocab) != len(second.Vocab) {
		t.Fatalf("vocab sizes differ: %d vs %d", len(first.Vocab), len(second.Vocab))
	}
	for i := range first.Vocab {
		if first.Vocab[i] != second.Vocab[i] {
			t.Errorf("vocab[%d] = %q vs %q", i, first.Vocab[i], second.Vocab[i])
		}
	}
}

func TestUnigramViterbiPrefersLongPieces(t *testing.T) {
	scores := map[string]float64{
		"to":    -2,
		"ken":   -2,
		"token": -1.5,
		"t":     -5,
		"o":     -5,
		"k":     -5,
		"e":     -5,
		"n":     -5,
	}

	got := viterbiSegment("token", scores)
	if len(got) != 1 || got[0] != "token" {
		t.Errorf("viterbiSegment = %v; want [token]", got)
	}
}

func TestUnigramViterbiUnknownCharacter(t *testing.T) {
	scores := map[string]float64{"a": -1, "b": -1}

	got := viterbiSegment("axb", scores)
	want := []string{"a", UnknownToken, "b"}
	if len(got) != len(want) {
		t.Fatalf("viterbiSegment = %v; want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("piece[%d] = %q; want %q", i, got[i], want[i])
		}
	}
}

func TestUnigramEncodeReassemblesWord(t *testing.T) {
	counts := countsFrom("учиться учиться учить учить учитель")

	a, err := (&UnigramTrainer{}).Train(context.Background(), counts, Config{
		Algorithm: config.AlgorithmUnigram,
		VocabSize: 30,
		Seed:      42,
	})
	if err != nil {
		t.Fatalf("Train: %v", err)
	}
	enc, err := NewEncoder(a)
	if err != nil {
		t.Fatalf("NewEncoder: %v", err)
	}

	got := enc.EncodeWord("учить")
	joined := ""
	for _, p := range got {
		if p == UnknownToken {
			t.Fatalf("in-vocabulary word produced %s: %v", UnknownToken, got)
		}
		joined += p
	}
	if joined != "учить" {
		t.Errorf("pieces %v reassemble to %q; want %q", got, joined, "учить")
	}
}
