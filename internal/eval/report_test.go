package eval

import (
	"fmt"
	"strings"
	"sync"
	"testing"
)

func TestReportRecordsSorted(t *testing.T) {
	var r Report
	r.Append(MetricRecord{Language: "tr", Algorithm: "unigram", VocabSize: 30000})
	r.Append(MetricRecord{Language: "ar", Algorithm: "wordpiece", VocabSize: 15000})
	r.Append(MetricRecord{Language: "ar", Algorithm: "bpe", VocabSize: 50000})
	r.Append(MetricRecord{Language: "ar", Algorithm: "bpe", VocabSize: 15000})

	got := r.Records()
	want := []MetricRecord{
		{Language: "ar", Algorithm: "bpe", VocabSize: 15000},
		{Language: "ar", Algorithm: "bpe", VocabSize: 50000},
		{Language: "ar", Algorithm: "wordpiece", VocabSize: 15000},
		{Language: "tr", Algorithm: "unigram", VocabSize: 30000},
	}
	for i := range want {
		if got[i].Language != want[i].Language ||
			got[i].Algorithm != want[i].Algorithm ||
			got[i].VocabSize != want[i].VocabSize {
			t.Errorf("record[%d] = %s/%s/%d; want %s/%s/%d",
				i, got[i].Language, got[i].Algorithm, got[i].VocabSize,
				want[i].Language, want[i].Algorithm, want[i].VocabSize)
		}
	}
}

func TestReportConcurrentAppends(t *testing.T) {
	var r Report
	var wg sync.WaitGroup

	const writers = 9
	const perWriter = 50
	for w := 0; w < writers; w++ {
		w := w
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perWriter; i++ {
				r.Append(MetricRecord{
					Language:  fmt.Sprintf("l%d", w),
					Algorithm: "bpe",
					VocabSize: i,
				})
			}
		}()
	}
	wg.Wait()

	if r.Len() != writers*perWriter {
		t.Errorf("Len = %d; want %d", r.Len(), writers*perWriter)
	}
}

func TestReportWriteCSV(t *testing.T) {
	var r Report
	r.Append(MetricRecord{
		Language: "ja", Algorithm: "bpe", VocabSize: 15000, Scale: "100M",
		NSL: 1.2345678, Fertility: 2.5,
	})

	var out strings.Builder
	if err := r.WriteCSV(&out); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("lines = %d; want 2", len(lines))
	}
	if lines[0] != "language,algorithm,vocab_size,scale,nsl,fertility" {
		t.Errorf("header = %q", lines[0])
	}
	if lines[1] != "ja,bpe,15000,100M,1.2346,2.5000" {
		t.Errorf("row = %q", lines[1])
	}
}
