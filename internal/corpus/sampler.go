package corpus

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
)

// InsufficientDataError reports a source corpus that cannot fill the
// requested character budget. Under-filled samples are never returned
// silently.
type InsufficientDataError struct {
	Language  string
	Requested int64
	Available int64
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf(
		"language %s: source corpus holds %d chars, %d requested",
		e.Language, e.Available, e.Requested,
	)
}

// Sample is the per-language output of one sampling pass. Text keeps the
// one-document-per-line layout; Chars counts code points of the documents
// themselves, excluding line framing.
type Sample struct {
	Language  string
	Text      string
	Chars     int64
	WikiChars int64
	WebChars  int64
}

// Sampler draws per-language samples from a wiki and a web corpus
// directory, each holding <lang>.txt files. Either source may be absent for
// a language; the other then covers the full budget.
type Sampler struct {
	WikiDir string
	WebDir  string
	// InterleaveChars is the approximate run length, in characters, used
	// when alternating wiki and web documents. Zero disables interleaving
	// and simply appends web after wiki.
	InterleaveChars int64
}

// Sample returns at least target characters of language lang, split as
// close to 50/50 between the two sources as their availability allows.
// The cut falls on the nearest document boundary at or after the target.
// Identical source files and target produce identical output.
func (s *Sampler) Sample(ctx context.Context, lang string, target int64) (Sample, error) {
	if err := ctx.Err(); err != nil {
		return Sample{}, err
	}
	if target <= 0 {
		return Sample{}, fmt.Errorf("language %s: non-positive sample target %d", lang, target)
	}

	wikiPath := filepath.Join(s.WikiDir, lang+".txt")
	webPath := filepath.Join(s.WebDir, lang+".txt")

	// Aim for an even split; the wiki half is read first.
	half := (target + 1) / 2
	wiki, err := readAtLeast(wikiPath, half)
	if err != nil {
		return Sample{}, err
	}

	web, err := readAtLeast(webPath, target-wiki.chars)
	if err != nil {
		return Sample{}, err
	}

	// One source fell short; let the other cover the remainder.
	if wiki.chars+web.chars < target && !wiki.exhausted {
		wiki, err = readAtLeast(wikiPath, target-web.chars)
		if err != nil {
			return Sample{}, err
		}
	}

	total := wiki.chars + web.chars
	if total < target {
		return Sample{}, &InsufficientDataError{
			Language:  lang,
			Requested: target,
			Available: total,
		}
	}

	docs := interleaveDocs(wiki.docs, web.docs, s.InterleaveChars)

	slog.Debug("sampled language",
		"language", lang,
		"target", target,
		"chars", total,
		"wiki_chars", wiki.chars,
		"web_chars", web.chars,
	)

	return Sample{
		Language:  lang,
		Text:      joinDocuments(docs),
		Chars:     total,
		WikiChars: wiki.chars,
		WebChars:  web.chars,
	}, nil
}

// SampleFile samples a single corpus file, ignoring the dual-source layout.
// Used for held-out evaluation texts and ad-hoc sources.
func SampleFile(ctx context.Context, lang, path string, target int64) (Sample, error) {
	if err := ctx.Err(); err != nil {
		return Sample{}, err
	}
	res, err := readAtLeast(path, target)
	if err != nil {
		return Sample{}, err
	}
	if res.chars < target {
		return Sample{}, &InsufficientDataError{
			Language:  lang,
			Requested: target,
			Available: res.chars,
		}
	}
	return Sample{
		Language: lang,
		Text:     joinDocuments(res.docs),
		Chars:    res.chars,
	}, nil
}

// interleaveDocs alternates runs of wiki and web documents so the two
// streams mix evenly through the sample. Runs close at the first document
// boundary at or past chunkChars. Document order within each source is
// preserved, keeping the result deterministic.
func interleaveDocs(wiki, web []string, chunkChars int64) []string {
	if len(wiki) == 0 {
		return web
	}
	if len(web) == 0 {
		return wiki
	}
	if chunkChars <= 0 {
		return append(append([]string{}, wiki...), web...)
	}

	out := make([]string, 0, len(wiki)+len(web))
	wi, bi := 0, 0
	takeRun := func(docs []string, i int) int {
		var run int64
		for i < len(docs) && run < chunkChars {
			out = append(out, docs[i])
			run += CountChars(docs[i])
			i++
		}
		return i
	}
	for wi < len(wiki) || bi < len(web) {
		wi = takeRun(wiki, wi)
		bi = takeRun(web, bi)
	}
	return out
}
