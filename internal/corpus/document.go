package corpus

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// maxDocumentBytes bounds a single document line; web corpus documents can
// run long but anything past this is a malformed dump.
const maxDocumentBytes = 16 * 1024 * 1024

// readResult is the outcome of reading documents from one source file.
type readResult struct {
	docs      []string
	chars     int64
	exhausted bool
}

// readAtLeast reads normalized documents from path until at least min
// characters are accumulated or the file is exhausted. The boundary falls on
// a whole document, so chars may exceed min. A min of 0 reads nothing.
// A missing file counts as an exhausted, empty source.
func readAtLeast(path string, min int64) (readResult, error) {
	if min <= 0 {
		return readResult{exhausted: false}, nil
	}

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return readResult{exhausted: true}, nil
		}
		return readResult{}, fmt.Errorf("open corpus %s: %w", path, err)
	}
	defer f.Close()

	res, err := readDocuments(f, min)
	if err != nil {
		return readResult{}, fmt.Errorf("read corpus %s: %w", path, err)
	}
	return res, nil
}

func readDocuments(r io.Reader, min int64) (readResult, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), maxDocumentBytes)

	var res readResult
	for sc.Scan() {
		doc := NormalizeDocument(sc.Text())
		if doc == "" {
			continue
		}
		res.docs = append(res.docs, doc)
		res.chars += CountChars(doc)
		if res.chars >= min {
			return res, nil
		}
	}
	if err := sc.Err(); err != nil {
		return readResult{}, err
	}

	res.exhausted = true
	return res, nil
}

// joinDocuments concatenates documents back into the one-document-per-line
// layout used for samples and assembled datasets.
func joinDocuments(docs []string) string {
	if len(docs) == 0 {
		return ""
	}
	return strings.Join(docs, "\n") + "\n"
}
