package corpus

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Clean converts raw wiki extraction output into the one-document-per-line
// layout the sampler expects. The raw format carries TITLE:/TEXT: markers
// and "=" separator lines between articles; body lines after a TEXT: marker
// belong to the open article. Input that is already one document per line
// (no markers) passes through unchanged, so cleaning is idempotent.
func Clean(r io.Reader, w io.Writer) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), maxDocumentBytes)
	bw := bufio.NewWriter(w)

	var article strings.Builder
	inArticle := false

	flush := func() error {
		if article.Len() == 0 {
			inArticle = false
			return nil
		}
		doc := NormalizeDocument(article.String())
		article.Reset()
		inArticle = false
		if doc == "" {
			return nil
		}
		if _, err := bw.WriteString(doc); err != nil {
			return err
		}
		return bw.WriteByte('\n')
	}

	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		switch {
		case line == "":
			continue
		case strings.HasPrefix(line, "TITLE:"):
			// Titles are dropped; only article bodies are sampled.
			continue
		case strings.HasPrefix(line, "TEXT:"):
			if err := flush(); err != nil {
				return err
			}
			article.WriteString(strings.TrimSpace(strings.TrimPrefix(line, "TEXT:")))
			inArticle = true
		case strings.HasPrefix(line, "="):
			if err := flush(); err != nil {
				return err
			}
		case inArticle:
			article.WriteByte(' ')
			article.WriteString(line)
		default:
			// Plain line outside any article: already-clean document.
			doc := NormalizeDocument(line)
			if doc == "" {
				continue
			}
			if _, err := bw.WriteString(doc); err != nil {
				return err
			}
			if err := bw.WriteByte('\n'); err != nil {
				return err
			}
		}
	}
	if err := sc.Err(); err != nil {
		return err
	}
	if err := flush(); err != nil {
		return err
	}

	return bw.Flush()
}

// CleanFile cleans src into dst, creating dst's directory if needed.
func CleanFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open %s: %w", src, err)
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("create %s: %w", dst, err)
	}

	if err := Clean(in, out); err != nil {
		out.Close()
		return fmt.Errorf("clean %s: %w", src, err)
	}
	return out.Close()
}
