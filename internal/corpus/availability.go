package corpus

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
)

// Available returns the total normalized character count across both
// sources of lang. Missing files count as zero; the result is what a
// Sample call could draw at most.
func (s *Sampler) Available(lang string) (int64, error) {
	wiki, err := countFile(filepath.Join(s.WikiDir, lang+".txt"))
	if err != nil {
		return 0, err
	}
	web, err := countFile(filepath.Join(s.WebDir, lang+".txt"))
	if err != nil {
		return 0, err
	}
	return wiki + web, nil
}

func countFile(path string) (int64, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("open corpus %s: %w", path, err)
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 64*1024), maxDocumentBytes)

	var total int64
	for sc.Scan() {
		total += CountChars(NormalizeDocument(sc.Text()))
	}
	if err := sc.Err(); err != nil {
		return 0, fmt.Errorf("read corpus %s: %w", path, err)
	}
	return total, nil
}
