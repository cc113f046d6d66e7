package app

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/yiddishlab/wordlist/internal/domain"
)

// OutputPath resolves the output file path. An empty output derives the
// path from the input by replacing its extension with .json; an explicit
// output must itself end in .json.
func OutputPath(inputPath, output string) (string, error) {
	if output == "" {
		if inputPath == "" {
			return "", fmt.Errorf("output path required when input is literal text")
		}
		return strings.TrimSuffix(inputPath, filepath.Ext(inputPath)) + ".json", nil
	}
	if !strings.HasSuffix(output, ".json") {
		return "", fmt.Errorf("output path %q must end in .json", output)
	}
	return output, nil
}

// WriteJSON serializes the wordlist as an indented JSON document.
func WriteJSON(path string, wordlist domain.Wordlist) error {
	data, err := json.MarshalIndent(wordlist, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal wordlist: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
