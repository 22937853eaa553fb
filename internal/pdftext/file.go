package pdftext

import (
	"fmt"
	"os"
)

// readFile loads a file, mapping the not-found case to a clear message
// since it is the most common operator error on the batch path.
func readFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("input PDF not found: %s", path)
		}
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return data, nil
}
