// Package output writes compiled statements.
package output

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// File permission constants.
const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// WriteStatements writes one statement per line to w.
func WriteStatements(w io.Writer, stmts []string) error {
	bw := bufio.NewWriter(w)

	for _, s := range stmts {
		if _, err := bw.WriteString(s); err != nil {
			return fmt.Errorf("writing statement: %w", err)
		}

		if err := bw.WriteByte('\n'); err != nil {
			return fmt.Errorf("writing statement: %w", err)
		}
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("writing statement: %w", err)
	}

	return nil
}

// WriteFile writes the statements to path, one per line.
// It creates the parent directory if it doesn't exist.
func WriteFile(path string, stmts []string) error {
	// Create output directory if it doesn't exist
	err := os.MkdirAll(filepath.Dir(path), dirPerm)
	if err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, filePerm)
	if err != nil {
		return fmt.Errorf("creating file %s: %w", path, err)
	}

	err = WriteStatements(f, stmts)
	if closeErr := f.Close(); err == nil && closeErr != nil {
		err = fmt.Errorf("closing file %s: %w", path, closeErr)
	}

	return err
}
