package extract

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// CommandRunner executes an external command and returns its combined stdout.
// Abstracted so PDF extraction can be exercised in tests without a pdftotext
// binary on the path.
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

type execRunner struct{}

func (execRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).Output()
}

// PDF extracts text from PDF documents by invoking pdftotext. The PDF byte
// stream is spooled to a temp file because pdftotext does not read stdin.
type PDF struct {
	runner CommandRunner
}

// NewPDF creates a PDF reader backed by the pdftotext binary.
func NewPDF() *PDF {
	return &PDF{runner: execRunner{}}
}

// NewPDFWithRunner creates a PDF reader with a custom command runner.
func NewPDFWithRunner(runner CommandRunner) *PDF {
	return &PDF{runner: runner}
}

// Text extracts the text layer of a PDF document.
func (p *PDF) Text(ctx context.Context, data []byte) (string, error) {
	if len(data) == 0 {
		return "", ErrEmptyDocument
	}

	tempDir, err := os.MkdirTemp("", "gavel-extract-*")
	if err != nil {
		return "", fmt.Errorf("%w: create temp directory: %w", ErrExtractFailed, err)
	}
	defer os.RemoveAll(tempDir)

	pdfPath := filepath.Join(tempDir, "source.pdf")
	if err := os.WriteFile(pdfPath, data, 0600); err != nil {
		return "", fmt.Errorf("%w: write temp pdf: %w", ErrExtractFailed, err)
	}

	out, err := p.runner.Run(ctx, "pdftotext", "-layout", "-enc", "UTF-8", pdfPath, "-")
	if err != nil {
		return "", fmt.Errorf("%w: pdftotext: %w", ErrExtractFailed, err)
	}

	text := string(out)
	if strings.TrimSpace(text) == "" {
		return "", ErrEmptyDocument
	}
	return text, nil
}
