// Package tesseract implements optical character recognition by shelling
// out to the tesseract binary. PDF inputs are rasterized with pdftoppm first.
package tesseract

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"billscan/internal/config"
	"billscan/internal/port"
)

const (
	defaultLang = "eng"
	defaultDPI  = 300
)

// Engine implements port.RecognitionEngine using a local tesseract install.
type Engine struct {
	binary    string
	pdftoppm  string
	lang      string
	timeout   time.Duration
	runner    Runner
}

// NewEngine creates a tesseract-backed recognition engine.
func NewEngine(cfg *config.EngineProviderConfig) *Engine {
	binary := cfg.BinaryPath
	if binary == "" {
		binary = "tesseract"
	}
	timeout := time.Duration(cfg.TimeoutSecs) * time.Second
	if timeout == 0 {
		timeout = 60 * time.Second
	}
	return &Engine{
		binary:   binary,
		pdftoppm: "pdftoppm",
		lang:     defaultLang,
		timeout:  timeout,
		runner:   execRunner{},
	}
}

// NewEngineWithRunner creates an engine with a custom command runner (for testing).
func NewEngineWithRunner(cfg *config.EngineProviderConfig, runner Runner) *Engine {
	e := NewEngine(cfg)
	e.runner = runner
	return e
}

func (e *Engine) Recognize(ctx context.Context, input port.RecognitionInput) (*port.RecognitionOutput, error) {
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	dir, err := os.MkdirTemp("", "billscan-ocr-*")
	if err != nil {
		return nil, fmt.Errorf("tesseract: creating temp dir: %w", err)
	}
	defer func() { _ = os.RemoveAll(dir) }()

	imgPath, err := e.materialize(ctx, dir, input)
	if err != nil {
		return nil, err
	}

	// tesseract <file> stdout -l <lang> --oem 3 --psm 6
	out, errb, err := e.runner.Run(ctx, e.binary, imgPath, "stdout", "-l", e.lang, "--oem", "3", "--psm", "6")
	if err != nil {
		return nil, fmt.Errorf("tesseract: %w (stderr: %s)", err, truncate(string(errb), 512))
	}

	return &port.RecognitionOutput{
		Text:       string(out),
		EngineUsed: "tesseract",
	}, nil
}

// materialize writes the input bytes to disk, rasterizing PDFs to PNG.
func (e *Engine) materialize(ctx context.Context, dir string, input port.RecognitionInput) (string, error) {
	ext := extensionFor(input.ContentType)
	srcPath := filepath.Join(dir, "input"+ext)
	if err := os.WriteFile(srcPath, input.ImageBytes, 0o600); err != nil {
		return "", fmt.Errorf("tesseract: writing temp file: %w", err)
	}

	if ext != ".pdf" {
		return srcPath, nil
	}

	// pdftoppm -r 300 -png -singlefile <in.pdf> <tmp/page>
	prefix := filepath.Join(dir, "page")
	_, errb, err := e.runner.Run(ctx, e.pdftoppm, "-r", fmt.Sprintf("%d", defaultDPI), "-png", "-singlefile", srcPath, prefix)
	if err != nil {
		return "", fmt.Errorf("tesseract: rasterizing pdf: %w (stderr: %s)", err, truncate(string(errb), 512))
	}
	return prefix + ".png", nil
}

func extensionFor(contentType string) string {
	switch contentType {
	case "application/pdf":
		return ".pdf"
	case "image/png":
		return ".png"
	default:
		return ".jpg"
	}
}
