package tesseract_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"billscan/internal/config"
	"billscan/internal/engine/tesseract"
	"billscan/internal/port"
)

// fakeRunner records invocations and returns canned output per binary name.
type fakeRunner struct {
	calls  [][]string
	stdout map[string]string
	err    error
}

func (f *fakeRunner) Run(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
	f.calls = append(f.calls, append([]string{name}, args...))
	if f.err != nil {
		return nil, []byte("boom"), f.err
	}
	return []byte(f.stdout[name]), nil, nil
}

func newTestEngine(runner tesseract.Runner) *tesseract.Engine {
	cfg := &config.EngineProviderConfig{
		Provider:    "tesseract",
		BinaryPath:  "tesseract",
		TimeoutSecs: 10,
	}
	return tesseract.NewEngineWithRunner(cfg, runner)
}

func TestRecognize_Image(t *testing.T) {
	runner := &fakeRunner{stdout: map[string]string{
		"tesseract": "Sharma General Store\nTotal: 450\n",
	}}
	e := newTestEngine(runner)

	out, err := e.Recognize(context.Background(), port.RecognitionInput{
		ImageBytes:  []byte("png-bytes"),
		ContentType: "image/png",
	})

	require.NoError(t, err)
	assert.Equal(t, "tesseract", out.EngineUsed)
	assert.Contains(t, out.Text, "Sharma General Store")
	assert.Nil(t, out.Structured)

	require.Len(t, runner.calls, 1)
	call := runner.calls[0]
	assert.Equal(t, "tesseract", call[0])
	assert.True(t, strings.HasSuffix(call[1], ".png"))
	assert.Contains(t, call, "stdout")
	assert.Contains(t, call, "--psm")
	assert.Contains(t, call, "--oem")
}

func TestRecognize_PDFRasterizesFirst(t *testing.T) {
	runner := &fakeRunner{stdout: map[string]string{
		"tesseract": "Invoice No: INV-42\n",
	}}
	e := newTestEngine(runner)

	out, err := e.Recognize(context.Background(), port.RecognitionInput{
		ImageBytes:  []byte("%PDF-1.4"),
		ContentType: "application/pdf",
	})

	require.NoError(t, err)
	assert.Contains(t, out.Text, "INV-42")

	require.Len(t, runner.calls, 2)
	assert.Equal(t, "pdftoppm", runner.calls[0][0])
	assert.Contains(t, runner.calls[0], "-png")
	assert.Equal(t, "tesseract", runner.calls[1][0])
	assert.True(t, strings.HasSuffix(runner.calls[1][1], ".png"))
}

func TestRecognize_BinaryFailure(t *testing.T) {
	runner := &fakeRunner{err: errors.New("exit status 1")}
	e := newTestEngine(runner)

	_, err := e.Recognize(context.Background(), port.RecognitionInput{
		ImageBytes:  []byte("jpg-bytes"),
		ContentType: "image/jpeg",
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "tesseract")
}
