package port

import (
	"context"
	"encoding/json"
)

// RecognitionInput carries the raw document bytes to a recognition engine.
type RecognitionInput struct {
	ImageBytes  []byte
	ContentType string
}

// RecognitionOutput is what an engine recovered from the document. OCR
// engines fill Text; engines that understand documents directly may return
// Structured instead, in which case the extraction pipeline is skipped.
type RecognitionOutput struct {
	Text       string
	Structured json.RawMessage
	EngineUsed string
}

// RecognitionEngine abstracts OCR and vision-model document recognition.
type RecognitionEngine interface {
	Recognize(ctx context.Context, input RecognitionInput) (*RecognitionOutput, error)
}
