package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Bill represents one scanned bill: the stored source image, the raw OCR
// transcription, and the structured record recovered from it. Structured
// data is stored as JSONB and mirrors the extract.StructuredBill wire shape.
type Bill struct {
	ID             uuid.UUID       `db:"id" json:"id"`
	FileName       string          `db:"file_name" json:"file_name"`
	ContentType    string          `db:"content_type" json:"content_type"`
	FileSize       int64           `db:"file_size" json:"file_size"`
	S3Bucket       string          `db:"s3_bucket" json:"s3_bucket"`
	S3Key          string          `db:"s3_key" json:"s3_key"`
	Engine         string          `db:"engine" json:"engine"`
	DocumentType   string          `db:"document_type" json:"document_type"`
	RawText        string          `db:"raw_text" json:"raw_text"`
	StructuredData json.RawMessage `db:"structured_data" json:"structured_data"`
	Status         ScanStatus      `db:"status" json:"status"`
	ScanError      string          `db:"scan_error" json:"scan_error"`
	CreatedAt      time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time       `db:"updated_at" json:"updated_at"`
}
