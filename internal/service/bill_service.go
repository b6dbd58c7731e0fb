package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"billscan/internal/config"
	"billscan/internal/domain"
	"billscan/internal/extract"
	"billscan/internal/port"
)

// ScanInput is the DTO for bill scan requests.
type ScanInput struct {
	File   multipart.File
	Header *multipart.FileHeader
}

// BillService defines the bill scanning and retrieval contract.
type BillService interface {
	ScanAndParse(ctx context.Context, input ScanInput) (*domain.Bill, error)
	ParseText(ctx context.Context, text string) (*extract.StructuredBill, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Bill, error)
	List(ctx context.Context, offset, limit int) ([]domain.Bill, int, error)
	ListAll(ctx context.Context) ([]domain.Bill, error)
	GetFileURL(ctx context.Context, id uuid.UUID) (string, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type billService struct {
	billRepo port.BillRepository
	storage  port.ObjectStorage
	engine   port.RecognitionEngine
	parser   *extract.Parser
	cfg      *config.S3Config
}

// NewBillService creates a new BillService implementation.
func NewBillService(
	billRepo port.BillRepository,
	storage port.ObjectStorage,
	engine port.RecognitionEngine,
	parser *extract.Parser,
	cfg *config.S3Config,
) BillService {
	return &billService{
		billRepo: billRepo,
		storage:  storage,
		engine:   engine,
		parser:   parser,
		cfg:      cfg,
	}
}

func (s *billService) ScanAndParse(ctx context.Context, input ScanInput) (*domain.Bill, error) {
	// Validate file extension
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(input.Header.Filename), "."))
	if _, ok := domain.AllowedExtensions[ext]; !ok {
		return nil, domain.ErrUnsupportedFileType
	}

	// Validate file size
	maxBytes := s.cfg.MaxFileSizeMB * 1024 * 1024
	if input.Header.Size > maxBytes {
		return nil, domain.ErrFileTooLarge
	}

	fileBytes, err := io.ReadAll(input.File)
	if err != nil {
		return nil, fmt.Errorf("reading upload: %w", err)
	}

	// Validate detected content type against magic bytes
	detectedType := http.DetectContentType(fileBytes)
	detectedType = strings.Split(detectedType, ";")[0]
	if _, ok := domain.AllowedContentTypes[detectedType]; !ok {
		return nil, domain.ErrUnsupportedFileType
	}

	billID := uuid.New()
	s3Key := fmt.Sprintf("bills/%s/%s", billID, input.Header.Filename)

	log.Printf("billService.ScanAndParse: uploading %s (%s, %d bytes)",
		input.Header.Filename, detectedType, input.Header.Size)

	_, err = s.storage.Upload(ctx, port.UploadInput{
		Bucket:      s.cfg.Bucket,
		Key:         s3Key,
		Body:        bytes.NewReader(fileBytes),
		ContentType: detectedType,
		Size:        input.Header.Size,
	})
	if err != nil {
		log.Printf("billService.ScanAndParse: S3 upload failed for bill %s: %v", billID, err)
		return nil, domain.ErrUploadFailed
	}

	bill := &domain.Bill{
		ID:          billID,
		FileName:    input.Header.Filename,
		ContentType: detectedType,
		FileSize:    input.Header.Size,
		S3Bucket:    s.cfg.Bucket,
		S3Key:       s3Key,
	}

	out, err := s.engine.Recognize(ctx, port.RecognitionInput{
		ImageBytes:  fileBytes,
		ContentType: detectedType,
	})
	if err != nil {
		log.Printf("billService.ScanAndParse: recognition failed for bill %s: %v", billID, err)
		bill.Status = domain.ScanStatusFailed
		bill.ScanError = err.Error()
		if createErr := s.billRepo.Create(ctx, bill); createErr != nil {
			return nil, createErr
		}
		return nil, domain.ErrRecognitionFailed
	}

	bill.Engine = out.EngineUsed
	bill.RawText = out.Text
	bill.Status = domain.ScanStatusCompleted

	if out.Structured != nil {
		// The engine already produced structured data, skip extraction.
		bill.StructuredData = out.Structured
		bill.DocumentType = documentTypeFrom(out.Structured)
	} else {
		parsed := s.parser.Parse(out.Text)
		data, err := json.Marshal(parsed)
		if err != nil {
			return nil, fmt.Errorf("marshaling structured bill: %w", err)
		}
		bill.StructuredData = data
		bill.DocumentType = string(parsed.DocumentType)
	}

	if err := s.billRepo.Create(ctx, bill); err != nil {
		return nil, err
	}
	return bill, nil
}

func (s *billService) ParseText(ctx context.Context, text string) (*extract.StructuredBill, error) {
	return s.parser.Parse(text), nil
}

func (s *billService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Bill, error) {
	return s.billRepo.GetByID(ctx, id)
}

func (s *billService) List(ctx context.Context, offset, limit int) ([]domain.Bill, int, error) {
	return s.billRepo.List(ctx, offset, limit)
}

func (s *billService) ListAll(ctx context.Context) ([]domain.Bill, error) {
	return s.billRepo.ListAll(ctx)
}

func (s *billService) GetFileURL(ctx context.Context, id uuid.UUID) (string, error) {
	bill, err := s.billRepo.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	return s.storage.GetPresignedURL(ctx, bill.S3Bucket, bill.S3Key, s.cfg.PresignExpiry)
}

func (s *billService) Delete(ctx context.Context, id uuid.UUID) error {
	log.Printf("billService.Delete: deleting bill %s", id)

	bill, err := s.billRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.storage.Delete(ctx, bill.S3Bucket, bill.S3Key); err != nil {
		log.Printf("billService.Delete: failed to delete from S3: %v", err)
		return fmt.Errorf("deleting from storage: %w", err)
	}

	return s.billRepo.Delete(ctx, id)
}

// documentTypeFrom pulls the document_type field out of engine-provided
// structured data, defaulting to "receipt".
func documentTypeFrom(data json.RawMessage) string {
	var partial struct {
		DocumentType string `json:"document_type"`
	}
	if err := json.Unmarshal(data, &partial); err != nil || partial.DocumentType == "" {
		return string(extract.DocTypeReceipt)
	}
	return partial.DocumentType
}
