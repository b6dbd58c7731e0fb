package service_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"billscan/internal/config"
	"billscan/internal/domain"
	"billscan/internal/extract"
	"billscan/internal/port"
	"billscan/internal/service"
	"billscan/mocks"
)

var pngMagic = []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}

func pngBytes() []byte {
	return append(append([]byte{}, pngMagic...), bytes.Repeat([]byte{0x00}, 64)...)
}

func makeScanInput(t *testing.T, filename string, content []byte) service.ScanInput {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fw, err := w.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(&buf, w.Boundary()).ReadForm(32 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })

	header := form.File["file"][0]
	f, err := header.Open()
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })

	return service.ScanInput{File: f, Header: header}
}

func newTestService(repo *mocks.MockBillRepository, storage *mocks.MockObjectStorage, engine *mocks.MockRecognitionEngine) service.BillService {
	cfg := &config.S3Config{
		Bucket:        "test-bucket",
		MaxFileSizeMB: 10,
		PresignExpiry: 3600,
	}
	return service.NewBillService(repo, storage, engine, extract.NewParser(extract.Options{}), cfg)
}

func TestScanAndParse_UnsupportedExtension(t *testing.T) {
	svc := newTestService(new(mocks.MockBillRepository), new(mocks.MockObjectStorage), new(mocks.MockRecognitionEngine))

	_, err := svc.ScanAndParse(context.Background(), makeScanInput(t, "bill.txt", []byte("plain text")))
	assert.ErrorIs(t, err, domain.ErrUnsupportedFileType)
}

func TestScanAndParse_ContentMismatch(t *testing.T) {
	svc := newTestService(new(mocks.MockBillRepository), new(mocks.MockObjectStorage), new(mocks.MockRecognitionEngine))

	// .png extension but plain text body
	_, err := svc.ScanAndParse(context.Background(), makeScanInput(t, "bill.png", []byte("definitely not an image")))
	assert.ErrorIs(t, err, domain.ErrUnsupportedFileType)
}

func TestScanAndParse_FileTooLarge(t *testing.T) {
	repo := new(mocks.MockBillRepository)
	storage := new(mocks.MockObjectStorage)
	engine := new(mocks.MockRecognitionEngine)
	cfg := &config.S3Config{Bucket: "test-bucket", MaxFileSizeMB: 0}
	svc := service.NewBillService(repo, storage, engine, extract.NewParser(extract.Options{}), cfg)

	_, err := svc.ScanAndParse(context.Background(), makeScanInput(t, "bill.png", pngBytes()))
	assert.ErrorIs(t, err, domain.ErrFileTooLarge)
}

func TestScanAndParse_TextEngine(t *testing.T) {
	repo := new(mocks.MockBillRepository)
	storage := new(mocks.MockObjectStorage)
	engine := new(mocks.MockRecognitionEngine)
	svc := newTestService(repo, storage, engine)

	rawText := "Spice Garden Restaurant\nGSTIN: 29ABCDE1234F1Z5\nPaneer Tikka 250 1 250\nTotal: 250"
	storage.On("Upload", mock.Anything, mock.Anything).Return(&port.UploadOutput{Location: "loc"}, nil)
	engine.On("Recognize", mock.Anything, mock.Anything).Return(&port.RecognitionOutput{
		Text:       rawText,
		EngineUsed: "tesseract",
	}, nil)
	repo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Bill")).Return(nil)

	bill, err := svc.ScanAndParse(context.Background(), makeScanInput(t, "bill.png", pngBytes()))
	require.NoError(t, err)

	assert.Equal(t, domain.ScanStatusCompleted, bill.Status)
	assert.Equal(t, "tesseract", bill.Engine)
	assert.Equal(t, rawText, bill.RawText)
	assert.Equal(t, "test-bucket", bill.S3Bucket)
	assert.Contains(t, bill.S3Key, bill.ID.String())

	var parsed extract.StructuredBill
	require.NoError(t, json.Unmarshal(bill.StructuredData, &parsed))
	assert.Equal(t, extract.DocTypeTaxInvoice, parsed.DocumentType)
	require.NotNil(t, parsed.Vendor.GSTIN)
	assert.Equal(t, "29ABCDE1234F1Z5", *parsed.Vendor.GSTIN)
	assert.Equal(t, string(extract.DocTypeTaxInvoice), bill.DocumentType)

	repo.AssertCalled(t, "Create", mock.Anything, mock.AnythingOfType("*domain.Bill"))
}

func TestScanAndParse_StructuredEngineBypassesExtraction(t *testing.T) {
	repo := new(mocks.MockBillRepository)
	storage := new(mocks.MockObjectStorage)
	engine := new(mocks.MockRecognitionEngine)
	svc := newTestService(repo, storage, engine)

	structured := json.RawMessage(`{"document_type":"fuel_receipt","vendor":{"name":"HP Petrol Pump","gstin":null,"phone":null},"invoice":{"number":null,"date":null},"items":[],"amounts":{"subtotal":null,"tax":null,"grand_total":2000,"currency":"INR"}}`)
	storage.On("Upload", mock.Anything, mock.Anything).Return(&port.UploadOutput{}, nil)
	engine.On("Recognize", mock.Anything, mock.Anything).Return(&port.RecognitionOutput{
		Structured: structured,
		EngineUsed: "gemini",
	}, nil)
	repo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Bill")).Return(nil)

	bill, err := svc.ScanAndParse(context.Background(), makeScanInput(t, "bill.png", pngBytes()))
	require.NoError(t, err)

	assert.Equal(t, "gemini", bill.Engine)
	assert.Equal(t, "fuel_receipt", bill.DocumentType)
	assert.JSONEq(t, string(structured), string(bill.StructuredData))
	assert.Empty(t, bill.RawText)
}

func TestScanAndParse_EngineFailurePersistsFailedBill(t *testing.T) {
	repo := new(mocks.MockBillRepository)
	storage := new(mocks.MockObjectStorage)
	engine := new(mocks.MockRecognitionEngine)
	svc := newTestService(repo, storage, engine)

	storage.On("Upload", mock.Anything, mock.Anything).Return(&port.UploadOutput{}, nil)
	engine.On("Recognize", mock.Anything, mock.Anything).Return(nil, errors.New("engine exploded"))

	var saved *domain.Bill
	repo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Bill")).Run(func(args mock.Arguments) {
		saved = args.Get(1).(*domain.Bill)
	}).Return(nil)

	_, err := svc.ScanAndParse(context.Background(), makeScanInput(t, "bill.png", pngBytes()))
	assert.ErrorIs(t, err, domain.ErrRecognitionFailed)

	require.NotNil(t, saved)
	assert.Equal(t, domain.ScanStatusFailed, saved.Status)
	assert.Contains(t, saved.ScanError, "engine exploded")
}

func TestScanAndParse_UploadFailure(t *testing.T) {
	repo := new(mocks.MockBillRepository)
	storage := new(mocks.MockObjectStorage)
	engine := new(mocks.MockRecognitionEngine)
	svc := newTestService(repo, storage, engine)

	storage.On("Upload", mock.Anything, mock.Anything).Return(nil, errors.New("s3 down"))

	_, err := svc.ScanAndParse(context.Background(), makeScanInput(t, "bill.png", pngBytes()))
	assert.ErrorIs(t, err, domain.ErrUploadFailed)
	engine.AssertNotCalled(t, "Recognize", mock.Anything, mock.Anything)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestParseText(t *testing.T) {
	svc := newTestService(new(mocks.MockBillRepository), new(mocks.MockObjectStorage), new(mocks.MockRecognitionEngine))

	parsed, err := svc.ParseText(context.Background(), "Sharma Store\nInvoice No: INV-7\nTotal: 120")
	require.NoError(t, err)
	require.NotNil(t, parsed.Invoice.Number)
	assert.Equal(t, "INV-7", *parsed.Invoice.Number)
}

func TestGetFileURL(t *testing.T) {
	repo := new(mocks.MockBillRepository)
	storage := new(mocks.MockObjectStorage)
	svc := newTestService(repo, storage, new(mocks.MockRecognitionEngine))

	id := uuid.New()
	bill := &domain.Bill{ID: id, S3Bucket: "test-bucket", S3Key: "bills/x/y.png"}
	repo.On("GetByID", mock.Anything, id).Return(bill, nil)
	storage.On("GetPresignedURL", mock.Anything, "test-bucket", "bills/x/y.png", int64(3600)).
		Return("https://signed.example.com/y.png", nil)

	url, err := svc.GetFileURL(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "https://signed.example.com/y.png", url)
}

func TestDelete(t *testing.T) {
	repo := new(mocks.MockBillRepository)
	storage := new(mocks.MockObjectStorage)
	svc := newTestService(repo, storage, new(mocks.MockRecognitionEngine))

	id := uuid.New()
	bill := &domain.Bill{ID: id, S3Bucket: "test-bucket", S3Key: "bills/x/y.png"}
	repo.On("GetByID", mock.Anything, id).Return(bill, nil)
	storage.On("Delete", mock.Anything, "test-bucket", "bills/x/y.png").Return(nil)
	repo.On("Delete", mock.Anything, id).Return(nil)

	require.NoError(t, svc.Delete(context.Background(), id))
	storage.AssertCalled(t, "Delete", mock.Anything, "test-bucket", "bills/x/y.png")
	repo.AssertCalled(t, "Delete", mock.Anything, id)
}

func TestDelete_NotFound(t *testing.T) {
	repo := new(mocks.MockBillRepository)
	storage := new(mocks.MockObjectStorage)
	svc := newTestService(repo, storage, new(mocks.MockRecognitionEngine))

	id := uuid.New()
	repo.On("GetByID", mock.Anything, id).Return(nil, domain.ErrNotFound)

	err := svc.Delete(context.Background(), id)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	storage.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything, mock.Anything)
}

func TestDelete_StorageFailureKeepsRow(t *testing.T) {
	repo := new(mocks.MockBillRepository)
	storage := new(mocks.MockObjectStorage)
	svc := newTestService(repo, storage, new(mocks.MockRecognitionEngine))

	id := uuid.New()
	bill := &domain.Bill{ID: id, S3Bucket: "test-bucket", S3Key: "bills/x/y.png"}
	repo.On("GetByID", mock.Anything, id).Return(bill, nil)
	storage.On("Delete", mock.Anything, "test-bucket", "bills/x/y.png").Return(errors.New("s3 down"))

	err := svc.Delete(context.Background(), id)
	assert.Error(t, err)
	repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestGetFileURL_NotFound(t *testing.T) {
	repo := new(mocks.MockBillRepository)
	svc := newTestService(repo, new(mocks.MockObjectStorage), new(mocks.MockRecognitionEngine))

	id := uuid.New()
	repo.On("GetByID", mock.Anything, id).Return(nil, domain.ErrNotFound)

	_, err := svc.GetFileURL(context.Background(), id)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
