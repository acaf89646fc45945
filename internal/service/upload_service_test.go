package service

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryStorage struct {
	name string
	data []byte
}

func (m *memoryStorage) Upload(_ context.Context, name string, reader io.Reader) (string, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return "", err
	}
	m.name = name
	m.data = data
	return "https://cdn.test/" + name, nil
}

func multipartFile(t *testing.T, name string, content []byte) *multipart.FileHeader {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", name)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest("POST", "/uploads", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(32<<20))
	return req.MultipartForm.File["file"][0]
}

var pngBytes = []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A, 0x00, 0x00, 0x00, 0x0D, 'I', 'H', 'D', 'R'}

func TestUploadStoresImages(t *testing.T) {
	storage := &memoryStorage{}
	svc := NewUploadService(storage, 10, testLogger())

	result, err := svc.Upload(context.Background(), multipartFile(t, "My Photo.PNG", pngBytes))
	require.NoError(t, err)

	assert.Equal(t, "my-photo.png", result.FileName)
	assert.Equal(t, "image/png", result.MimeType)
	assert.Equal(t, "https://cdn.test/my-photo.png", result.URL)
	assert.EqualValues(t, len(pngBytes), result.SizeBytes)
	assert.Equal(t, pngBytes, storage.data)
}

func TestUploadStoresPDFs(t *testing.T) {
	storage := &memoryStorage{}
	svc := NewUploadService(storage, 10, testLogger())

	result, err := svc.Upload(context.Background(), multipartFile(t, "report.pdf", []byte("%PDF-1.4 test")))
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", result.MimeType)
}

func TestUploadRejectsDisallowedTypes(t *testing.T) {
	storage := &memoryStorage{}
	svc := NewUploadService(storage, 10, testLogger())

	_, err := svc.Upload(context.Background(), multipartFile(t, "notes.txt", []byte("plain text, not an attachment")))
	assert.ErrorIs(t, err, ErrUploadTypeNotAllowed)
}

func TestUploadRejectsOversizedFiles(t *testing.T) {
	storage := &memoryStorage{}
	svc := NewUploadService(storage, 1, testLogger())

	big := append(append([]byte{}, pngBytes...), bytes.Repeat([]byte{0x00}, 2*1024*1024)...)
	_, err := svc.Upload(context.Background(), multipartFile(t, "huge.png", big))
	assert.ErrorIs(t, err, ErrUploadTooLarge)
}

func TestUploadRequiresFile(t *testing.T) {
	svc := NewUploadService(&memoryStorage{}, 10, testLogger())

	_, err := svc.Upload(context.Background(), nil)
	assert.ErrorIs(t, err, ErrUploadMissing)
}
