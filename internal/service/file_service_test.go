package service

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/radwerk/intake-api/internal/domain"
	"github.com/radwerk/intake-api/internal/testutil"
)

func TestFileService_UploadBatch(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	customer := testutil.SeedCustomer(t, env.db, nil)

	uploads := []FileUpload{
		{Filename: "vorne links.jpg", ContentType: "image/jpeg", Data: strings.NewReader("eins"), Purpose: domain.FilePurposeRim},
		{Filename: "vorne rechts.jpg", ContentType: "image/jpeg", Data: strings.NewReader("zwei"), Purpose: domain.FilePurposeRim},
	}
	dtos, err := env.files.UploadBatch(ctx, customer.ID, uploads)
	require.NoError(t, err)
	require.Len(t, dtos, 2)

	// Submission order becomes display order.
	assert.Equal(t, 1, dtos[0].DisplayOrder)
	assert.Equal(t, 2, dtos[1].DisplayOrder)
	assert.Equal(t, int64(4), dtos[0].Size)
	assert.Contains(t, dtos[0].ViewURL, "/api/v2/files/"+dtos[0].ID.String()+"/view")
	assert.Contains(t, dtos[0].DownloadURL, "/download")

	// A later batch continues the sequence.
	more, err := env.files.UploadBatch(ctx, customer.ID, []FileUpload{
		{Filename: "hinten.jpg", ContentType: "image/jpeg", Data: strings.NewReader("drei")},
	})
	require.NoError(t, err)
	assert.Equal(t, 3, more[0].DisplayOrder)

	got, err := env.customers.GetByID(ctx, customer.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, got.ImageCount)
	assert.True(t, got.HasImages)
}

func TestFileService_UploadBatch_UnknownCustomer(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.files.UploadBatch(context.Background(), uuid.New(), []FileUpload{
		{Filename: "x.jpg", ContentType: "image/jpeg", Data: strings.NewReader("x")},
	})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFileService_UploadBatch_AggregateRefreshFailure(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	customer := testutil.SeedCustomer(t, env.db, nil)

	// Drop the aggregate column so only the final refresh step fails.
	require.NoError(t, env.db.Exec("ALTER TABLE customers DROP COLUMN image_count").Error)

	_, err := env.files.UploadBatch(ctx, customer.ID, []FileUpload{
		{Filename: "felge.jpg", ContentType: "image/jpeg", Data: strings.NewReader("jpeg")},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "image aggregates")

	// The stored file is not rolled back; the error surfaces on top.
	files, err := env.files.ListByCustomer(ctx, customer.ID)
	require.NoError(t, err)
	assert.Len(t, files, 1)
}

func TestFileService_UploadSniffsContentType(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	customer := testutil.SeedCustomer(t, env.db, nil)

	// Minimal PNG signature; the declared octet-stream forces a sniff.
	png := append([]byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}, make([]byte, 64)...)
	dto, err := env.files.UploadToCustomer(ctx, customer.ID, FileUpload{
		Filename:    "unbenannt",
		ContentType: "application/octet-stream",
		Data:        bytes.NewReader(png),
	})
	require.NoError(t, err)
	assert.Equal(t, "image/png", dto.ContentType)
	assert.True(t, strings.HasSuffix(dto.Filename, ".png"), "filename %q should carry the sniffed extension", dto.Filename)
}

func TestFileService_DownloadRoundTrip(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	customer := testutil.SeedCustomer(t, env.db, nil)

	dto, err := env.files.UploadToCustomer(ctx, customer.ID, FileUpload{
		Filename:    "rechnung.pdf",
		ContentType: "application/pdf",
		Data:        strings.NewReader("pdf inhalt"),
		Purpose:     domain.FilePurposeInvoice,
	})
	require.NoError(t, err)

	reader, filename, contentType, err := env.files.Download(ctx, dto.ID)
	require.NoError(t, err)
	defer reader.Close()

	content, err := io.ReadAll(reader)
	require.NoError(t, err)
	assert.Equal(t, "pdf inhalt", string(content))
	assert.Equal(t, "rechnung.pdf", filename)
	assert.Equal(t, "application/pdf", contentType)
}

func TestFileService_Delete_RefreshesAggregates(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	customer := testutil.SeedCustomer(t, env.db, nil)

	dto, err := env.files.UploadToCustomer(ctx, customer.ID, FileUpload{
		Filename:    "felge.jpg",
		ContentType: "image/jpeg",
		Data:        strings.NewReader("jpeg"),
	})
	require.NoError(t, err)

	require.NoError(t, env.files.Delete(ctx, dto.ID))

	got, err := env.customers.GetByID(ctx, customer.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.ImageCount)
	assert.False(t, got.HasImages)

	files, err := env.files.ListByCustomer(ctx, customer.ID)
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestFileService_InvalidPurposeFallsBack(t *testing.T) {
	env := newTestEnv(t)
	customer := testutil.SeedCustomer(t, env.db, nil)

	dto, err := env.files.UploadToCustomer(context.Background(), customer.ID, FileUpload{
		Filename:    "datei.jpg",
		ContentType: "image/jpeg",
		Data:        strings.NewReader("x"),
		Purpose:     "gutachten",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.FilePurposeOther, dto.Purpose)
}
