package services

import (
	"encoding/base64"
	"net/http"
	"regexp"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"blogpress-backend/errs"
	"blogpress-backend/models"
)

type fakeMediaStore struct {
	media map[uuid.UUID]*models.Media

	addCalls    int
	deleteCalls int
	batchCalls  int

	lastBatch []uuid.UUID
	batchErr  error
}

func newFakeMediaStore() *fakeMediaStore {
	return &fakeMediaStore{media: make(map[uuid.UUID]*models.Media)}
}

func (f *fakeMediaStore) FindByID(id uuid.UUID) (*models.Media, error) {
	media, ok := f.media[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return media, nil
}

func (f *fakeMediaStore) Add(media *models.Media) error {
	f.addCalls++
	if media.ID == uuid.Nil {
		media.ID = uuid.New()
	}
	f.media[media.ID] = media
	return nil
}

func (f *fakeMediaStore) Delete(id uuid.UUID) error {
	f.deleteCalls++
	delete(f.media, id)
	return nil
}

func (f *fakeMediaStore) DeleteByIDs(ids []uuid.UUID) error {
	f.batchCalls++
	f.lastBatch = ids
	if f.batchErr != nil {
		return f.batchErr
	}
	for _, id := range ids {
		delete(f.media, id)
	}
	return nil
}

func TestMediaServiceUpload(t *testing.T) {
	store := newFakeMediaStore()
	service := NewMediaService(store)

	data := []byte("fake png bytes")
	result, err := service.Upload(data, "my photo (1).png", "image/png", int64(len(data)))
	require.NoError(t, err)

	assert.Equal(t, "/api/media/"+result.ID, result.URL)
	assert.Regexp(t, regexp.MustCompile(`^\d+-my_photo__1_.png$`), result.FileName)

	id, err := uuid.Parse(result.ID)
	require.NoError(t, err)
	stored := store.media[id]
	require.NotNil(t, stored)
	assert.Equal(t, base64.StdEncoding.EncodeToString(data), stored.Data)
	assert.Equal(t, "image/png", stored.MimeType)
	assert.Equal(t, int64(len(data)), stored.Size)
}

func TestMediaServiceUploadRejectsUnknownType(t *testing.T) {
	store := newFakeMediaStore()
	service := NewMediaService(store)

	_, err := service.Upload([]byte("%PDF-1.4"), "doc.pdf", "application/pdf", 8)
	require.Error(t, err)
	assert.True(t, errs.IsBadRequest(err))
	assert.Zero(t, store.addCalls, "rejected uploads never reach the store")
}

func TestMediaServiceUploadRejectsOversized(t *testing.T) {
	store := newFakeMediaStore()
	service := NewMediaService(store)

	_, err := service.Upload(nil, "huge.png", "image/png", MaxUploadSize+1)
	require.Error(t, err)

	var apiErr *errs.ApiErr
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusRequestEntityTooLarge, apiErr.StatusCode)
	assert.Zero(t, store.addCalls)
}

func TestMediaServiceUploadAcceptsLimitExactly(t *testing.T) {
	store := newFakeMediaStore()
	service := NewMediaService(store)

	_, err := service.Upload([]byte("x"), "fits.png", "image/png", MaxUploadSize)
	assert.NoError(t, err)
}

func TestMediaServiceGetRejectsMalformedID(t *testing.T) {
	service := NewMediaService(newFakeMediaStore())

	_, err := service.Get("not-a-uuid")
	require.Error(t, err)
	assert.True(t, errs.IsBadRequest(err))
}

func TestMediaServiceGetMissing(t *testing.T) {
	service := NewMediaService(newFakeMediaStore())

	_, err := service.Get(uuid.NewString())
	require.Error(t, err)
	assert.True(t, errs.IsNotFound(err))
}

func TestMediaServiceDeleteMissingSucceeds(t *testing.T) {
	store := newFakeMediaStore()
	service := NewMediaService(store)

	assert.NoError(t, service.Delete(uuid.NewString()))
	assert.Equal(t, 1, store.deleteCalls)
}

func TestMediaServiceCleanupRejectsEmptyList(t *testing.T) {
	store := newFakeMediaStore()
	service := NewMediaService(store)

	_, err := service.Cleanup(nil)
	require.Error(t, err)
	assert.True(t, errs.IsBadRequest(err))
	assert.Zero(t, store.batchCalls)
}

func TestMediaServiceCleanupRejectsMalformedID(t *testing.T) {
	store := newFakeMediaStore()
	service := NewMediaService(store)

	_, err := service.Cleanup([]string{uuid.NewString(), "not-a-uuid"})
	require.Error(t, err)
	assert.True(t, errs.IsBadRequest(err))
	assert.Zero(t, store.batchCalls)
}

func TestMediaServiceCleanupReportsRequestedCount(t *testing.T) {
	store := newFakeMediaStore()
	service := NewMediaService(store)

	existing := &models.Media{Filename: "keep-count.png", MimeType: "image/png"}
	require.NoError(t, store.Add(existing))

	// one id exists, one never did; the count covers both
	deleted, err := service.Cleanup([]string{existing.ID.String(), uuid.NewString()})
	require.NoError(t, err)
	assert.Equal(t, 2, deleted)
	assert.Len(t, store.lastBatch, 2)
	assert.NotContains(t, store.media, existing.ID)
}

func TestSanitizeFilename(t *testing.T) {
	name := SanitizeFilename("weird name!@#.jpeg")
	assert.Regexp(t, regexp.MustCompile(`^\d+-weird_name___.jpeg$`), name)
}
