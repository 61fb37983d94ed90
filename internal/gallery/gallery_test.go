package gallery

import (
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"hash/crc32"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/chai2010/webp"
	"github.com/stretchr/testify/require"

	"github.com/thanFreecss/celebrity-salon/internal/dbtest"
	"github.com/thanFreecss/celebrity-salon/internal/httperr"
	"github.com/thanFreecss/celebrity-salon/internal/models"
)

type memStore struct {
	mu      sync.Mutex
	objects map[string][]byte
	failOn  string
}

func newMemStore() *memStore { return &memStore{objects: map[string][]byte{}} }

func (m *memStore) Put(ctx context.Context, key, contentType string, body []byte) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failOn != "" && strings.HasSuffix(key, m.failOn) {
		return "", errors.New("bucket unreachable")
	}
	m.objects[key] = body
	return "https://cdn.test/" + key, nil
}

func (m *memStore) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.objects, key)
	return nil
}

func pngOf(t *testing.T, w, h int) *bytes.Buffer {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, h/2, color.RGBA{R: 200, A: 255})
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return &buf
}

func TestProcessScalesDownAndEncodesWebP(t *testing.T) {
	out, err := Process(pngOf(t, 2400, 1600))
	require.NoError(t, err)

	cfg, err := webp.DecodeConfig(bytes.NewReader(out))
	require.NoError(t, err)
	require.Equal(t, MaxWidth, cfg.Width)
	require.Equal(t, 800, cfg.Height)
}

func TestProcessKeepsSmallImages(t *testing.T) {
	out, err := Process(pngOf(t, 300, 200))
	require.NoError(t, err)

	cfg, err := webp.DecodeConfig(bytes.NewReader(out))
	require.NoError(t, err)
	require.Equal(t, 300, cfg.Width)
}

func TestProcessRejectsGarbage(t *testing.T) {
	_, err := Process(strings.NewReader("not an image"))
	require.Error(t, err)
}

// withDeclaredSize rewrites the IHDR of a PNG so it claims w x h pixels.
func withDeclaredSize(t *testing.T, buf *bytes.Buffer, w, h uint32) *bytes.Reader {
	t.Helper()
	b := buf.Bytes()
	require.Equal(t, "IHDR", string(b[12:16]))
	binary.BigEndian.PutUint32(b[16:20], w)
	binary.BigEndian.PutUint32(b[20:24], h)
	binary.BigEndian.PutUint32(b[29:33], crc32.ChecksumIEEE(b[12:29]))
	return bytes.NewReader(b)
}

func TestProcessRejectsOversizedCanvas(t *testing.T) {
	_, err := Process(withDeclaredSize(t, pngOf(t, 4, 4), 9000, 9000))
	require.ErrorIs(t, err, ErrImageTooLarge)

	_, err = Process(withDeclaredSize(t, pngOf(t, 4, 4), 100, MaxDimension+1))
	require.ErrorIs(t, err, ErrImageTooLarge)
}

func TestUploadListDelete(t *testing.T) {
	db := dbtest.New(t)
	store := newMemStore()
	svc := NewService(db, store, nil)
	ctx := context.Background()

	img, err := svc.Upload(ctx, UploadInput{
		Title:   "Balayage",
		Service: "hair-color",
		Before:  pngOf(t, 64, 64),
		After:   pngOf(t, 64, 64),
	})
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(img.BeforeURL, "https://cdn.test/gallery/"))
	require.Len(t, store.objects, 2)

	list, err := svc.List(ctx, "hair-color")
	require.NoError(t, err)
	require.Len(t, list, 1)

	list, err = svc.List(ctx, "facial")
	require.NoError(t, err)
	require.Empty(t, list)

	require.NoError(t, svc.Delete(ctx, img.ID, nil))
	require.Empty(t, store.objects)
	require.Equal(t, httperr.KindNotFound, httperr.KindOf(svc.Delete(ctx, img.ID, nil)))
}

func TestUploadValidationAndCleanup(t *testing.T) {
	db := dbtest.New(t)
	store := newMemStore()
	svc := NewService(db, store, nil)
	ctx := context.Background()

	_, err := svc.Upload(ctx, UploadInput{Service: "tattoo"})
	var be httperr.BusinessError
	require.ErrorAs(t, err, &be)
	require.Contains(t, be.Fields, "title")
	require.Contains(t, be.Fields, "service")
	require.Contains(t, be.Fields, "before")

	_, err = svc.Upload(ctx, UploadInput{
		Title: "x", Service: "facial",
		Before: strings.NewReader("nope"), After: pngOf(t, 8, 8),
	})
	require.True(t, httperr.IsBusiness(err, "invalid_image"))

	store.failOn = "-after.webp"
	_, err = svc.Upload(ctx, UploadInput{
		Title: "x", Service: "facial",
		Before: pngOf(t, 8, 8), After: pngOf(t, 8, 8),
	})
	require.Equal(t, httperr.KindUnavailable, httperr.KindOf(err))
	require.Empty(t, store.objects)

	var count int64
	db.Model(&models.GalleryImage{}).Count(&count)
	require.Zero(t, count)
}

func TestDiskStore(t *testing.T) {
	dir := t.TempDir()
	s := DiskStore{Dir: dir, BaseURL: "/uploads/"}

	url, err := s.Put(context.Background(), "gallery/a.webp", "image/webp", []byte("data"))
	require.NoError(t, err)
	require.Equal(t, "/uploads/gallery/a.webp", url)

	got, err := os.ReadFile(filepath.Join(dir, "gallery", "a.webp"))
	require.NoError(t, err)
	require.Equal(t, "data", string(got))

	require.NoError(t, s.Delete(context.Background(), "gallery/a.webp"))
	require.NoError(t, s.Delete(context.Background(), "gallery/a.webp"))
}
