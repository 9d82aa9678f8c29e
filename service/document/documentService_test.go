package document

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"campusshelter/model"
	drepo "campusshelter/repository/document"

	"github.com/stretchr/testify/require"
)

type mockRepo struct {
	insertFn func(ctx context.Context, d *model.Document) error
}

var _ drepo.Repo = (*mockRepo)(nil)

func (m *mockRepo) Insert(ctx context.Context, d *model.Document) error {
	if m.insertFn == nil {
		return nil
	}
	return m.insertFn(ctx, d)
}

func TestSave_Success(t *testing.T) {
	dir := t.TempDir()
	m := &mockRepo{
		insertFn: func(ctx context.Context, d *model.Document) error {
			d.ID = 8
			return nil
		},
	}
	svc := New(m, dir)

	body := "student id card scan"
	d, err := svc.Save(context.Background(), 2, "ID_CARD", "scan.PDF", int64(len(body)), strings.NewReader(body))
	require.NoError(t, err)
	require.Equal(t, int64(8), d.ID)
	require.Equal(t, int64(2), d.UserID)
	require.Equal(t, "ID_CARD", d.Type)
	require.True(t, strings.HasPrefix(d.FileURL, "/uploads/"))
	require.True(t, strings.HasSuffix(d.FileURL, ".pdf"))

	written, err := os.ReadFile(filepath.Join(dir, strings.TrimPrefix(d.FileURL, "/uploads/")))
	require.NoError(t, err)
	require.Equal(t, body, string(written))
}

func TestSave_RejectsOversized(t *testing.T) {
	svc := New(&mockRepo{}, t.TempDir())

	_, err := svc.Save(context.Background(), 2, "LEASE", "big.pdf", MaxFileSize+1, strings.NewReader("x"))
	require.Error(t, err)
	require.Equal(t, ErrTooLarge, Code(err))
}

func TestSave_RejectsStreamLongerThanDeclared(t *testing.T) {
	dir := t.TempDir()
	svc := New(&mockRepo{}, dir)

	// Declared size lies; the stream itself is over the cap.
	oversized := bytes.NewReader(make([]byte, MaxFileSize+10))
	_, err := svc.Save(context.Background(), 2, "LEASE", "big.pdf", 4, oversized)
	require.Error(t, err)
	require.Equal(t, ErrTooLarge, Code(err))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Empty(t, entries)
}

func TestSave_CleansUpOnInsertFailure(t *testing.T) {
	dir := t.TempDir()
	m := &mockRepo{
		insertFn: func(ctx context.Context, d *model.Document) error {
			return os.ErrClosed
		},
	}
	svc := New(m, dir)

	_, err := svc.Save(context.Background(), 2, "ID_CARD", "scan.png", 4, strings.NewReader("data"))
	require.Error(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Empty(t, entries)
}

func TestSave_DefaultsExtension(t *testing.T) {
	dir := t.TempDir()
	svc := New(&mockRepo{}, dir)

	d, err := svc.Save(context.Background(), 2, "OTHER", "noext", 3, strings.NewReader("abc"))
	require.NoError(t, err)
	require.True(t, strings.HasSuffix(d.FileURL, ".bin"))
}
