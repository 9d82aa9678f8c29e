package document

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"campusshelter/model"
	drepo "campusshelter/repository/document"
	"campusshelter/util/errcode"

	"github.com/google/uuid"
)

// MaxFileSize caps uploads at 10 MB.
const MaxFileSize = 10 << 20

const (
	ErrTooLarge errcode.Code = "FILE_TOO_LARGE"
)

// Code extracts the error code set by this service.
func Code(err error) errcode.Code { return errcode.Of(err) }

type Service interface {
	// Save writes the uploaded file under the uploads directory with a
	// generated name and records it for the user.
	Save(ctx context.Context, userID int64, docType, originalName string, size int64, src io.Reader) (*model.Document, error)
}

type service struct {
	r   drepo.Repo
	dir string
}

func New(r drepo.Repo, uploadDir string) Service { return &service{r: r, dir: uploadDir} }

func (s *service) Save(ctx context.Context, userID int64, docType, originalName string, size int64, src io.Reader) (*model.Document, error) {
	if size > MaxFileSize {
		return nil, errcode.New(ErrTooLarge)
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return nil, err
	}

	ext := strings.ToLower(filepath.Ext(originalName))
	if ext == "" {
		ext = ".bin"
	}
	filename := uuid.NewString() + ext
	path := filepath.Join(s.dir, filename)

	dst, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	defer dst.Close()

	// The declared size is client-supplied; count what actually arrives
	// and reject the upload when the stream runs past the cap.
	written, err := io.Copy(dst, io.LimitReader(src, MaxFileSize+1))
	if err != nil {
		os.Remove(path)
		return nil, err
	}
	if written > MaxFileSize {
		os.Remove(path)
		return nil, errcode.New(ErrTooLarge)
	}

	d := &model.Document{
		UserID:  userID,
		Type:    docType,
		FileURL: "/uploads/" + filename,
	}
	if err := s.r.Insert(ctx, d); err != nil {
		os.Remove(path)
		return nil, err
	}
	return d, nil
}
