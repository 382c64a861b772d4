package service

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/iliyamo/studio-showcase/internal/apperr"
	"github.com/iliyamo/studio-showcase/internal/model"
	"github.com/iliyamo/studio-showcase/internal/queue"
	"github.com/iliyamo/studio-showcase/internal/repository"
	"github.com/iliyamo/studio-showcase/internal/storage"
)

var (
	ErrImageNotFound    = apperr.NotFound("IMAGE_NOT_FOUND", "Image not found.")
	ErrCategoryNotFound = apperr.NotFound("CATEGORY_NOT_FOUND", "Category not found.")
	ErrFileTooLarge     = apperr.Validation("FILE_TOO_LARGE", "File exceeds the maximum upload size.", nil).WithStatus(http.StatusRequestEntityTooLarge)
	ErrUnsupportedFile  = apperr.Validation("UNSUPPORTED_FILE_TYPE", "File type not allowed.", nil)
	ErrMissingFile      = apperr.Validation("FILE_REQUIRED", "An image file is required.", map[string]string{"file": "required"})
)

const codeFileSaveFailed = "FILE_SAVE_FAILED"

// ImageStore is the image repository contract.
type ImageStore interface {
	List(ctx context.Context, f repository.ImageFilter) ([]model.Image, error)
	GetByID(ctx context.Context, id uint64) (*model.Image, error)
	Create(ctx context.Context, img *model.Image) error
	Update(ctx context.Context, img *model.Image) error
	Delete(ctx context.Context, id uint64) error
}

// CategoryLookup resolves a category for the denormalized image name.
type CategoryLookup interface {
	GetByID(ctx context.Context, id uint64) (*model.Category, error)
}

// UploadPolicy bounds accepted uploads.
type UploadPolicy struct {
	MaxFileSize       int64
	AllowedExtensions []string
}

// Upload is one incoming file plus its metadata.
type Upload struct {
	Filename    string
	ContentType string
	Size        int64 // as declared by the client; -1 when unknown
	Body        io.Reader
	Meta        model.ImageMeta
}

// ImageService owns the upload path and keeps Image.Category in sync with
// Image.CategoryID on every write.
type ImageService struct {
	images     ImageStore
	categories CategoryLookup
	files      storage.FileStore
	policy     UploadPolicy
	events     EventPublisher
	log        *zap.Logger
}

func NewImageService(images ImageStore, categories CategoryLookup, files storage.FileStore, policy UploadPolicy,
	events EventPublisher, log *zap.Logger) *ImageService {
	if events == nil {
		events = NopPublisher{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &ImageService{images: images, categories: categories, files: files, policy: policy, events: events, log: log}
}

func (s *ImageService) List(ctx context.Context, f repository.ImageFilter) ([]model.Image, error) {
	out, err := s.images.List(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("image.List: %w", storeFailure(err))
	}
	return out, nil
}

func (s *ImageService) Get(ctx context.Context, id uint64) (*model.Image, error) {
	img, err := s.images.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("image.Get: %w", ErrImageNotFound)
		}
		return nil, fmt.Errorf("image.Get: %w", storeFailure(err))
	}
	return img, nil
}

// Upload validates the file, stores it under a fresh unique name and
// records it. If the row cannot be written the stored file is removed.
func (s *ImageService) Upload(ctx context.Context, owner *model.User, up Upload) (*model.Image, error) {
	const op = "image.Upload"

	if up.Body == nil || up.Filename == "" {
		return nil, fmt.Errorf("%s: %w", op, ErrMissingFile)
	}
	ext := strings.ToLower(filepath.Ext(up.Filename))
	if !slices.Contains(s.policy.AllowedExtensions, ext) {
		return nil, fmt.Errorf("%s: %w", op, s.unsupported(ext))
	}
	if s.policy.MaxFileSize > 0 && up.Size > s.policy.MaxFileSize {
		return nil, fmt.Errorf("%s: %w", op, ErrFileTooLarge)
	}

	br := bufio.NewReaderSize(up.Body, 512)
	contentType := strings.TrimSpace(up.ContentType)
	if contentType == "" || contentType == "application/octet-stream" {
		head, _ := br.Peek(512)
		contentType = http.DetectContentType(head)
	}
	if !strings.HasPrefix(contentType, "image/") {
		return nil, fmt.Errorf("%s: %w", op, ErrUnsupportedFile)
	}

	var category *model.Category
	if up.Meta.CategoryID != nil {
		c, err := s.lookupCategory(ctx, *up.Meta.CategoryID)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		category = c
	}

	name := uuid.NewString() + ext
	var body io.Reader = br
	if s.policy.MaxFileSize > 0 {
		body = io.LimitReader(br, s.policy.MaxFileSize+1)
	}
	obj, err := s.files.Save(ctx, name, body, contentType)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, apperr.Upstream(codeFileSaveFailed, "Could not store the uploaded file.", err))
	}
	if s.policy.MaxFileSize > 0 && obj.Size > s.policy.MaxFileSize {
		s.removeFile(ctx, name)
		return nil, fmt.Errorf("%s: %w", op, ErrFileTooLarge)
	}

	img := &model.Image{
		Title:       strings.TrimSpace(up.Meta.Title),
		Description: up.Meta.Description,
		Filename:    name,
		FilePath:    obj.Path,
		FileSize:    obj.Size,
		MimeType:    contentType,
		Category:    up.Meta.Category,
		Tags:        up.Meta.Tags,
		IsFeatured:  up.Meta.IsFeatured,
		IsPublic:    true,
		IsThumbnail: up.Meta.IsThumbnail,
		IsHeroImage: up.Meta.IsHeroImage,
		OwnerID:     owner.ID,
	}
	if up.Meta.IsPublic != nil {
		img.IsPublic = *up.Meta.IsPublic
	}
	if category != nil {
		img.SetCategory(category)
	}
	if err := s.images.Create(ctx, img); err != nil {
		s.removeFile(ctx, name)
		return nil, fmt.Errorf("%s: %w", op, storeFailure(err))
	}

	s.events.Publish(ctx, queue.Event{
		Type:       queue.ImageUploaded,
		Subject:    owner.Username,
		UserID:     owner.ID,
		ResourceID: img.ID,
		Attrs:      map[string]string{"filename": img.Filename, "size": strconv.FormatInt(img.FileSize, 10)},
	})
	return img, nil
}

// Update merges patch into the image. An explicit category_id re-derives
// the category name; an explicit null clears both.
func (s *ImageService) Update(ctx context.Context, id uint64, patch model.ImagePatch) (*model.Image, error) {
	const op = "image.Update"

	img, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	patch.Apply(img)
	if patch.CategoryID.Set {
		if !patch.CategoryID.Valid {
			img.SetCategory(nil)
		} else {
			c, err := s.lookupCategory(ctx, patch.CategoryID.Value)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", op, err)
			}
			img.SetCategory(c)
		}
	} else if img.CategoryID != nil && patch.Category != nil {
		// The name is derived while a category is linked.
		c, err := s.lookupCategory(ctx, *img.CategoryID)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		img.SetCategory(c)
	}

	if err := s.images.Update(ctx, img); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrImageNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, storeFailure(err))
	}
	return img, nil
}

// Delete removes the row, then tries to remove the file. A file that
// cannot be removed is logged and otherwise ignored.
func (s *ImageService) Delete(ctx context.Context, actor *model.User, id uint64) error {
	const op = "image.Delete"

	img, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.images.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("%s: %w", op, ErrImageNotFound)
		}
		return fmt.Errorf("%s: %w", op, storeFailure(err))
	}
	s.removeFile(ctx, img.Filename)

	ev := queue.Event{Type: queue.ImageDeleted, ResourceID: id, Attrs: map[string]string{"filename": img.Filename}}
	if actor != nil {
		ev.Subject, ev.UserID = actor.Username, actor.ID
	}
	s.events.Publish(ctx, ev)
	return nil
}

func (s *ImageService) lookupCategory(ctx context.Context, id uint64) (*model.Category, error) {
	c, err := s.categories.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, storeFailure(err)
	}
	return c, nil
}

func (s *ImageService) removeFile(ctx context.Context, name string) {
	if err := s.files.Remove(ctx, name); err != nil {
		s.log.Warn("image file removal failed", zap.String("filename", name), zap.Error(err))
	}
}

func (s *ImageService) unsupported(ext string) *apperr.Error {
	e := *ErrUnsupportedFile
	e.Message = fmt.Sprintf("File type %q not allowed. Allowed: %s.", ext, strings.Join(s.policy.AllowedExtensions, ", "))
	return &e
}
