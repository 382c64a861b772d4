package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/studio-showcase/internal/apperr"
	"github.com/iliyamo/studio-showcase/internal/middleware"
	"github.com/iliyamo/studio-showcase/internal/model"
	"github.com/iliyamo/studio-showcase/internal/repository"
	"github.com/iliyamo/studio-showcase/internal/service"
)

const uploadTimeout = 60 * time.Second

// ImageManager is implemented by *service.ImageService.
type ImageManager interface {
	List(ctx context.Context, f repository.ImageFilter) ([]model.Image, error)
	Get(ctx context.Context, id uint64) (*model.Image, error)
	Upload(ctx context.Context, owner *model.User, up service.Upload) (*model.Image, error)
	Update(ctx context.Context, id uint64, patch model.ImagePatch) (*model.Image, error)
	Delete(ctx context.Context, actor *model.User, id uint64) error
}

type ImageHandler struct {
	Images ImageManager
}

func NewImageHandler(images ImageManager) *ImageHandler { return &ImageHandler{Images: images} }

// List serves public images, filtered by category, category_id,
// is_featured and is_hero_image.
func (h *ImageHandler) List(c echo.Context) error {
	p, err := pageParams(c, maxLimit)
	if err != nil {
		return err
	}
	f := repository.ImageFilter{PublicOnly: true, Category: strings.TrimSpace(c.QueryParam("category")), Page: p}
	if f.IsFeatured, err = queryOptBool(c, "is_featured"); err != nil {
		return err
	}
	if f.IsHeroImage, err = queryOptBool(c, "is_hero_image"); err != nil {
		return err
	}
	if raw := c.QueryParam("category_id"); raw != "" {
		id, perr := strconv.ParseUint(raw, 10, 64)
		if perr != nil {
			return apperr.Validation("VALIDATION_ERROR", "Invalid query parameter.", map[string]string{"category_id": "must be a positive integer"})
		}
		f.CategoryID = &id
	}
	ctx, cancel := requestCtx(c)
	defer cancel()

	items, err := h.Images.List(ctx, f)
	if err != nil {
		return err
	}
	return list(c, "Images retrieved.", items, p)
}

// Mine lists every image owned by the caller, public or not.
func (h *ImageHandler) Mine(c echo.Context) error {
	u := middleware.CurrentUser(c)
	if u == nil {
		return service.ErrUnauthenticated
	}
	p, err := pageParams(c, maxLimit)
	if err != nil {
		return err
	}
	ctx, cancel := requestCtx(c)
	defer cancel()

	items, err := h.Images.List(ctx, repository.ImageFilter{OwnerID: &u.ID, Page: p})
	if err != nil {
		return err
	}
	return list(c, "Your images retrieved.", items, p)
}

func (h *ImageHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	ctx, cancel := requestCtx(c)
	defer cancel()

	img, err := h.Images.Get(ctx, id)
	if err != nil {
		return err
	}
	return ok(c, "Image details retrieved.", img)
}

// Upload accepts multipart/form-data with a "file" part and the
// descriptive fields of model.ImageMeta.
func (h *ImageHandler) Upload(c echo.Context) error {
	owner := middleware.CurrentUser(c)
	if owner == nil {
		return service.ErrUnauthenticated
	}
	fh, err := c.FormFile("file")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return service.ErrMissingFile
		}
		return errBadBody
	}
	meta, err := imageMeta(c)
	if err != nil {
		return err
	}
	if err := c.Validate(&meta); err != nil {
		return err
	}

	f, err := fh.Open()
	if err != nil {
		return errBadBody
	}
	defer f.Close()

	ctx, cancel := context.WithTimeout(c.Request().Context(), uploadTimeout)
	defer cancel()

	img, err := h.Images.Upload(ctx, owner, service.Upload{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get(echo.HeaderContentType),
		Size:        fh.Size,
		Body:        f,
		Meta:        meta,
	})
	if err != nil {
		return err
	}
	return created(c, "Image uploaded.", img)
}

func (h *ImageHandler) Update(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var patch model.ImagePatch
	if err := bind(c, &patch); err != nil {
		return err
	}
	ctx, cancel := requestCtx(c)
	defer cancel()

	img, err := h.Images.Update(ctx, id, patch)
	if err != nil {
		return err
	}
	return ok(c, "Image updated.", img)
}

func (h *ImageHandler) Delete(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	ctx, cancel := requestCtx(c)
	defer cancel()

	if err := h.Images.Delete(ctx, middleware.CurrentUser(c), id); err != nil {
		return err
	}
	return ok(c, "Image deleted.", nil)
}

// imageMeta reads the multipart text fields. Booleans accept anything
// strconv.ParseBool does.
func imageMeta(c echo.Context) (model.ImageMeta, error) {
	meta := model.ImageMeta{
		Title:       strings.TrimSpace(c.FormValue("title")),
		Description: c.FormValue("description"),
		Category:    strings.TrimSpace(c.FormValue("category")),
		Tags:        c.FormValue("tags"),
	}
	fields := map[string]string{}
	flag := func(name string, dst *bool) {
		raw := c.FormValue(name)
		if raw == "" {
			return
		}
		v, err := strconv.ParseBool(raw)
		if err != nil {
			fields[name] = "must be a boolean"
			return
		}
		*dst = v
	}
	flag("is_featured", &meta.IsFeatured)
	flag("is_thumbnail", &meta.IsThumbnail)
	flag("is_hero_image", &meta.IsHeroImage)
	if c.FormValue("is_public") != "" {
		var public bool
		flag("is_public", &public)
		meta.IsPublic = &public
	}
	if raw := c.FormValue("category_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil || id == 0 {
			fields["category_id"] = "must be a positive integer"
		} else {
			meta.CategoryID = &id
		}
	}
	if len(fields) > 0 {
		return meta, apperr.Validation("VALIDATION_ERROR", "Request validation failed.", fields)
	}
	return meta, nil
}
