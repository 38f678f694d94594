package media

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fhuszti/portfolio-medias-go/internal/logger"
	"github.com/fhuszti/portfolio-medias-go/internal/model"
	"github.com/fhuszti/portfolio-medias-go/internal/port"
)

type mediaUploaderSrv struct {
	primary port.Tree
	mirror  port.Tree
	tr      port.ImageTransformer
	specs   model.ImageSpecs
	idGen   port.IDGen
	cfg     UploadConfig
	now     func() time.Time
}

// compile-time check: *mediaUploaderSrv must satisfy port.MediaUploader
var _ port.MediaUploader = (*mediaUploaderSrv)(nil)

// NewMediaUploader constructs a MediaUploader. mirror may be nil when no
// mirror tree is configured.
func NewMediaUploader(primary, mirror port.Tree, tr port.ImageTransformer, specs model.ImageSpecs, idGen port.IDGen, cfg UploadConfig) port.MediaUploader {
	return &mediaUploaderSrv{
		primary: primary,
		mirror:  mirror,
		tr:      tr,
		specs:   specs,
		idGen:   idGen,
		cfg:     cfg,
		now:     time.Now,
	}
}

// UploadMedia validates the input, optionally transforms the image, then
// writes it to the primary tree and the mirror tree under <id><ext>.
func (s *mediaUploaderSrv) UploadMedia(ctx context.Context, in port.UploadMediaInput) (port.UploadMediaOutput, error) {
	if !IsImage(in.MimeType) {
		return port.UploadMediaOutput{}, fmt.Errorf("%w: mime type %q is not an image", ErrValidation, in.MimeType)
	}
	if len(in.Data) == 0 {
		return port.UploadMediaOutput{}, fmt.Errorf("%w: file is empty", ErrValidation)
	}
	if int64(len(in.Data)) > s.cfg.maxFileSize() {
		return port.UploadMediaOutput{}, fmt.Errorf("%w: file is %d bytes, limit is %d", ErrValidation, len(in.Data), s.cfg.maxFileSize())
	}
	format, err := model.ParseFormat(in.Format)
	if err != nil {
		return port.UploadMediaOutput{}, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	category, err := model.ParseCategory(in.Category)
	if err != nil {
		return port.UploadMediaOutput{}, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	dir, err := ProjectDir(in.Project)
	if err != nil {
		return port.UploadMediaOutput{}, err
	}
	verbatim, canStoreVerbatim := model.VerbatimFormat(in.MimeType, in.Filename)
	if !in.Optimize && !canStoreVerbatim {
		return port.UploadMediaOutput{}, fmt.Errorf("%w: %s images can only be stored optimised", ErrValidation, in.MimeType)
	}

	id := s.idGen()
	asset := model.MediaAsset{
		ID:        id,
		Filename:  in.Filename,
		Project:   in.Project,
		Category:  category,
		CreatedAt: s.now().UTC(),
	}
	var warnings []string

	data := in.Data
	stored := verbatim
	asset.Size = model.SizeKB(len(data))

	if in.Optimize {
		spec, ok := s.specs.ForCategory(category)
		if !ok {
			return port.UploadMediaOutput{}, fmt.Errorf("no image spec configured for category %q", category)
		}
		out, err := s.transform(ctx, in.Data, spec, format)
		switch {
		case err == nil:
			data = out.Data
			stored = out.Format
			asset.Size = out.SizeKB
			asset.Dimensions = model.Dimensions{Width: out.Width, Height: out.Height}
		case errors.Is(err, ErrDecode) && !canStoreVerbatim:
			return port.UploadMediaOutput{}, fmt.Errorf("%w: %s image could not be decoded: %v", ErrValidation, in.MimeType, err)
		case errors.Is(err, ErrDecode):
			logger.Warnf(ctx, "⚠️  Storing %q unoptimised: %v", in.Filename, err)
			warnings = append(warnings, fmt.Sprintf("image could not be optimised, original bytes stored: %v", err))
		default:
			return port.UploadMediaOutput{}, err
		}
	}

	asset.Format = stored.String()
	key, err := FileKey(in.Project, id+stored.Ext())
	if err != nil {
		return port.UploadMediaOutput{}, err
	}
	opts := map[string]string{"Content-Type": stored.MimeType()}

	if err := writeTo(ctx, s.primary, dir, key, data, opts); err != nil {
		return port.UploadMediaOutput{}, asIOErr(err)
	}

	stale := false
	if s.mirror != nil {
		if err := writeTo(ctx, s.mirror, dir, key, data, opts); err != nil {
			logger.Warnf(ctx, "⚠️  Mirror write failed for %q: %v", key, err)
			warnings = append(warnings, fmt.Errorf("%w: %s: %v", ErrPartialWrite, s.mirror.Name(), err).Error())
			stale = true
		}
	}

	asset.Path = PublicPath(key)
	return port.UploadMediaOutput{Asset: asset, Warnings: warnings, MirrorStale: stale}, nil
}

// transform runs the transformer until it finishes or ctx is done.
func (s *mediaUploaderSrv) transform(ctx context.Context, raw []byte, spec model.ImageSpec, format model.Format) (model.Transformed, error) {
	type result struct {
		out model.Transformed
		err error
	}
	done := make(chan result, 1)
	go func() {
		out, err := s.tr.Transform(raw, spec, format)
		done <- result{out, err}
	}()

	select {
	case r := <-done:
		return r.out, r.err
	case <-ctx.Done():
		return model.Transformed{}, fmt.Errorf("%w: transform interrupted: %v", ErrIO, ctx.Err())
	}
}

func writeTo(ctx context.Context, tree port.Tree, dir, key string, data []byte, opts map[string]string) error {
	if err := tree.EnsureDir(ctx, dir); err != nil {
		return fmt.Errorf("%s: ensuring %q: %w", tree.Name(), dir, err)
	}
	if err := tree.SaveFile(ctx, key, bytes.NewReader(data), int64(len(data)), opts); err != nil {
		return fmt.Errorf("%s: saving %q: %w", tree.Name(), key, err)
	}
	return nil
}

// asIOErr classifies a primary tree failure, timeouts included, as ErrIO.
func asIOErr(err error) error {
	if errors.Is(err, ErrIO) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrIO, err)
}
