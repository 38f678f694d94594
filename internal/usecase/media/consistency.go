package media

import (
	"context"
	"errors"
	"fmt"

	"github.com/fhuszti/portfolio-medias-go/internal/model"
	"github.com/fhuszti/portfolio-medias-go/internal/port"
)

type consistencyCheckerSrv struct {
	catalog port.AssetCatalog
	primary port.Tree
	mirror  port.Tree
}

// compile-time check: *consistencyCheckerSrv must satisfy port.ConsistencyChecker
var _ port.ConsistencyChecker = (*consistencyCheckerSrv)(nil)

// NewConsistencyChecker constructs a ConsistencyChecker. mirror may be nil.
func NewConsistencyChecker(catalog port.AssetCatalog, primary, mirror port.Tree) port.ConsistencyChecker {
	return &consistencyCheckerSrv{catalog, primary, mirror}
}

// CheckConsistency compares every catalog entry with the files on disk.
// It never modifies anything.
func (s *consistencyCheckerSrv) CheckConsistency(ctx context.Context) (model.Report, error) {
	assets, err := s.catalog.List(ctx)
	if err != nil {
		return model.Report{}, err
	}

	report := model.NewReport()
	known := make(map[string]bool, len(assets))
	for _, a := range assets {
		key, err := KeyFromPublicPath(a.Path)
		if err != nil {
			report.AddError(fmt.Sprintf("media %q has an invalid path %q", a.ID, a.Path))
			continue
		}
		known[key] = true

		if !KeyBelongsTo(key, a.Project) {
			report.AddError(fmt.Sprintf("media %q is stored at %q outside the directory of project %q", a.ID, a.Path, a.Project))
		}

		info, err := s.primary.StatFile(ctx, key)
		if errors.Is(err, ErrFileNotFound) {
			report.AddError(fmt.Sprintf("media %q is missing from %s at %q", a.ID, s.primary.Name(), key))
			continue
		}
		if err != nil {
			return model.Report{}, fmt.Errorf("%s: stat %q: %w", s.primary.Name(), key, err)
		}

		if s.mirror == nil {
			continue
		}
		mInfo, err := s.mirror.StatFile(ctx, key)
		switch {
		case errors.Is(err, ErrFileNotFound):
			report.AddWarning(fmt.Sprintf("media %q is missing from %s", a.ID, s.mirror.Name()))
		case err != nil:
			report.AddWarning(fmt.Sprintf("media %q could not be checked in %s: %v", a.ID, s.mirror.Name(), err))
		case mInfo.SizeBytes != info.SizeBytes:
			report.AddWarning(fmt.Sprintf("media %q differs in %s: %d bytes, primary has %d", a.ID, s.mirror.Name(), mInfo.SizeBytes, info.SizeBytes))
		}
	}

	keys, err := s.primary.ListFiles(ctx)
	if err != nil {
		return model.Report{}, fmt.Errorf("%s: listing files: %w", s.primary.Name(), err)
	}
	for _, k := range keys {
		if !known[k] {
			report.AddWarning(fmt.Sprintf("orphan file %q in %s", k, s.primary.Name()))
		}
	}
	return report, nil
}
