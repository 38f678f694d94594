package optimiser

import (
	"fmt"
	"os"

	"github.com/fhuszti/portfolio-medias-go/internal/model"
	"gopkg.in/yaml.v3"
)

// DefaultQuality is the quality factor used when a spec does not set its own.
const DefaultQuality = 82

// DefaultSpecs returns the built-in image specs.
func DefaultSpecs() model.ImageSpecs {
	return model.ImageSpecs{
		"thumbnail": {Name: "thumbnail", MaxWidth: 400, MaxHeight: 300, AspectRatio: 4.0 / 3.0},
		"gallery":   {Name: "gallery", MaxWidth: 1200, MaxHeight: 800, AspectRatio: 3.0 / 2.0},
		"hero":      {Name: "hero", MaxWidth: 1920, MaxHeight: 1080, AspectRatio: 16.0 / 9.0},
		"profile":   {Name: "profile", MaxWidth: 400, MaxHeight: 400, AspectRatio: 1},
	}
}

type specsFile struct {
	Specs []model.ImageSpec `yaml:"specs"`
}

// LoadSpecsFile overlays the specs declared in a YAML file on top of the defaults.
// An empty path returns the defaults unchanged.
//
//	specs:
//	  - name: gallery
//	    maxWidth: 1600
//	    maxHeight: 1066
//	    aspectRatio: 1.5
//	    quality: 85
func LoadSpecsFile(path string) (model.ImageSpecs, error) {
	specs := DefaultSpecs()
	if path == "" {
		return specs, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading image specs %q: %w", path, err)
	}

	var f specsFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing image specs %q: %w", path, err)
	}
	for _, s := range f.Specs {
		if s.Name == "" {
			return nil, fmt.Errorf("image specs %q: every spec needs a name", path)
		}
		if err := s.Validate(); err != nil {
			return nil, err
		}
		specs[s.Name] = s
	}
	return specs, nil
}
