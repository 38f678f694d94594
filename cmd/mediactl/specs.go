package main

import (
	"fmt"
	"io"
	"sort"

	"github.com/dustin/go-humanize"
	"github.com/fhuszti/portfolio-medias-go/internal/model"
	"github.com/fhuszti/portfolio-medias-go/internal/optimiser"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var specsCmd = &cobra.Command{
	Use:   "specs",
	Short: "Print the effective image specs as YAML",
	Long: `Print the built-in image specs merged with IMAGE_SPECS_FILE.
The output can be used as a starting point for a specs file.`,
	RunE: runSpecs,
}

func runSpecs(cmd *cobra.Command, args []string) error {
	specs, err := optimiser.LoadSpecsFile(cfg.ImageSpecsFile)
	if err != nil {
		return err
	}
	if err := writeSpecs(cmd.OutOrStdout(), specs); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "uploads are capped at %s\n", humanize.IBytes(uint64(cfg.MaxUploadBytes)))
	return nil
}

func writeSpecs(w io.Writer, specs model.ImageSpecs) error {
	names := make([]string, 0, len(specs))
	for name := range specs {
		names = append(names, name)
	}
	sort.Strings(names)

	doc := struct {
		Specs []model.ImageSpec `yaml:"specs"`
	}{}
	for _, name := range names {
		doc.Specs = append(doc.Specs, specs[name])
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return err
	}
	return enc.Close()
}
