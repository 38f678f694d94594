// Package integrity cross-checks the references that projects hold to the
// other portfolio catalogs.
package integrity

import (
	"fmt"

	"github.com/fhuszti/portfolio-medias-go/internal/model"
)

type Project struct {
	ID       string   `json:"id"`
	Title    string   `json:"title"`
	TypeIDs  []string `json:"typeIds"`
	ToolIDs  []string `json:"toolIds"`
	TagIDs   []string `json:"tagIds"`
	MediaIDs []string `json:"mediaIds"`
	LinkIDs  []string `json:"linkIds"`
}

// Entry is the common shape of the types, skills, tags and links catalogs.
type Entry struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Catalogs is a snapshot of every catalog the validator reads.
type Catalogs struct {
	Projects []Project
	Types    []Entry
	Skills   []Entry
	Tags     []Entry
	Links    []Entry
	Media    []model.MediaAsset
}

type reference struct {
	kind string
	ids  func(Project) []string
	all  []string
}

func (c Catalogs) references() []reference {
	return []reference{
		{"type", func(p Project) []string { return p.TypeIDs }, entryIDs(c.Types)},
		{"skill", func(p Project) []string { return p.ToolIDs }, entryIDs(c.Skills)},
		{"tag", func(p Project) []string { return p.TagIDs }, entryIDs(c.Tags)},
		{"media", func(p Project) []string { return p.MediaIDs }, mediaIDs(c.Media)},
		{"link", func(p Project) []string { return p.LinkIDs }, entryIDs(c.Links)},
	}
}

// Validate reports one error per dangling project reference and one warning
// per catalog entry that no project references. It reads only.
func Validate(c Catalogs) model.Report {
	report := model.NewReport()
	refs := c.references()

	for _, p := range c.Projects {
		for _, r := range refs {
			known := toSet(r.all)
			for _, id := range r.ids(p) {
				if !known[id] {
					report.AddError(fmt.Sprintf("project %q references missing %s %q", p.ID, r.kind, id))
				}
			}
		}
	}

	for _, r := range refs {
		used := map[string]bool{}
		for _, p := range c.Projects {
			for _, id := range r.ids(p) {
				used[id] = true
			}
		}
		for _, id := range r.all {
			if !used[id] {
				report.AddWarning(fmt.Sprintf("unused %s %q", r.kind, id))
			}
		}
	}
	return report
}

func entryIDs(entries []Entry) []string {
	ids := make([]string, 0, len(entries))
	for _, e := range entries {
		ids = append(ids, e.ID)
	}
	return ids
}

func mediaIDs(assets []model.MediaAsset) []string {
	ids := make([]string, 0, len(assets))
	for _, a := range assets {
		ids = append(ids, a.ID)
	}
	return ids
}

func toSet(ids []string) map[string]bool {
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}
