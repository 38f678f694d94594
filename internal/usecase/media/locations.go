package media

import (
	"fmt"
	"path"
	"regexp"
	"strings"
)

const (
	// PublicPrefix is the URL prefix under which the primary tree is served.
	PublicPrefix = "/uploads"
	InterimDir   = "interim"
	ProjectsDir  = "projects"
)

var projectIDPattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_-]{0,127}$`)

// ValidProjectID reports whether id can safely name a project directory.
// The empty id is valid and means the interim directory.
func ValidProjectID(id string) bool {
	return id == "" || projectIDPattern.MatchString(id)
}

// ProjectDir returns the tree-relative directory of a project, or the interim
// directory when project is empty. Both the primary and mirror trees share it.
func ProjectDir(project string) (string, error) {
	if project == "" {
		return InterimDir, nil
	}
	if !ValidProjectID(project) {
		return "", fmt.Errorf("%w: invalid project id %q", ErrValidation, project)
	}
	return path.Join(ProjectsDir, project), nil
}

// FileKey returns the tree-relative key of filename inside project's directory.
func FileKey(project, filename string) (string, error) {
	dir, err := ProjectDir(project)
	if err != nil {
		return "", err
	}
	if filename == "" || filename != path.Base(filename) || strings.HasPrefix(filename, ".") {
		return "", fmt.Errorf("%w: invalid filename %q", ErrValidation, filename)
	}
	return path.Join(dir, filename), nil
}

// PublicPath converts a tree-relative key to the public URL-style path.
func PublicPath(key string) string {
	return PublicPrefix + "/" + key
}

// KeyFromPublicPath is the inverse of PublicPath. It rejects paths that
// escape the uploads tree.
func KeyFromPublicPath(p string) (string, error) {
	rest, ok := strings.CutPrefix(p, PublicPrefix+"/")
	if !ok {
		return "", fmt.Errorf("%w: path %q is not under %s", ErrValidation, p, PublicPrefix)
	}
	key := path.Clean(rest)
	if key != rest || key == "." || strings.HasPrefix(key, "../") || key == ".." {
		return "", fmt.Errorf("%w: path %q is not canonical", ErrValidation, p)
	}
	return key, nil
}

// KeyBelongsTo reports whether key lives directly in project's directory.
func KeyBelongsTo(key, project string) bool {
	dir, err := ProjectDir(project)
	if err != nil {
		return false
	}
	return path.Dir(key) == dir
}
