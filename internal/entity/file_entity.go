// Versioned document entity. Version 1 is the immutable original; edits
// live in an append-only integer-keyed map. Annotation maps (summary,
// overview, recommendations) are kept in lockstep with the versions.
package entity

import (
	"errors"
	"sort"
	"time"

	"github.com/google/uuid"
)

var ErrVersionNotFound = errors.New("version not found")

// Content is one version's document payload, stored as JSONB.
type Content = map[string]interface{}

type File struct {
	Id              uuid.UUID
	Name            string
	UserId          uuid.UUID
	OriginalVersion Content // version 1, immutable once set
	EditVersions    map[int]Content
	Summary         map[int]interface{}
	Overview        map[int]interface{}
	Recommendations map[int]interface{}
	Analysis        *string // unversioned, overwritten by the latest analysis
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// FileVersion is a resolved view of one version with its annotations.
type FileVersion struct {
	Number          int
	Data            Content
	Summary         interface{}
	Overview        interface{}
	Recommendations interface{}
}

// NewFile creates a file at version 1. Initial annotations, when given,
// are stored under key 1; omitted ones leave the map empty.
func NewFile(owner uuid.UUID, name string, original Content, summary, overview, recommendations interface{}) *File {
	f := &File{
		Id:              uuid.New(),
		Name:            name,
		UserId:          owner,
		OriginalVersion: original,
		EditVersions:    map[int]Content{},
		Summary:         map[int]interface{}{},
		Overview:        map[int]interface{}{},
		Recommendations: map[int]interface{}{},
		CreatedAt:       time.Now(),
		UpdatedAt:       time.Now(),
	}
	if summary != nil {
		f.Summary[1] = summary
	}
	if overview != nil {
		f.Overview[1] = overview
	}
	if recommendations != nil {
		f.Recommendations[1] = recommendations
	}
	return f
}

// NextVersion is max(edit version keys)+1, or 2 when no edits exist.
func (f *File) NextVersion() int {
	max := 1
	for v := range f.EditVersions {
		if v > max {
			max = v
		}
	}
	return max + 1
}

// AppendVersion stores content under the next version number and patches
// the annotation maps: a supplied value wins, an omitted one carries the
// prior version's value forward, else null.
func (f *File) AppendVersion(content Content, summary, overview, recommendations interface{}) int {
	next := f.NextVersion()

	if f.EditVersions == nil {
		f.EditVersions = map[int]Content{}
	}
	f.EditVersions[next] = content

	f.Summary = patchAnnotation(f.Summary, next, summary)
	f.Overview = patchAnnotation(f.Overview, next, overview)
	f.Recommendations = patchAnnotation(f.Recommendations, next, recommendations)

	f.UpdatedAt = time.Now()
	return next
}

func patchAnnotation(m map[int]interface{}, version int, supplied interface{}) map[int]interface{} {
	if m == nil {
		m = map[int]interface{}{}
	}
	switch {
	case supplied != nil:
		m[version] = supplied
	case m[version-1] != nil:
		m[version] = m[version-1]
	default:
		m[version] = nil
	}
	return m
}

// Version resolves version n. Version 1 is always the original.
func (f *File) Version(n int) (*FileVersion, error) {
	if n == 1 {
		return &FileVersion{
			Number:          1,
			Data:            f.OriginalVersion,
			Summary:         f.Summary[1],
			Overview:        f.Overview[1],
			Recommendations: f.Recommendations[1],
		}, nil
	}
	content, ok := f.EditVersions[n]
	if !ok {
		return nil, ErrVersionNotFound
	}
	return &FileVersion{
		Number:          n,
		Data:            content,
		Summary:         f.Summary[n],
		Overview:        f.Overview[n],
		Recommendations: f.Recommendations[n],
	}, nil
}

// LatestVersion returns the highest edit version, or version 1 when no
// edits exist.
func (f *File) LatestVersion() *FileVersion {
	latest := 1
	for v := range f.EditVersions {
		if v > latest {
			latest = v
		}
	}
	version, _ := f.Version(latest)
	return version
}

// VersionNumbers lists all available versions (1 plus every edit key) in
// ascending numeric order.
func (f *File) VersionNumbers() []int {
	numbers := []int{1}
	for v := range f.EditVersions {
		numbers = append(numbers, v)
	}
	sort.Ints(numbers)
	return numbers
}

func (f *File) VersionCount() int {
	return 1 + len(f.EditVersions)
}
