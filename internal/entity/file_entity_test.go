package entity

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFileStartsAtVersionOne(t *testing.T) {
	owner := uuid.New()
	original := Content{"title": "NDA", "clauses": []interface{}{"term", "liability"}}

	f := NewFile(owner, "nda.json", original, "short summary", nil, nil)

	assert.Equal(t, owner, f.UserId)
	assert.Equal(t, 1, f.VersionCount())
	assert.Equal(t, []int{1}, f.VersionNumbers())

	v, err := f.Version(1)
	require.NoError(t, err)
	assert.Equal(t, original, v.Data)
	assert.Equal(t, "short summary", v.Summary)
	assert.Nil(t, v.Overview)
}

func TestAppendVersionNumbersAreDense(t *testing.T) {
	f := NewFile(uuid.New(), "c.json", Content{"v": 1}, nil, nil, nil)

	assert.Equal(t, 2, f.AppendVersion(Content{"v": 2}, nil, nil, nil))
	assert.Equal(t, 3, f.AppendVersion(Content{"v": 3}, nil, nil, nil))
	assert.Equal(t, 4, f.AppendVersion(Content{"v": 4}, nil, nil, nil))

	assert.Equal(t, []int{1, 2, 3, 4}, f.VersionNumbers())
	assert.Equal(t, 4, f.VersionCount())
}

func TestAppendVersionDoesNotTouchOriginal(t *testing.T) {
	original := Content{"body": "original text"}
	f := NewFile(uuid.New(), "c.json", original, nil, nil, nil)

	f.AppendVersion(Content{"body": "edited text"}, nil, nil, nil)

	v1, err := f.Version(1)
	require.NoError(t, err)
	assert.Equal(t, "original text", v1.Data["body"])

	v2, err := f.Version(2)
	require.NoError(t, err)
	assert.Equal(t, "edited text", v2.Data["body"])
}

func TestAnnotationSuppliedWins(t *testing.T) {
	f := NewFile(uuid.New(), "c.json", Content{}, "s1", "o1", nil)

	f.AppendVersion(Content{}, "s2", "o2", "r2")

	v, err := f.Version(2)
	require.NoError(t, err)
	assert.Equal(t, "s2", v.Summary)
	assert.Equal(t, "o2", v.Overview)
	assert.Equal(t, "r2", v.Recommendations)
}

func TestAnnotationCarriesForwardWhenOmitted(t *testing.T) {
	f := NewFile(uuid.New(), "c.json", Content{}, "s1", nil, nil)

	f.AppendVersion(Content{}, nil, nil, nil)

	v, err := f.Version(2)
	require.NoError(t, err)
	assert.Equal(t, "s1", v.Summary, "omitted summary should inherit the prior version's value")
	assert.Nil(t, v.Overview, "nothing to inherit stays null")
}

func TestAnnotationCarryForwardChains(t *testing.T) {
	f := NewFile(uuid.New(), "c.json", Content{}, "s1", nil, nil)

	f.AppendVersion(Content{}, nil, nil, nil)          // v2 inherits s1
	f.AppendVersion(Content{}, "s3", nil, nil)         // v3 supplies s3
	f.AppendVersion(Content{}, nil, nil, nil)          // v4 inherits s3

	v2, _ := f.Version(2)
	v3, _ := f.Version(3)
	v4, _ := f.Version(4)
	assert.Equal(t, "s1", v2.Summary)
	assert.Equal(t, "s3", v3.Summary)
	assert.Equal(t, "s3", v4.Summary)
}

func TestVersionNotFound(t *testing.T) {
	f := NewFile(uuid.New(), "c.json", Content{}, nil, nil, nil)

	_, err := f.Version(2)
	assert.ErrorIs(t, err, ErrVersionNotFound)

	_, err = f.Version(99)
	assert.ErrorIs(t, err, ErrVersionNotFound)
}

func TestLatestVersion(t *testing.T) {
	f := NewFile(uuid.New(), "c.json", Content{"v": 1}, nil, nil, nil)

	// With no edits, latest is the original.
	latest := f.LatestVersion()
	assert.Equal(t, 1, latest.Number)

	f.AppendVersion(Content{"v": 2}, nil, nil, nil)
	f.AppendVersion(Content{"v": 3}, nil, nil, nil)

	latest = f.LatestVersion()
	assert.Equal(t, 3, latest.Number)
	assert.Equal(t, 3, latest.Data["v"])

	// Calling it again does not mutate anything.
	again := f.LatestVersion()
	assert.Equal(t, latest.Number, again.Number)
	assert.Equal(t, []int{1, 2, 3}, f.VersionNumbers())
}

func TestNextVersionWithSparseMap(t *testing.T) {
	// Maps loaded from storage may start above 2 if older rows were
	// written by earlier releases; the next number still follows the max.
	f := &File{
		OriginalVersion: Content{},
		EditVersions:    map[int]Content{5: {}},
		Summary:         map[int]interface{}{},
		Overview:        map[int]interface{}{},
		Recommendations: map[int]interface{}{},
	}
	assert.Equal(t, 6, f.NextVersion())
}
