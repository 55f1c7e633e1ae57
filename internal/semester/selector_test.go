package semester

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"teachfolio/internal/content"
)

func testCatalog(t *testing.T) *Catalog {
	t.Helper()
	c, err := NewCatalog([]content.Semester{
		{Key: "1/2568", Label: "Semester 1", TeachingProjectURL: "docs/tp.pdf",
			LessonPlans: []content.LessonPlan{{ID: "a"}}},
		{Key: "2/2568", Label: "Semester 2",
			LessonPlans: []content.LessonPlan{{ID: "b"}, {ID: "c"}}},
	})
	require.NoError(t, err)
	return c
}

func TestCatalog(t *testing.T) {
	c := testCatalog(t)
	assert.Equal(t, []string{"1/2568", "2/2568"}, c.Keys())
	assert.Equal(t, 2, c.Len())

	s, ok := c.Lookup("2/2568")
	require.True(t, ok)
	assert.Equal(t, "Semester 2", s.Label)

	_, ok = c.Lookup("3/2568")
	assert.False(t, ok)
}

func TestNewCatalog_Rejects(t *testing.T) {
	_, err := NewCatalog(nil)
	assert.ErrorIs(t, err, content.ErrNoSemesters)

	_, err = NewCatalog([]content.Semester{{Key: ""}})
	assert.Error(t, err)

	_, err = NewCatalog([]content.Semester{{Key: "a"}, {Key: "a"}})
	assert.Error(t, err)
}

func TestSelector_SwapsBundle(t *testing.T) {
	sel, err := NewSelector(testCatalog(t), "1/2568")
	require.NoError(t, err)
	assert.Equal(t, "docs/tp.pdf", sel.Current().TeachingProjectURL)
	assert.Len(t, sel.Current().LessonPlans, 1)

	require.NoError(t, sel.Select("2/2568"))
	assert.Equal(t, "2/2568", sel.Key())
	assert.Empty(t, sel.Current().TeachingProjectURL)
	assert.Len(t, sel.Current().LessonPlans, 2)
}

// Selecting a key outside the catalog is a caller error. The selector
// reports it and keeps its selection; callers must not rely on any other
// behavior.
func TestSelector_UnknownKeyIsRejected(t *testing.T) {
	_, err := NewSelector(testCatalog(t), "9/9999")
	assert.ErrorIs(t, err, ErrUnknownSemester)

	sel, err := NewSelector(testCatalog(t), "2/2568")
	require.NoError(t, err)
	assert.ErrorIs(t, sel.Select("nope"), ErrUnknownSemester)
	assert.Equal(t, "2/2568", sel.Key())

	assert.ErrorIs(t, sel.SelectIndex(5), ErrUnknownSemester)
	assert.ErrorIs(t, sel.SelectIndex(-1), ErrUnknownSemester)
}

func TestSelector_Cycle(t *testing.T) {
	sel, err := NewSelector(testCatalog(t), "1/2568")
	require.NoError(t, err)

	sel.Next()
	assert.Equal(t, "2/2568", sel.Key())
	sel.Next()
	assert.Equal(t, "1/2568", sel.Key())
	sel.Prev()
	assert.Equal(t, "2/2568", sel.Key())
	assert.Equal(t, 1, sel.Position())

	require.NoError(t, sel.SelectIndex(0))
	assert.Equal(t, "1/2568", sel.Key())
}
