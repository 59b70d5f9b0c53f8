package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func grade(v float64) *float64 { return &v }

func TestCourseAverageUndefinedUntilBothPartials(t *testing.T) {
	course := &Course{}
	assert.Nil(t, course.Average())

	course.FirstPartial = grade(6)
	assert.Nil(t, course.Average())

	course.SecondPartial = grade(8)
	require.NotNil(t, course.Average())
	assert.InDelta(t, 7, *course.Average(), 0.001)
}

func TestCourseAveragePrefersMakeups(t *testing.T) {
	course := &Course{
		FirstPartial:  grade(6),
		SecondPartial: grade(8),
		FirstMakeup:   grade(7),
	}
	require.NotNil(t, course.Average())
	assert.InDelta(t, 7.5, *course.Average(), 0.001)

	course.SecondMakeup = grade(10)
	assert.InDelta(t, 8.5, *course.Average(), 0.001)
}

func TestCourseAverageMakeupAloneCounts(t *testing.T) {
	course := &Course{
		FirstMakeup:   grade(4),
		SecondPartial: grade(6),
	}
	require.NotNil(t, course.Average())
	assert.InDelta(t, 5, *course.Average(), 0.001)
}

func TestGradePatchEmpty(t *testing.T) {
	assert.True(t, CourseGradePatch{}.Empty())
	assert.False(t, CourseGradePatch{SecondMakeup: grade(9)}.Empty())
}

func TestValidSubjectStatus(t *testing.T) {
	for _, status := range []SubjectStatus{
		SubjectStatusPending,
		SubjectStatusInProgress,
		SubjectStatusRegularized,
		SubjectStatusAwaitingFinal,
		SubjectStatusApproved,
	} {
		assert.True(t, ValidSubjectStatus(status))
	}
	assert.False(t, ValidSubjectStatus("GRADUATED"))
}
