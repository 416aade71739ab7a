package survey

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroupSectionsFixedOrder(t *testing.T) {
	// Field list deliberately interleaved, Feedback first, the way a
	// reorder of raw sort_order values could leave it.
	fields := []FieldDefinition{
		TextField(SectionFeedback, "suggestions", "Suggestions", false, true),
		TextField(SectionPersonal, "age", "Age", true, false),
		TextField(SectionSatisfaction, "serviceNote", "Note", false, false),
		TextField(SectionPersonal, "region", "Region", true, false),
		TextField(SectionCCAwareness, "ccAwareness", "CC awareness", true, false),
	}

	sections := GroupSections(fields)
	require.Len(t, sections, 4)

	names := make([]string, len(sections))
	for i, s := range sections {
		names[i] = s.Name
	}
	assert.Equal(t, []string{SectionPersonal, SectionCCAwareness, SectionSatisfaction, SectionFeedback}, names)

	// Relative field order inside a section follows the field list.
	require.Len(t, sections[0].Fields, 2)
	assert.Equal(t, "age", sections[0].Fields[0].Name)
	assert.Equal(t, "region", sections[0].Fields[1].Name)
}

func TestGroupSectionsUnknownSectionLast(t *testing.T) {
	fields := []FieldDefinition{
		TextField("Custom Section", "extra", "Extra", false, false),
		TextField(SectionPersonal, "age", "Age", true, false),
	}

	sections := GroupSections(fields)
	require.Len(t, sections, 2)
	assert.Equal(t, SectionPersonal, sections[0].Name)
	assert.Equal(t, "Custom Section", sections[1].Name)
}

func TestGroupSectionsDefaultSchema(t *testing.T) {
	sections := GroupSections(DefaultFields())
	for i := 1; i < len(sections); i++ {
		assert.LessOrEqual(t, SectionOrder(sections[i-1].Name), SectionOrder(sections[i].Name))
	}
}
