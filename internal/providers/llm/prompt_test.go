package llm

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vimukti/vimukti-api/internal/models"
)

func userWith(mutate func(*models.User)) *models.User {
	u := &models.User{ID: "user-1", Email: "mira@example.com", Name: "Mira"}
	if mutate != nil {
		mutate(u)
	}
	return u
}

func strPtr(s string) *string { return &s }

func TestBuildSystemPromptEmptyProfile(t *testing.T) {
	u := userWith(nil)

	first := BuildSystemPrompt(u)
	second := BuildSystemPrompt(u)
	assert.Equal(t, first, second, "prompt must be byte-stable across calls")

	// base prompt, then the (empty) personalization block, then the closing
	// directive, nothing else
	assert.Equal(t, baseTherapeuticPrompt+"\n\nUSER PROFILE PERSONALIZATION:\n"+closingDirective, first)
}

func TestBuildSystemPromptAgeBands(t *testing.T) {
	tests := []struct {
		age  string
		want string
	}{
		{"18", "Gen Z/Young Adult"},
		{"24", "Gen Z/Young Adult"},
		{"25", "Millennial"},
		{"30", "Millennial"},
		{"39", "Millennial"},
		{"40", "Gen X"},
		{"54", "Gen X"},
		{"55", "Boomer+"},
		{"81", "Boomer+"},
	}

	for _, tt := range tests {
		t.Run(tt.age, func(t *testing.T) {
			got := BuildSystemPrompt(userWith(func(u *models.User) { u.Age = strPtr(tt.age) }))
			assert.Contains(t, got, "- Age Group: "+tt.want)

			// exactly one band line
			assert.Equal(t, 1, strings.Count(got, "- Age Group:"))
		})
	}
}

func TestBuildSystemPromptAge30IsMillennial(t *testing.T) {
	got := BuildSystemPrompt(userWith(func(u *models.User) { u.Age = strPtr("30") }))
	assert.Contains(t, got, "- Age Group: Millennial - Balance casual and professional tone, relate to work-life balance challenges")
	assert.NotContains(t, got, "Gen Z")
	assert.NotContains(t, got, "Gen X")
	assert.NotContains(t, got, "Boomer+")
}

func TestBuildSystemPromptUnparseableAgeSkipped(t *testing.T) {
	got := BuildSystemPrompt(userWith(func(u *models.User) { u.Age = strPtr("thirty") }))
	assert.NotContains(t, got, "- Age Group:")
}

func TestBuildSystemPromptZodiac(t *testing.T) {
	got := BuildSystemPrompt(userWith(func(u *models.User) { u.ZodiacSign = strPtr("Leo") }))
	assert.Contains(t, got, "- Zodiac (Leo): Warm, encouraging responses; appreciate recognition and positive reinforcement")

	unknown := BuildSystemPrompt(userWith(func(u *models.User) { u.ZodiacSign = strPtr("Atlantis") }))
	assert.Contains(t, unknown, "- Zodiac (Atlantis): Balanced approach")
}

func TestBuildSystemPromptProfessionVerbatim(t *testing.T) {
	got := BuildSystemPrompt(userWith(func(u *models.User) { u.Profession = strPtr("marine biologist") }))
	assert.Contains(t, got, "- Professional Context (marine biologist): Adapt language and examples")
}

func TestBuildSystemPromptMBTIOrder(t *testing.T) {
	got := BuildSystemPrompt(userWith(func(u *models.User) { u.PersonalityType = strPtr("ENFP") }))

	require.Contains(t, got, "- Personality Type (ENFP): ")
	line := got[strings.Index(got, "- Personality Type (ENFP): "):]
	line = line[:strings.Index(line, "\n")]

	e := strings.Index(line, mbtiGuidance['E'])
	n := strings.Index(line, mbtiGuidance['N'])
	f := strings.Index(line, mbtiGuidance['F'])
	p := strings.Index(line, mbtiGuidance['P'])
	require.True(t, e >= 0 && n >= 0 && f >= 0 && p >= 0)
	assert.True(t, e < n && n < f && f < p, "directives must follow letter order")

	// no other axis leaks in
	assert.NotContains(t, line, mbtiGuidance['I'])
	assert.NotContains(t, line, mbtiGuidance['S'])
	assert.NotContains(t, line, mbtiGuidance['T'])
	assert.NotContains(t, line, mbtiGuidance['J'])
}

func TestBuildSystemPromptMBTIUnrecognizedLetters(t *testing.T) {
	mixed := BuildSystemPrompt(userWith(func(u *models.User) { u.PersonalityType = strPtr("EXF") }))
	assert.Contains(t, mixed, mbtiGuidance['E']+"; "+mbtiGuidance['F'])

	none := BuildSystemPrompt(userWith(func(u *models.User) { u.PersonalityType = strPtr("XYZ") }))
	assert.NotContains(t, none, "- Personality Type")
}

func TestBuildSystemPromptAllDimensions(t *testing.T) {
	got := BuildSystemPrompt(userWith(func(u *models.User) {
		u.Age = strPtr("30")
		u.ZodiacSign = strPtr("Virgo")
		u.Profession = strPtr("engineer")
		u.PersonalityType = strPtr("INTJ")
	}))

	ageIdx := strings.Index(got, "- Age Group:")
	zodiacIdx := strings.Index(got, "- Zodiac (")
	profIdx := strings.Index(got, "- Professional Context (")
	mbtiIdx := strings.Index(got, "- Personality Type (")
	require.True(t, ageIdx >= 0 && zodiacIdx >= 0 && profIdx >= 0 && mbtiIdx >= 0)
	assert.True(t, ageIdx < zodiacIdx && zodiacIdx < profIdx && profIdx < mbtiIdx,
		"dimensions must appear in fixed order")

	assert.True(t, strings.HasPrefix(got, baseTherapeuticPrompt))
	assert.True(t, strings.HasSuffix(got, closingDirective))
}
