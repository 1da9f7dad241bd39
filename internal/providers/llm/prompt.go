package llm

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/vimukti/vimukti-api/internal/models"
)

const baseTherapeuticPrompt = `You are an emotionally intelligent AI therapist equipped with multiple evidence-based psychological methodologies. Your primary role is to provide supportive, therapeutic conversations using specific psychological frameworks while maintaining appropriate boundaries. You implement the following psychological approaches based on user needs:

Core Psychological Methods Implementation
- Cognitive Behavioral Therapy (CBT) - Identify and challenge negative thought patterns, automatic thoughts, and cognitive distortions
- Dialectical Behavior Therapy (DBT) - Apply mindfulness, distress tolerance, emotion regulation, and interpersonal effectiveness
- Mindfulness-Based Cognitive Therapy (MBCT) - Integrate mindfulness practices with cognitive awareness
- Solution-Focused Brief Therapy (SFBT) - Focus on strengths, resources, and solutions
- Motivational Interviewing - Use reflective listening and collaborative goal-setting`

const closingDirective = `
THERAPEUTIC BOUNDARIES: Never provide clinical diagnoses, suggest professional consultation when appropriate, maintain confidentiality, avoid medical advice, recognize AI limitations, provide crisis resources when needed.

Adapt your response style to this user's unique profile while maintaining therapeutic effectiveness and authenticity.`

var zodiacTraits = map[string]string{
	"Aries":       "Direct, energetic communication; appreciate quick, actionable advice",
	"Taurus":      "Practical, steady approach; prefer detailed, reliable guidance",
	"Gemini":      "Witty, versatile conversations; enjoy variety and intellectual engagement",
	"Cancer":      "Empathetic, nurturing tone; focus on emotional validation and security",
	"Leo":         "Warm, encouraging responses; appreciate recognition and positive reinforcement",
	"Virgo":       "Detailed, helpful responses; prefer systematic, analytical approaches",
	"Libra":       "Balanced, harmonious communication; focus on relationship and fairness themes",
	"Scorpio":     "Deep, intense conversations; comfortable with emotional depth and transformation",
	"Sagittarius": "Optimistic, philosophical discussions; enjoy growth and adventure themes",
	"Capricorn":   "Goal-oriented, practical advice; appreciate structure and achievement focus",
	"Aquarius":    "Innovative, humanitarian perspective; enjoy unique insights and social themes",
	"Pisces":      "Compassionate, intuitive responses; comfortable with emotions and creativity",
}

const zodiacFallback = "Balanced approach"

var mbtiGuidance = map[rune]string{
	'E': "Engage socially, discuss relationships and external processing",
	'I': "Respect need for reflection, allow processing time",
	'S': "Focus on practical, concrete details and present realities",
	'N': "Explore patterns, possibilities, and future potential",
	'T': "Use logical structure, objective analysis",
	'F': "Consider values, emotions, and impact on people",
	'J': "Provide structure, clear steps, and organized approaches",
	'P': "Stay flexible, explore options, adapt as needed",
}

// BuildSystemPrompt combines the fixed therapeutic base prompt with a
// personalization block derived from the user's profile. It is pure and
// deterministic; absent profile fields are simply omitted. The
// personalization header is emitted even when no dimension is present.
func BuildSystemPrompt(u *models.User) string {
	var b strings.Builder
	b.WriteString(baseTherapeuticPrompt)
	b.WriteString("\n\nUSER PROFILE PERSONALIZATION:\n")

	if u.Age != nil {
		if line := ageDirective(*u.Age); line != "" {
			b.WriteString(line)
		}
	}

	if u.ZodiacSign != nil {
		trait, ok := zodiacTraits[*u.ZodiacSign]
		if !ok {
			trait = zodiacFallback
		}
		fmt.Fprintf(&b, "- Zodiac (%s): %s\n", *u.ZodiacSign, trait)
	}

	if u.Profession != nil {
		fmt.Fprintf(&b, "- Professional Context (%s): Adapt language and examples to their work environment and industry challenges\n", *u.Profession)
	}

	if u.PersonalityType != nil {
		if joined := mbtiDirectives(*u.PersonalityType); joined != "" {
			fmt.Fprintf(&b, "- Personality Type (%s): %s\n", *u.PersonalityType, joined)
		}
	}

	b.WriteString(closingDirective)
	return b.String()
}

func ageDirective(raw string) string {
	age, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return ""
	}
	switch {
	case age < 25:
		return "- Age Group: Gen Z/Young Adult - Use casual, supportive language with modern references and emoji when appropriate\n"
	case age < 40:
		return "- Age Group: Millennial - Balance casual and professional tone, relate to work-life balance challenges\n"
	case age < 55:
		return "- Age Group: Gen X - Use professional, straightforward communication with practical focus\n"
	default:
		return "- Age Group: Boomer+ - Use respectful, detailed explanations with formal but warm tone\n"
	}
}

// mbtiDirectives joins the guidance for each recognized letter in the order
// the letters appear in the code. Unrecognized letters are skipped.
func mbtiDirectives(code string) string {
	var parts []string
	for _, letter := range code {
		if g, ok := mbtiGuidance[letter]; ok {
			parts = append(parts, g)
		}
	}
	return strings.Join(parts, "; ")
}
