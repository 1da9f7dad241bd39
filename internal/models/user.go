package models

import "time"

// User is created on first Google login and enriched by onboarding.
// Optional profile fields feed the personalized system prompt.
type User struct {
	ID      string  `bson:"id" json:"id"` // uuid v4
	Email   string  `bson:"email" json:"email"`
	Name    string  `bson:"name" json:"name"`
	Picture *string `bson:"picture,omitempty" json:"picture,omitempty"`

	Age                  *string `bson:"age,omitempty" json:"age,omitempty"` // stored as entered, parsed on use
	ZodiacSign           *string `bson:"zodiac_sign,omitempty" json:"zodiac_sign,omitempty"`
	Profession           *string `bson:"profession,omitempty" json:"profession,omitempty"`
	PersonalityType      *string `bson:"personality_type,omitempty" json:"personality_type,omitempty"` // MBTI code
	PersonalityArchetype *string `bson:"personality_archetype,omitempty" json:"personality_archetype,omitempty"`

	OnboardingCompleted bool `bson:"onboarding_completed" json:"onboarding_completed"`

	SessionToken *string `bson:"session_token,omitempty" json:"-"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
