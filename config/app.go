package config

import "os"

// App holds process-wide settings read once at startup and injected into the
// components that need them.
type App struct {
	Port        string
	FrontendURL string

	GoogleClientID     string
	GoogleClientSecret string
	OAuthRedirectURL   string

	// LLMProvider selects the chat backend: "mistral" (default) or "vertex".
	LLMProvider string

	MistralAPIKey  string
	MistralBaseURL string
	MistralModel   string

	VertexProjectID string
	VertexLocation  string
	VertexModel     string
}

func Load() App {
	return App{
		Port:        getenv("PORT", "8080"),
		FrontendURL: getenv("FRONTEND_URL", "http://localhost:3000"),

		GoogleClientID:     os.Getenv("GOOGLE_CLIENT_ID"),
		GoogleClientSecret: os.Getenv("GOOGLE_CLIENT_SECRET"),
		OAuthRedirectURL:   getenv("OAUTH_REDIRECT_URL", "http://localhost:8080/api/auth/google"),

		LLMProvider: getenv("LLM_PROVIDER", "mistral"),

		MistralAPIKey:  os.Getenv("MISTRAL_API_KEY"),
		MistralBaseURL: getenv("MISTRAL_BASE_URL", "https://api.mistral.ai/v1"),
		MistralModel:   getenv("MISTRAL_MODEL", "mistral-small"),

		VertexProjectID: os.Getenv("VERTEX_PROJECT_ID"),
		VertexLocation:  getenv("VERTEX_LOCATION", "us-central1"),
		VertexModel:     getenv("VERTEX_MODEL", "gemini-1.5-flash"),
	}
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
