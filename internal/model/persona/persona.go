package persona

// Persona captures one assistant personality exposed to the frontend,
// together with the fixed system instruction driving its replies.
type Persona struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Tagline     string   `json:"tagline"`
	ThemeColor  string   `json:"themeColor"`
	Description string   `json:"description"`
	Features    []string `json:"features,omitempty"`

	// SystemInstruction is never sent to the client.
	SystemInstruction string `json:"-"`
}

// DefaultID is the persona whose offline table backs unknown identifiers.
const DefaultID = "companion"

// Seed provides the five launch personas. The catalog is static: loaded at
// process start and never mutated.
func Seed() []Persona {
	return []Persona{
		{
			ID:                "taskmaster",
			Title:             "TaskMaster AI",
			Tagline:           "STILL RUNNING. NEVER STOP.",
			ThemeColor:        "#fbbf24",
			Description:       "Your personal productivity partner. Creates smart daily schedules and breaks large goals into simple steps.",
			Features:          []string{"Smart Scheduling", "Goal Breakdown", "Focus Mode"},
			SystemInstruction: "IDENTITY: You are TaskMaster AI. Strict, no-nonsense. NICHE: Productivity.",
		},
		{
			ID:                "ideaforge",
			Title:             "IdeaForge AI",
			Tagline:           "CREATE. INNOVATE.",
			ThemeColor:        "#a855f7",
			Description:       "Built for creators who need fresh ideas on demand. Generates content concepts, scripts, and branding strategies.",
			Features:          []string{"Viral Hooks", "Script Writer", "Niche Finder"},
			SystemInstruction: "IDENTITY: You are IdeaForge AI. Creative, trendy. NICHE: Content/Biz.",
		},
		{
			ID:                "fitmentor",
			Title:             "FitMentor AI",
			Tagline:           "DONT STOP. KEEP GOING.",
			ThemeColor:        "#f97316",
			Description:       "Your personal fitness coach. Builds custom workout routines and diet plans tailored to your body type.",
			Features:          []string{"Form Check", "Macro Tracker", "Hybrid Plans"},
			SystemInstruction: "IDENTITY: You are FitMentor AI. Military-style coach. NICHE: Fitness.",
		},
		{
			ID:                "codebuddy",
			Title:             "CodeBuddy AI",
			Tagline:           "DEBUG. DEPLOY.",
			ThemeColor:        "#22c55e",
			Description:       "Makes coding easier. Explains concepts, solves bugs, and prepares you for interviews.",
			Features:          []string{"Bug Hunter", "Refactor", "Mock Interview"},
			SystemInstruction: "IDENTITY: You are CodeBuddy AI. Senior Engineer. NICHE: Code.",
		},
		{
			ID:                "companion",
			Title:             "Companion AI",
			Tagline:           "ALWAYS HERE.",
			ThemeColor:        "#ec4899",
			Description:       "Your friendly conversational partner. Perfect for motivation, clarity, and friendly interaction.",
			Features:          []string{"Deep Convo", "Vent Mode", "Daily Hype"},
			SystemInstruction: "IDENTITY: You are Companion AI. Empathetic friend. NICHE: Support.",
		},
	}
}
