// Package locale holds the per-language assistant configuration.
package locale

import "fmt"

// Language identifies one of the supported assistant locales.
type Language string

const (
	English  Language = "english"
	Filipino Language = "filipino"
	Taglish  Language = "taglish"
)

// Config bundles the language-dependent texts the assistant runs with.
type Config struct {
	SystemPrompt   string
	Welcome        string
	QuickQuestions []string
	Placeholder    string
}

// All returns the supported languages in display order.
func All() []Language {
	return []Language{English, Filipino, Taglish}
}

// Valid reports whether lang is a supported language key.
func Valid(lang Language) bool {
	_, ok := configs[lang]
	return ok
}

// ConfigFor returns the configuration for lang. The key space is closed and
// controlled by the UI's own selector; an unknown key is a programming error
// and panics.
func ConfigFor(lang Language) Config {
	cfg, ok := configs[lang]
	if !ok {
		panic(fmt.Sprintf("locale: unknown language %q", lang))
	}
	return cfg
}

const basePrompt = `You are an expert avocado farming assistant called AvoCare Assistant. Provide helpful, accurate, and practical advice about avocado cultivation, pest management, disease identification, fertilization, irrigation, harvesting, and post-harvest handling.

Keep responses concise but informative (2-4 paragraphs maximum). Use a friendly, professional tone.

When discussing diseases or pests, provide:
1. Clear identification characteristics
2. Practical treatment options
3. Prevention strategies

If asked about topics outside of avocado farming, politely redirect the conversation back to avocado cultivation and care.`

var configs = map[Language]Config{
	English: {
		SystemPrompt: basePrompt + "\n\nAlways respond in English.",
		Welcome:      "Hello! I'm your AvoCare Assistant. Ask me anything about avocado farming - diseases, pests, fertilization, irrigation, or harvesting.",
		QuickQuestions: []string{
			"How do I identify root rot?",
			"Best fertilizer for avocados?",
			"When to harvest avocados?",
			"Common avocado pests?",
			"How to prevent anthracnose?",
			"Watering schedule for avocados?",
			"Best soil pH for avocados?",
		},
		Placeholder: "Ask about avocado farming...",
	},
	Filipino: {
		SystemPrompt: basePrompt + "\n\nAlways respond in Filipino (Tagalog).",
		Welcome:      "Kumusta! Ako ang iyong AvoCare Assistant. Magtanong tungkol sa pagtatanim ng abokado - sakit, peste, pataba, patubig, o pag-aani.",
		QuickQuestions: []string{
			"Paano makikilala ang root rot?",
			"Anong pataba ang mainam sa abokado?",
			"Kailan aanihin ang abokado?",
			"Anong mga karaniwang peste ng abokado?",
			"Paano maiiwasan ang anthracnose?",
			"Gaano kadalas diligan ang abokado?",
			"Anong pH ng lupa ang bagay sa abokado?",
		},
		Placeholder: "Magtanong tungkol sa abokado...",
	},
	Taglish: {
		SystemPrompt: basePrompt + "\n\nRespond in Taglish (a natural mix of Tagalog and English, the way Filipino farmers casually speak).",
		Welcome:      "Hi! Ako ang AvoCare Assistant mo. Tanong ka lang about avocado farming - diseases, pests, fertilizer, watering, o harvesting.",
		QuickQuestions: []string{
			"Paano i-identify ang root rot?",
			"Anong best fertilizer para sa avocado?",
			"Kailan best mag-harvest ng avocado?",
			"Anong common pests ng avocado?",
			"Paano i-prevent ang anthracnose?",
			"Gaano kadalas mag-water ng avocado?",
			"Anong soil pH ang okay sa avocado?",
		},
		Placeholder: "Tanong ka lang about avocado farming...",
	},
}
