// Package prompts builds the system prompts and few-shot exchanges sent to
// the chat-completion API. Everything here is deterministic: the few-shot
// set is hardcoded so the validator downstream faces a stable output shape.
package prompts

import (
	"fmt"
	"strings"

	"speedlist-backend/internal/taxonomy"
)

// Message is one chat message in a few-shot exchange.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// LanguageLabel maps a language code to the name used inside prompts.
// Only "el" is recognized; everything else is English.
func LanguageLabel(language string) string {
	if language == "el" {
		return "Greek"
	}
	return "English"
}

// BuildCreateAdSystemPrompt composes the create-ad instruction. grounding is
// an optional free-text block of live marketplace hints; empty means absent.
func BuildCreateAdSystemPrompt(language, grounding string) string {
	lang := LanguageLabel(language)
	var b strings.Builder

	b.WriteString("You are SpeedList, an assistant that turns a user's free-form description of something they want to sell into a structured classified ad.\n\n")
	b.WriteString("Rules:\n")
	b.WriteString("1. Respond with a single JSON object only. No markdown, no code fences, no commentary.\n")
	b.WriteString("2. Never embed HTML in any field.\n")
	fmt.Fprintf(&b, "3. Write every textual field in %s, regardless of the language of the input.\n", lang)
	b.WriteString("4. \"price\" must be a number, or null when no explicit numeric price is stated. Never guess a price.\n")
	b.WriteString("5. Infer \"category\" and \"location\" from context when the user does not state them; leave them as empty strings when there is no basis to infer.\n")
	b.WriteString("6. \"contact_phone\" and \"contact_email\" may be empty strings when not provided.\n")
	b.WriteString("7. \"visits\" is always 0 for a new ad.\n")
	b.WriteString("8. Keep \"description\" under 80 words.\n\n")
	fmt.Fprintf(&b, "Output schema (all textual fields in %s):\n", lang)
	b.WriteString(`{"title": string, "description": string, "category": string, "location": string, "price": number|null, "contact_phone": string, "contact_email": string, "visits": 0}`)
	b.WriteString("\n")

	if sample := taxonomy.PromptSample(6, 3); sample != "" {
		b.WriteString("\nKnown categories (with example subcategories):\n")
		b.WriteString(sample)
		b.WriteString("\n")
	}
	if grounding != "" {
		b.WriteString("\nCurrent marketplace context:\n")
		b.WriteString(grounding)
		b.WriteString("\n")
	}
	return b.String()
}

// BuildSearchSystemPrompt composes the search-ads instruction.
func BuildSearchSystemPrompt(language, grounding string) string {
	lang := LanguageLabel(language)
	var b strings.Builder

	b.WriteString("You are SpeedList, an assistant that turns a user's free-form description of what they are looking for into structured search filters for a classifieds marketplace.\n\n")
	b.WriteString("Rules:\n")
	b.WriteString("1. Respond with a single JSON object only. No markdown, no code fences, no commentary.\n")
	b.WriteString("2. Never embed HTML in any field.\n")
	fmt.Fprintf(&b, "3. Write every textual field in %s, regardless of the language of the input.\n", lang)
	b.WriteString("4. \"min_price\" and \"max_price\" must each be a number or null. Never arrays, never strings.\n")
	b.WriteString("5. The two price bounds are independent: when the user states only one bound, the other is null. When no bound is stated, both are null.\n")
	b.WriteString("6. Put free-text search terms in \"keywords\"; leave \"category\" and \"location\" as empty strings when the user gives no basis for them.\n\n")
	fmt.Fprintf(&b, "Output schema (all textual fields in %s):\n", lang)
	b.WriteString(`{"keywords": string, "category": string, "location": string, "min_price": number|null, "max_price": number|null}`)
	b.WriteString("\n")

	if sample := taxonomy.PromptSample(6, 3); sample != "" {
		b.WriteString("\nKnown categories (with example subcategories):\n")
		b.WriteString(sample)
		b.WriteString("\n")
	}
	if grounding != "" {
		b.WriteString("\nCurrent marketplace context:\n")
		b.WriteString(grounding)
		b.WriteString("\n")
	}
	return b.String()
}

// CreateAdFewShot returns the two fixed example exchanges for create-ad.
func CreateAdFewShot(language string) []Message {
	if language == "el" {
		return []Message{
			{Role: RoleUser, Content: "Πουλάω το ποδήλατό μου, ένα κόκκινο mountain bike σε καλή κατάσταση, 180 ευρώ, Θεσσαλονίκη. Τηλέφωνο 6941234567."},
			{Role: RoleAssistant, Content: `{"title": "Κόκκινο mountain bike", "description": "Κόκκινο mountain bike σε καλή κατάσταση.", "category": "Vehicles", "location": "Θεσσαλονίκη", "price": 180, "contact_phone": "6941234567", "contact_email": "", "visits": 0}`},
			{Role: RoleUser, Content: "Χαρίζονται γατάκια 2 μηνών, μόνο σε υπεύθυνα χέρια. Επικοινωνία στο kittens@example.com"},
			{Role: RoleAssistant, Content: `{"title": "Χαρίζονται γατάκια", "description": "Γατάκια 2 μηνών χαρίζονται μόνο σε υπεύθυνα χέρια.", "category": "Pets", "location": "", "price": null, "contact_phone": "", "contact_email": "kittens@example.com", "visits": 0}`},
		}
	}
	return []Message{
		{Role: RoleUser, Content: "Selling my bicycle, a red mountain bike in good condition, 180 euros, Thessaloniki. Phone 6941234567."},
		{Role: RoleAssistant, Content: `{"title": "Red mountain bike", "description": "Red mountain bike in good condition.", "category": "Vehicles", "location": "Thessaloniki", "price": 180, "contact_phone": "6941234567", "contact_email": "", "visits": 0}`},
		{Role: RoleUser, Content: "Free kittens, 2 months old, to a responsible home only. Contact kittens@example.com"},
		{Role: RoleAssistant, Content: `{"title": "Free kittens", "description": "Kittens, 2 months old, free to a responsible home only.", "category": "Pets", "location": "", "price": null, "contact_phone": "", "contact_email": "kittens@example.com", "visits": 0}`},
	}
}

// SearchFewShot returns the two fixed example exchanges for search-ads.
func SearchFewShot(language string) []Message {
	if language == "el" {
		return []Message{
			{Role: RoleUser, Content: "Ψάχνω διαμέρισμα στην Αθήνα μέχρι 700 ευρώ."},
			{Role: RoleAssistant, Content: `{"keywords": "διαμέρισμα", "category": "Real Estate", "location": "Αθήνα", "min_price": null, "max_price": 700}`},
			{Role: RoleUser, Content: "Μεταχειρισμένο laptop πάνω από 300 ευρώ."},
			{Role: RoleAssistant, Content: `{"keywords": "μεταχειρισμένο laptop", "category": "Electronics", "location": "", "min_price": 300, "max_price": null}`},
		}
	}
	return []Message{
		{Role: RoleUser, Content: "Looking for an apartment in Athens up to 700 euros."},
		{Role: RoleAssistant, Content: `{"keywords": "apartment", "category": "Real Estate", "location": "Athens", "min_price": null, "max_price": 700}`},
		{Role: RoleUser, Content: "Used laptop above 300 euros."},
		{Role: RoleAssistant, Content: `{"keywords": "used laptop", "category": "Electronics", "location": "", "min_price": 300, "max_price": null}`},
	}
}
