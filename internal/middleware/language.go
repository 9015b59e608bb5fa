package middleware

import (
	"github.com/gofiber/fiber/v2"
)

const languageHeader = "X-Language"
const languageLocal = "language"

// Language stores the client's requested language in Locals. Only "el" is
// meaningful downstream; everything else resolves to English.
func Language() fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals(languageLocal, c.Get(languageHeader))
		return c.Next()
	}
}

// GetLanguage returns the requested language code ("" when absent).
func GetLanguage(c *fiber.Ctx) string {
	if lang, ok := c.Locals(languageLocal).(string); ok {
		return lang
	}
	return ""
}
