package categories

import (
	"speedlist-backend/internal/pkg/response"
	"speedlist-backend/internal/taxonomy"

	"github.com/gofiber/fiber/v2"
)

type Handlers struct{}

// GET /api/categories — the static taxonomy tree. With ?category= (and
// optional &subcategory=) the merged field schema is included.
func (h *Handlers) List(c *fiber.Ctx) error {
	payload := fiber.Map{"categories": taxonomy.All()}
	if cat := c.Query("category"); cat != "" {
		payload["fields"] = taxonomy.FieldsFor(cat, c.Query("subcategory"))
	}
	return response.OK(c, payload)
}
