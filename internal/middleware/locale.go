// locale.go
//
// Family photo sharing backend for kids' memories.

package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// LocaleMiddleware parses the X-App-Language header (falling back to the
// first Accept-Language entry) and stores it in context. Registration uses it
// as the account's default language.
func LocaleMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		lang := c.Get("X-App-Language")
		if lang == "" {
			if accept := c.Get(fiber.HeaderAcceptLanguage); accept != "" {
				lang = strings.TrimSpace(strings.SplitN(accept, ",", 2)[0])
				if i := strings.IndexByte(lang, ';'); i >= 0 {
					lang = lang[:i]
				}
			}
		}
		if lang == "" {
			lang = "vi"
		}

		c.Locals("lang", lang)

		return c.Next()
	}
}
