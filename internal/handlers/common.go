// common.go
//
// Family photo sharing backend for kids' memories.

package handlers

import (
	"io"

	"github.com/NgocTV11/kids-memories-backend/internal/types"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// identity reads the {userID, role} pair the auth middleware stored.
func identity(c *fiber.Ctx) (string, string) {
	userID, _ := c.Locals("userID").(string)
	role, _ := c.Locals("userRole").(string)
	return userID, role
}

// parseBody decodes and validates a JSON request body into dst.
func parseBody(c *fiber.Ctx, dst interface{}) error {
	if err := c.BodyParser(dst); err != nil {
		return types.BadRequest("Invalid request body")
	}
	if err := validate.Struct(dst); err != nil {
		return types.BadRequest(err.Error())
	}
	return nil
}

// queryPtr returns a pointer to a query parameter, nil when absent.
func queryPtr(c *fiber.Ctx, key string) *string {
	v := c.Query(key)
	if v == "" {
		return nil
	}
	return &v
}

// readFormFile loads one multipart file field fully into memory.
func readFormFile(c *fiber.Ctx, field string) ([]byte, string, error) {
	header, err := c.FormFile(field)
	if err != nil {
		return nil, "", types.BadRequest("Missing file field '" + field + "'")
	}

	f, err := header.Open()
	if err != nil {
		return nil, "", types.BadRequest("Unable to read uploaded file")
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, "", types.BadRequest("Unable to read uploaded file")
	}
	return data, header.Filename, nil
}

// formList decodes a form field that carries either a JSON array or a single
// bare value.
func formList(c *fiber.Ctx, field string) []string {
	list, _ := types.ParseStringList(c.FormValue(field))
	return list
}

// formPtr returns a pointer to a form value, nil when absent.
func formPtr(c *fiber.Ctx, field string) *string {
	v := c.FormValue(field)
	if v == "" {
		return nil
	}
	return &v
}
