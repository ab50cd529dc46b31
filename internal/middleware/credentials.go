package middleware

import (
	"inventory/pkg/httperror"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/basicauth"
)

// EmailLocal is the fiber local holding the authenticated email.
const EmailLocal = "email"

// NewCredentialsMiddleware requires HTTP Basic credentials (email:password)
// accepted by authorize.
func NewCredentialsMiddleware(authorize func(email, password string) bool) fiber.Handler {
	return basicauth.New(basicauth.Config{
		Realm:           "inventory",
		Authorizer:      authorize,
		Unauthorized:    unauthorized,
		ContextUsername: EmailLocal,
	})
}

func unauthorized(c *fiber.Ctx) error {
	err := httperror.Unauthorized(
		"inventory.credentials.unauthorized",
		"Invalid credentials",
		nil,
	)

	return c.Status(err.Status).JSON(fiber.Map{
		"code":    err.Code,
		"message": err.Message,
	})
}
