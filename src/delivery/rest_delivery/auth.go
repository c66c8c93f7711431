package rest_delivery

import (
	"fmt"
	"github.com/SpeedxPz/startup-review-admin/src/use_case"
	"github.com/gofiber/fiber/v2"
	"strings"
)

// login
// @Summary  Sign in with the identity service
// @Tags     auth
// @Accept   json
// @Produce  json
// @Param    body  body      loginReq  true  "credentials"
// @Success  200   {object}  loginResp
// @Failure  400   {object}  errorResp
// @Failure  401   {object}  errorResp
// @Failure  502   {object}  errorResp
// @Router   /api/login [post]
func (r rest) login(c *fiber.Ctx) error {
	ctx, span := tracer.Start(c.UserContext(), "rest_delivery.login")
	defer span.End()

	var req loginReq
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("invalid body: %s", err))
	}

	s, err := r.useCase.Login(ctx, use_case.Credential{Email: req.Email, Password: req.Password})
	if err != nil {
		return err
	}

	return c.JSON(newLoginResp(s))
}

// logout
// @Summary   Sign out
// @Tags      auth
// @Security  Bearer
// @Success   204
// @Router    /api/logout [post]
func (r rest) logout(c *fiber.Ctx) error {
	ctx, span := tracer.Start(c.UserContext(), "rest_delivery.logout")
	defer span.End()

	token := strings.TrimSpace(strings.TrimPrefix(c.Get(fiber.HeaderAuthorization), "Bearer "))
	if err := r.useCase.Logout(ctx, token); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
