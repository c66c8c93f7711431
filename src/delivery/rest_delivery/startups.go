package rest_delivery

import (
	"fmt"
	"github.com/SpeedxPz/startup-review-admin/src/entity/application"
	"github.com/SpeedxPz/startup-review-admin/src/use_case"
	"github.com/gofiber/fiber/v2"
)

// getStartup
// @Summary   Startup detail
// @Tags      startups
// @Security  Bearer
// @Produce   json
// @Param     id  path  string  true  "startup id"
// @Success   200  {object}  startupResp
// @Failure   404  {object}  errorResp
// @Failure   502  {object}  errorResp
// @Router    /api/startups/{id} [get]
func (r rest) getStartup(c *fiber.Ctx) error {
	ctx, span := tracer.Start(c.UserContext(), "rest_delivery.getStartup")
	defer span.End()

	a, err := r.useCase.GetApplication(ctx, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(newStartupResp(a, r.useCase.TransitionTargets(a.Status)))
}

// setStartupStatus
// @Summary   Change a startup's status from the detail screen
// @Tags      startups
// @Security  Bearer
// @Accept    json
// @Produce   json
// @Param     id    path  string     true  "startup id"
// @Param     body  body  statusReq  true  "target status"
// @Success   200  {object}  startupResp
// @Failure   400  {object}  errorResp
// @Failure   404  {object}  errorResp
// @Failure   502  {object}  errorResp
// @Router    /api/startups/{id}/status [patch]
func (r rest) setStartupStatus(c *fiber.Ctx) error {
	ctx, span := tracer.Start(c.UserContext(), "rest_delivery.setStartupStatus")
	defer span.End()

	var req statusReq
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("invalid body: %s", err))
	}

	target, err := application.ParseStatus(req.Status)
	if err != nil {
		return fmt.Errorf("%s: %w", err, use_case.ErrInvalidTransition)
	}

	a, err := r.useCase.TransitionApplication(ctx, sessionOf(c), c.Params("id"), target)
	if err != nil {
		return err
	}
	return c.JSON(newStartupResp(a, r.useCase.TransitionTargets(a.Status)))
}
