package rest_delivery

import (
	"errors"
	"fmt"
	"github.com/SpeedxPz/startup-review-admin/src/entity/application"
	"github.com/SpeedxPz/startup-review-admin/src/use_case"
	"github.com/gofiber/fiber/v2"
)

var actionTargets = map[string]application.Status{
	"accept":  application.StatusApproved,
	"reject":  application.StatusRejected,
	"pending": application.StatusPending,
}

func parseAction(action string) (application.Status, error) {
	target, ok := actionTargets[action]
	if !ok {
		return "", fmt.Errorf("unknown action %q: %w", action, use_case.ErrInvalidTransition)
	}
	return target, nil
}

func actionName(target application.Status) string {
	for action, t := range actionTargets {
		if t == target {
			return action
		}
	}
	return string(target)
}

func (r rest) renderView(viewID string, snap use_case.ReviewSnapshot) viewResp {
	resp := viewResp{
		ViewID: viewID,
		Loaded: snap.State.Loaded,
		Filter: filterResp{
			Status:      string(snap.State.Filter.Status),
			Search:      snap.State.Filter.Search,
			Category:    snap.State.Filter.Category,
			ProductType: snap.State.Filter.ProductType,
		},
		Counts: newCountsResp(snap.Counts),
		Facets: facetsResp{
			Categories:   append([]string{}, snap.Facets.Categories...),
			ProductTypes: append([]string{}, snap.Facets.ProductTypes...),
		},
		InFlight: append([]string{}, snap.State.InFlight...),
		Startups: make([]startupResp, 0, len(snap.Visible)),
	}
	if snap.State.LoadErr != nil {
		resp.LoadError = snap.State.LoadErr.Error()
	}
	for _, a := range snap.Visible {
		resp.Startups = append(resp.Startups, newStartupResp(a, r.useCase.TransitionTargets(a.Status)))
	}
	return resp
}

func loadFailed(c *fiber.Ctx, viewID string, err error) error {
	return c.Status(statusCode(err)).JSON(errorResp{Error: err.Error(), ViewID: viewID})
}

// openView
// @Summary   Open and load a review view
// @Tags      views
// @Security  Bearer
// @Produce   json
// @Success   201  {object}  viewResp
// @Failure   502  {object}  errorResp  "load failed, the view stays open for reload"
// @Router    /api/views [post]
func (r rest) openView(c *fiber.Ctx) error {
	ctx, span := tracer.Start(c.UserContext(), "rest_delivery.openView")
	defer span.End()

	viewID, list, err := r.useCase.OpenView(ctx, sessionOf(c))
	if err != nil {
		if list != nil && errors.Is(err, use_case.ErrLoadFailure) {
			return loadFailed(c, viewID, err)
		}
		return err
	}

	snap, err := list.Snapshot()
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(r.renderView(viewID, snap))
}

// getView
// @Summary   Filter a review view
// @Tags      views
// @Security  Bearer
// @Produce   json
// @Param     viewID       path   string  true   "view id"
// @Param     status       query  string  false  "all, pending, approved or rejected"
// @Param     search       query  string  false  "company name or about text"
// @Param     category     query  string  false  "exact category"
// @Param     productType  query  string  false  "exact product type"
// @Success   200  {object}  viewResp
// @Failure   400  {object}  errorResp
// @Failure   404  {object}  errorResp
// @Router    /api/views/{viewID} [get]
func (r rest) getView(c *fiber.Ctx) error {
	_, span := tracer.Start(c.UserContext(), "rest_delivery.getView")
	defer span.End()

	viewID := c.Params("viewID")
	list, err := r.useCase.View(sessionOf(c), viewID)
	if err != nil {
		return err
	}

	snap, err := list.ApplyFilter(use_case.Filter{
		Status:      use_case.StatusFilter(c.Query("status")),
		Search:      c.Query("search"),
		Category:    c.Query("category"),
		ProductType: c.Query("productType"),
	})
	if err != nil {
		return err
	}
	return c.JSON(r.renderView(viewID, snap))
}

// reloadView
// @Summary   Reload a review view from the directory
// @Tags      views
// @Security  Bearer
// @Produce   json
// @Param     viewID  path  string  true  "view id"
// @Success   200  {object}  viewResp
// @Failure   502  {object}  errorResp
// @Router    /api/views/{viewID}/reload [post]
func (r rest) reloadView(c *fiber.Ctx) error {
	ctx, span := tracer.Start(c.UserContext(), "rest_delivery.reloadView")
	defer span.End()

	viewID := c.Params("viewID")
	if err := r.useCase.ReloadView(ctx, sessionOf(c), viewID); err != nil {
		if errors.Is(err, use_case.ErrLoadFailure) {
			return loadFailed(c, viewID, err)
		}
		return err
	}

	list, err := r.useCase.View(sessionOf(c), viewID)
	if err != nil {
		return err
	}
	snap, err := list.Snapshot()
	if err != nil {
		return err
	}
	return c.JSON(r.renderView(viewID, snap))
}

// transitionInView
// @Summary   Accept, reject or reset a startup in a view
// @Tags      views
// @Security  Bearer
// @Produce   json
// @Param     viewID  path  string  true  "view id"
// @Param     id      path  string  true  "startup id"
// @Param     action  path  string  true  "accept, reject or pending"
// @Success   200  {object}  startupResp
// @Failure   400  {object}  errorResp
// @Failure   404  {object}  errorResp
// @Failure   409  {object}  errorResp
// @Failure   502  {object}  errorResp
// @Router    /api/views/{viewID}/startups/{id}/{action} [patch]
func (r rest) transitionInView(c *fiber.Ctx) error {
	ctx, span := tracer.Start(c.UserContext(), "rest_delivery.transitionInView")
	defer span.End()

	target, err := parseAction(c.Params("action"))
	if err != nil {
		return err
	}

	a, err := r.useCase.TransitionInView(ctx, sessionOf(c), c.Params("viewID"), c.Params("id"), target)
	if err != nil {
		return err
	}
	return c.JSON(newStartupResp(a, r.useCase.TransitionTargets(a.Status)))
}

// closeView
// @Summary   Close a review view
// @Tags      views
// @Security  Bearer
// @Param     viewID  path  string  true  "view id"
// @Success   204
// @Failure   404  {object}  errorResp
// @Router    /api/views/{viewID} [delete]
func (r rest) closeView(c *fiber.Ctx) error {
	_, span := tracer.Start(c.UserContext(), "rest_delivery.closeView")
	defer span.End()

	if err := r.useCase.CloseView(sessionOf(c), c.Params("viewID")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
