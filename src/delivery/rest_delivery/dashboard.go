package rest_delivery

import (
	"github.com/gofiber/fiber/v2"
)

// dashboard
// @Summary   Summary tiles and recent activity
// @Tags      dashboard
// @Security  Bearer
// @Produce   json
// @Success   200  {object}  dashboardResp
// @Failure   502  {object}  errorResp
// @Router    /api/dashboard [get]
func (r rest) dashboard(c *fiber.Ctx) error {
	ctx, span := tracer.Start(c.UserContext(), "rest_delivery.dashboard")
	defer span.End()

	summary, err := r.useCase.Dashboard(ctx)
	if err != nil {
		return err
	}

	resp := dashboardResp{
		Counts:         newCountsResp(summary.Counts),
		RecentActivity: make([]activityResp, 0, len(summary.RecentActivity)),
	}
	for _, a := range summary.RecentActivity {
		resp.RecentActivity = append(resp.RecentActivity, newActivityResp(a))
	}
	return c.JSON(resp)
}
