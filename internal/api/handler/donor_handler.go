package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/bloodlink/donor-registry/internal/core/domain"
	"github.com/bloodlink/donor-registry/internal/core/ports"
)

// DonorHandler exposes the admin-facing donor directory and registry
// stats. Route-level RBAC keeps regular users out; the handler itself
// assumes an admin caller.
type DonorHandler struct {
	donorService ports.DonorService
}

func NewDonorHandler(donorService ports.DonorService) *DonorHandler {
	return &DonorHandler{donorService: donorService}
}

func (h *DonorHandler) List(c echo.Context) error {
	ctx := c.Request().Context()

	if bg := c.QueryParam("blood_group"); bg != "" {
		views, err := h.donorService.ListDonorsByBloodGroup(ctx, domain.BloodGroup(bg))
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, views)
	}

	views, err := h.donorService.ListDonors(ctx)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, views)
}

func (h *DonorHandler) Stats(c echo.Context) error {
	stats, err := h.donorService.Stats(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stats)
}
