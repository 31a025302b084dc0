package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/bloodlink/donor-registry/internal/api/metrics"
	"github.com/bloodlink/donor-registry/internal/core/domain"
	"github.com/bloodlink/donor-registry/internal/core/ports"
)

// ProfileHandler exposes the authenticated donor's own profile.
type ProfileHandler struct {
	donorService ports.DonorService
}

func NewProfileHandler(donorService ports.DonorService) *ProfileHandler {
	return &ProfileHandler{donorService: donorService}
}

func (h *ProfileHandler) Me(c echo.Context) error {
	profileID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	profile, err := h.donorService.GetProfile(c.Request().Context(), profileID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, profile)
}

func (h *ProfileHandler) Update(c echo.Context) error {
	profileID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req updateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	in := ports.UpdateProfileInput{
		Name:          req.Name,
		ContactNumber: req.ContactNumber,
		Location:      req.Location,
	}
	if req.BloodGroup != nil {
		bg := domain.BloodGroup(*req.BloodGroup)
		in.BloodGroup = &bg
	}

	profile, err := h.donorService.UpdateProfile(c.Request().Context(), profileID, in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, profile)
}

func (h *ProfileHandler) RecordDonation(c echo.Context) error {
	profileID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req recordDonationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	donatedOn, err := parseDate(req.DonatedOn)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "donated_on must be a YYYY-MM-DD date")
	}

	profile, err := h.donorService.RecordDonation(c.Request().Context(), profileID, donatedOn)
	if err != nil {
		return err
	}

	metrics.DonationsRecordedTotal.Inc()
	return c.JSON(http.StatusOK, profile)
}
