package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/bloodlink/donor-registry/internal/api/metrics"
	"github.com/bloodlink/donor-registry/internal/core/domain"
	"github.com/bloodlink/donor-registry/internal/core/ports"
)

// PostHandler exposes the donation-request endpoints. Ownership checks
// live in the service; the handler only carries the actor identity down.
type PostHandler struct {
	postService  ports.PostService
	donorService ports.DonorService
}

func NewPostHandler(postService ports.PostService, donorService ports.DonorService) *PostHandler {
	return &PostHandler{postService: postService, donorService: donorService}
}

func (h *PostHandler) Create(c echo.Context) error {
	profileID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req createPostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	ctx := c.Request().Context()
	requester, err := h.donorService.GetProfile(ctx, profileID)
	if err != nil {
		return err
	}

	in := ports.CreatePostInput{
		BloodGroupNeeded: domain.BloodGroup(req.BloodGroupNeeded),
		Location:         req.Location,
		ContactNumber:    req.ContactNumber,
		Description:      req.Description,
		Urgency:          domain.Urgency(req.Urgency),
	}
	post, err := h.postService.Create(ctx, requester, in)
	if err != nil {
		return err
	}

	metrics.PostsCreatedTotal.WithLabelValues(string(post.Urgency)).Inc()
	return c.JSON(http.StatusCreated, post)
}

func (h *PostHandler) List(c echo.Context) error {
	ctx := c.Request().Context()

	switch status := c.QueryParam("status"); status {
	case "":
		posts, err := h.postService.List(ctx)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, posts)
	case string(domain.PostOpen):
		posts, err := h.postService.ListOpen(ctx)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, posts)
	default:
		return echo.NewHTTPError(http.StatusUnprocessableEntity, "unsupported status filter: "+status)
	}
}

func (h *PostHandler) Mine(c echo.Context) error {
	profileID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	posts, err := h.postService.ListByRequester(c.Request().Context(), profileID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, posts)
}

func (h *PostHandler) UpdateStatus(c echo.Context) error {
	profileID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req updatePostStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	post, err := h.postService.UpdateStatus(c.Request().Context(), profileID, c.Param("id"), domain.PostStatus(req.Status))
	if err != nil {
		return err
	}

	metrics.PostTransitionsTotal.WithLabelValues(string(post.Status)).Inc()
	return c.JSON(http.StatusOK, post)
}

func (h *PostHandler) Delete(c echo.Context) error {
	profileID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	if err := h.postService.Delete(c.Request().Context(), profileID, c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
