package registration

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/carelink/carelink/internal/platform/auth"
	"github.com/carelink/carelink/pkg/pagination"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	// Signup is the one public endpoint; account lookup is back-office only.
	api.POST("/register", h.Register)

	adminGroup := api.Group("", auth.RequireRole("admin"))
	adminGroup.GET("/accounts", h.ListAccounts)
	adminGroup.GET("/accounts/:id", h.GetAccount)
}

// registerResponse is the wire envelope of the registration endpoint:
// success plus the created ids, or success=false with a display message.
type registerResponse struct {
	Success   bool        `json:"success"`
	Error     string      `json:"error,omitempty"`
	Fields    FieldErrors `json:"fields,omitempty"`
	ID        string      `json:"id,omitempty"`
	NHRNumber string      `json:"nhrNumber,omitempty"`
}

func (h *Handler) Register(c echo.Context) error {
	var payload SubmissionPayload
	if err := c.Bind(&payload); err != nil {
		return c.JSON(http.StatusBadRequest, registerResponse{
			Success: false,
			Error:   "Invalid request body",
		})
	}

	a, err := h.svc.Register(c.Request().Context(), &payload)
	var verr *ValidationError
	switch {
	case errors.As(err, &verr):
		return c.JSON(http.StatusBadRequest, registerResponse{
			Success: false,
			Error:   verr.Error(),
			Fields:  verr.Fields,
		})
	case errors.Is(err, ErrEmailTaken):
		return c.JSON(http.StatusConflict, registerResponse{
			Success: false,
			Error:   "Email already exists",
		})
	case err != nil:
		return c.JSON(http.StatusInternalServerError, registerResponse{
			Success: false,
			Error:   GenericSubmitError,
		})
	}

	resp := registerResponse{Success: true, ID: a.ID.String()}
	if a.NHRNumber != nil {
		resp.NHRNumber = *a.NHRNumber
	}
	return c.JSON(http.StatusCreated, resp)
}

func (h *Handler) GetAccount(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	a, err := h.svc.GetAccount(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "account not found")
	}
	return c.JSON(http.StatusOK, a)
}

func (h *Handler) ListAccounts(c echo.Context) error {
	pg := pagination.FromContext(c)
	if role := c.QueryParam("role"); role != "" {
		items, total, err := h.svc.ListAccountsByRole(c.Request().Context(), Role(role), pg.Limit, pg.Offset)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
	}
	items, total, err := h.svc.ListAccounts(c.Request().Context(), pg.Limit, pg.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}
