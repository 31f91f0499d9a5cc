package http

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	reportUC "disaster-intake-api/internal/usecase/report"
)

type ReportHandler struct{ uc *reportUC.Usecase }

func NewReportHandler(uc *reportUC.Usecase) *ReportHandler { return &ReportHandler{uc: uc} }

type locationReq struct {
	Latitude  float64 `json:"latitude" validate:"latitude"`
	Longitude float64 `json:"longitude" validate:"longitude"`
}

// createReportReq is the single canonical submission shape. The old
// multipart form variant is gone, and isImportant is not accepted: it
// is derived from importance on the read side.
type createReportReq struct {
	Disaster    string       `json:"disaster" validate:"required"`
	Description string       `json:"description" validate:"required"`
	Importance  *int         `json:"importance" validate:"required,gte=0,lte=10"`
	Location    *locationReq `json:"location" validate:"required"`
	Images      []string     `json:"images" validate:"omitempty,dive,base64"`
}

func (h *ReportHandler) CreateReport(c echo.Context) error {
	ct := c.Request().Header.Get(echo.HeaderContentType)
	if strings.HasPrefix(ct, "multipart/") {
		return c.JSON(http.StatusUnsupportedMediaType, ErrorResponse{Error: CodeUnsupportedMedia})
	}

	var req createReportReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: CodeValidationFailed,
			Details: []FieldError{{Field: "_", Message: "invalid body"}}})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   CodeValidationFailed,
			Details: ToFieldErrors(err),
		})
	}

	id, err := h.uc.Create(c.Request().Context(), reportUC.CreateReportInput{
		DisasterType: req.Disaster,
		Description:  req.Description,
		Importance:   *req.Importance,
		Latitude:     req.Location.Latitude,
		Longitude:    req.Location.Longitude,
		Images:       req.Images,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, map[string]any{
		"success":   true,
		"report_id": id,
	})
}

func (h *ReportHandler) ListReports(c echo.Context) error {
	includeHidden := c.QueryParam("include_hidden") == "true"
	reports, err := h.uc.List(c.Request().Context(), includeHidden)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{
		"success": true,
		"reports": reports,
	})
}

// ListLocations is the map-pin variant: ids and coordinates only.
func (h *ReportHandler) ListLocations(c echo.Context) error {
	includeHidden := c.QueryParam("include_hidden") == "true"
	locations, err := h.uc.Locations(c.Request().Context(), includeHidden)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{
		"success":   true,
		"locations": locations,
	})
}

func (h *ReportHandler) GetReport(c echo.Context) error {
	id, err := reportID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: CodeValidationFailed,
			Details: []FieldError{{Field: "id", Message: "must be a positive integer"}}})
	}
	dto, err := h.uc.Get(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{
		"success": true,
		"report":  dto,
	})
}

// DeleteReport hides the report; the row survives and default listings
// skip it.
func (h *ReportHandler) DeleteReport(c echo.Context) error {
	id, err := reportID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: CodeValidationFailed,
			Details: []FieldError{{Field: "id", Message: "must be a positive integer"}}})
	}
	if err := h.uc.Hide(c.Request().Context(), id); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{
		"success": true,
		"message": "report hidden",
	})
}

func (h *ReportHandler) SwapStatus(c echo.Context) error {
	id, err := reportID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: CodeValidationFailed,
			Details: []FieldError{{Field: "id", Message: "must be a positive integer"}}})
	}
	next, err := h.uc.CycleStatus(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{
		"success":    true,
		"new_status": next,
	})
}

func (h *ReportHandler) RestoreReport(c echo.Context) error {
	id, err := reportID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: CodeValidationFailed,
			Details: []FieldError{{Field: "id", Message: "must be a positive integer"}}})
	}
	next, err := h.uc.Restore(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{
		"success":    true,
		"new_status": next,
	})
}

type commentReq struct {
	Comment string `json:"comment" validate:"required"`
}

func (h *ReportHandler) CommentReport(c echo.Context) error {
	id, err := reportID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: CodeValidationFailed,
			Details: []FieldError{{Field: "id", Message: "must be a positive integer"}}})
	}
	var req commentReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: CodeValidationFailed,
			Details: []FieldError{{Field: "_", Message: "invalid body"}}})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   CodeValidationFailed,
			Details: ToFieldErrors(err),
		})
	}
	newComment, err := h.uc.Annotate(c.Request().Context(), id, req.Comment)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{
		"success":     true,
		"new_comment": newComment,
	})
}

func reportID(c echo.Context) (uint, error) {
	n, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || n == 0 {
		return 0, strconv.ErrSyntax
	}
	return uint(n), nil
}
