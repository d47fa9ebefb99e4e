package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/famous-quotes/internal/adapters/http/dto"
	"github.com/jsamuelsen/famous-quotes/internal/app"
	"github.com/jsamuelsen/famous-quotes/internal/domain"
)

// QuoteHandler handles the quote CRUD endpoints.
type QuoteHandler struct {
	service *app.QuoteService
}

// NewQuoteHandler creates a new quote handler.
func NewQuoteHandler(service *app.QuoteService) *QuoteHandler {
	return &QuoteHandler{
		service: service,
	}
}

// ListQuotes handles GET /api/quotes
//
// @Summary List quotes
// @Tags quotes
// @Produce json
// @Success 200 {array} dto.QuoteResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/quotes [get]
func (h *QuoteHandler) ListQuotes(c *gin.Context) {
	quotes, err := h.service.List(c.Request.Context())
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewQuoteListResponse(quotes))
}

// GetQuote handles GET /api/quotes/:id
// A missing quote is a bare 404 with no body.
//
// @Summary Get a quote by ID
// @Tags quotes
// @Produce json
// @Param id path int true "Quote ID"
// @Success 200 {object} dto.QuoteResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404
// @Router /api/quotes/{id} [get]
func (h *QuoteHandler) GetQuote(c *gin.Context) {
	id, ok := parseQuoteID(c)
	if !ok {
		return
	}

	quote, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		respondQuoteError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewQuoteResponse(quote))
}

// CreateQuote handles POST /api/quotes
//
// @Summary Create a quote
// @Tags quotes
// @Accept json
// @Produce json
// @Param quote body dto.CreateQuoteRequest true "Quote"
// @Success 201 {object} dto.QuoteResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/quotes [post]
func (h *QuoteHandler) CreateQuote(c *gin.Context) {
	var req dto.CreateQuoteRequest
	if err := dto.BindAndValidate(c, &req); err != nil {
		respondBindError(c, err)
		return
	}

	created, err := h.service.Create(c.Request.Context(), req.ToDomain())
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.Header("Location", quoteLocation(c, created.ID))
	c.JSON(http.StatusCreated, dto.NewQuoteResponse(created))
}

// DeleteQuote handles DELETE /api/quotes/:id
//
// @Summary Delete a quote
// @Tags quotes
// @Param id path int true "Quote ID"
// @Success 204
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404
// @Router /api/quotes/{id} [delete]
func (h *QuoteHandler) DeleteQuote(c *gin.Context) {
	id, ok := parseQuoteID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		respondQuoteError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// RegisterQuoteRoutes registers quote routes on the given router group.
func (h *QuoteHandler) RegisterQuoteRoutes(rg *gin.RouterGroup) {
	quotes := rg.Group("/quotes")
	quotes.GET("", h.ListQuotes)
	quotes.POST("", h.CreateQuote)
	quotes.GET("/:id", h.GetQuote)
	quotes.DELETE("/:id", h.DeleteQuote)
}

// parseQuoteID reads the :id path parameter and writes a 400 when it is not an integer.
func parseQuoteID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		dto.RespondWithCode(c, dto.ErrorCodeBadRequest, "quote id must be an integer")
		return 0, false
	}

	return id, true
}

// respondQuoteError writes a bare 404 for missing quotes and the error envelope otherwise.
func respondQuoteError(c *gin.Context, err error) {
	if domain.IsNotFound(err) {
		c.Status(http.StatusNotFound)
		return
	}

	dto.HandleError(c, err)
}

func respondBindError(c *gin.Context, err error) {
	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &tooLarge):
		dto.RespondWithCode(c, dto.ErrorCodePayloadTooLarge, "request body too large")
	case dto.IsValidationError(err):
		dto.RespondWithValidationErrors(c, dto.ValidationErrors(err))
	default:
		dto.RespondWithCode(c, dto.ErrorCodeBadRequest, "request body must be a JSON quote")
	}
}

// quoteLocation builds the Location header for a created quote,
// relative to the group the route was registered on.
func quoteLocation(c *gin.Context, id int64) string {
	base := c.FullPath()
	if base == "" {
		base = c.Request.URL.Path
	}

	return base + "/" + strconv.FormatInt(id, 10)
}
