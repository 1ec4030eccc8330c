package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"

	"github.com/guttosm/bsgreeks/internal/domain/dto"
	"github.com/guttosm/bsgreeks/internal/ingestion"
	"github.com/guttosm/bsgreeks/internal/logger"
	"github.com/guttosm/bsgreeks/internal/middleware"
	"github.com/guttosm/bsgreeks/internal/pricing"
	"github.com/guttosm/bsgreeks/internal/service"
)

const (
	defaultUploadMaxBytes = 64 << 20
	jsonContentType       = "application/json; charset=utf-8"
	exampleFilename       = "black_scholes_example.csv"
)

// exampleCSV is served by GET /example. The last rows show how invalid
// input is reported.
const exampleCSV = `S,K,T,r,sigma,option_type
100,100,1,0.05,0.2,call
100,100,1,0.05,0.2,put
120,100,0.5,0.03,0.25,call
80,100,0.25,0.03,0.3,put
100,110,0,0.05,0.2,call
-5,100,1,0.05,0.2,call
100,100,1,0.05,,put
`

// Handler provides HTTP handlers for the Black-Scholes endpoints.
//
// Responsibilities:
//   - Validate and bind incoming requests (JSON bodies, multipart uploads, query params)
//   - Delegate pricing to the service layer
//   - Translate engine results and errors into response DTOs and status codes
type Handler struct {
	svc            service.PricingService
	uploadMaxBytes int64
}

// NewHandler constructs a new Handler instance.
//
// Parameters:
//   - svc (service.PricingService): Business layer used for pricing.
//   - uploadMaxBytes (int64): Upload size limit for /process; <= 0 uses 64 MiB.
//
// Returns:
//   - *Handler: A handler ready to be registered with the router.
func NewHandler(svc service.PricingService, uploadMaxBytes int64) *Handler {
	if uploadMaxBytes <= 0 {
		uploadMaxBytes = defaultUploadMaxBytes
	}
	return &Handler{svc: svc, uploadMaxBytes: uploadMaxBytes}
}

// Calculate handles POST /api/v1/black-scholes/calculate.
//
// Responses:
//   - 200 OK: Price, Greeks and the echoed input.
//   - 400 Bad Request: Body is not valid JSON.
//   - 422 Unprocessable Entity: Input fails validation; details list every reason.
//
// Calculate godoc
// @Summary      Price a single option
// @Description  Prices one European option and its Greeks. option_type defaults to call.
// @Tags         black-scholes
// @Accept       json
// @Produce      json
// @Param        request  body      dto.CalculateRequest   true  "Contract"
// @Success      200      {object}  dto.CalculateResponse  "Success"
// @Failure      400      {object}  dto.ErrorResponse      "Bad Request"
// @Failure      422      {object}  dto.ErrorResponse      "Invalid input"
// @Router       /api/v1/black-scholes/calculate [post]
func (h *Handler) Calculate(c *gin.Context) {
	var req dto.CalculateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.AbortWithError(c, http.StatusBadRequest, "invalid request body", err)
		return
	}

	row := req.ToRow()
	res, err := h.svc.Calculate(c.Request.Context(), row)
	if err != nil {
		var vf *pricing.ValidationFailure
		if errors.As(err, &vf) {
			c.JSON(http.StatusUnprocessableEntity, dto.NewErrorResponse("invalid input", vf))
			return
		}
		middleware.AbortWithError(c, http.StatusInternalServerError, "calculation failed", err)
		return
	}

	c.JSON(http.StatusOK, dto.NewCalculateResponse(row, res))
}

// Process handles POST /api/v1/black-scholes/process.
//
// Form fields:
//   - file (required): .csv or .xlsx with columns S, K, T, r, sigma, option_type.
//
// Query Parameters:
//   - workers (int, optional): Worker goroutines (clamped by configuration).
//   - chunksize (int, optional): Rows per chunk.
//
// Responses:
//   - 200 OK: Per-row results in input order plus summary. Bad rows are
//     reported in their own "error" field and never fail the request.
//   - 400 Bad Request: No file, unsupported format, unreadable file, bad
//     query params, or missing required columns.
//   - 413 Request Entity Too Large: Upload exceeds the configured limit.
//   - 500 Internal Server Error: A worker crashed.
//   - 504 Gateway Timeout: The request deadline expired.
//
// Process godoc
// @Summary      Price a batch file
// @Description  Prices every row of an uploaded CSV/XLSX file in parallel chunks.
// @Tags         black-scholes
// @Accept       multipart/form-data
// @Produce      json
// @Param        file       formData  file  true   "CSV or XLSX batch"
// @Param        workers    query     int   false  "Worker count"  example(4)
// @Param        chunksize  query     int   false  "Rows per chunk"  example(20000)
// @Success      200        {object}  dto.BatchResponse  "Success"
// @Failure      400        {object}  dto.ErrorResponse  "Bad Request"
// @Failure      413        {object}  dto.ErrorResponse  "Too Large"
// @Failure      500        {object}  dto.ErrorResponse  "Internal Error"
// @Failure      504        {object}  dto.ErrorResponse  "Timeout"
// @Router       /api/v1/black-scholes/process [post]
func (h *Handler) Process(c *gin.Context) {
	// ─── Query params ─────────────────────────────────────────
	workers, err := positiveQuery(c, "workers")
	if err != nil {
		middleware.AbortWithError(c, http.StatusBadRequest, "invalid workers", err)
		return
	}
	chunkSize, err := positiveQuery(c, "chunksize")
	if err != nil {
		middleware.AbortWithError(c, http.StatusBadRequest, "invalid chunksize", err)
		return
	}

	// ─── Upload ───────────────────────────────────────────────
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.uploadMaxBytes)
	fh, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			middleware.AbortWithError(c, http.StatusRequestEntityTooLarge, "file too large", err)
			return
		}
		middleware.AbortWithError(c, http.StatusBadRequest, "file is required", err)
		return
	}
	if _, err := ingestion.FormatOf(fh.Filename); err != nil {
		middleware.AbortWithError(c, http.StatusBadRequest, "file must be CSV or XLSX", err)
		return
	}

	f, err := fh.Open()
	if err != nil {
		middleware.AbortWithError(c, http.StatusBadRequest, "cannot open upload", err)
		return
	}
	defer func() { _ = f.Close() }()

	ctx := c.Request.Context()
	batch, err := ingestion.Load(ctx, fh.Filename, f)
	if err != nil {
		if ctx.Err() != nil {
			h.abortContext(c, ctx.Err())
			return
		}
		middleware.AbortWithError(c, http.StatusBadRequest, "cannot read file", err)
		return
	}

	// ─── Price ────────────────────────────────────────────────
	res, err := h.svc.ProcessBatch(ctx, batch, service.BatchOptions{ChunkSize: chunkSize, Workers: workers})
	if err != nil {
		var schemaErr *pricing.SchemaError
		switch {
		case errors.As(err, &schemaErr):
			middleware.AbortWithError(c, http.StatusBadRequest, "missing required columns", err)
		case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
			h.abortContext(c, err)
		default:
			middleware.AbortWithError(c, http.StatusInternalServerError, "batch processing failed", err)
		}
		return
	}

	body, err := json.Marshal(NewBatchResponse(res))
	if err != nil {
		middleware.AbortWithError(c, http.StatusInternalServerError, "cannot encode response", err)
		return
	}
	c.Data(http.StatusOK, jsonContentType, body)
}

func (h *Handler) abortContext(c *gin.Context, err error) {
	if errors.Is(err, context.DeadlineExceeded) {
		middleware.AbortWithError(c, http.StatusGatewayTimeout, "processing timed out", err)
		return
	}
	logger.L().Warn().Err(err).Msg("client went away during processing")
	middleware.AbortWithError(c, http.StatusServiceUnavailable, "processing canceled", err)
}

// positiveQuery reads an optional positive integer query parameter; absent
// yields 0.
func positiveQuery(c *gin.Context, name string) (int, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", name, err)
	}
	if v < 1 {
		return 0, fmt.Errorf("%s must be >= 1, got %d", name, v)
	}
	return v, nil
}

// Example handles GET /api/v1/black-scholes/example.
//
// Example godoc
// @Summary      Example batch file
// @Description  Downloads a CSV with the expected columns and a few sample rows.
// @Tags         black-scholes
// @Produce      text/csv
// @Success      200  {string}  string  "CSV file"
// @Router       /api/v1/black-scholes/example [get]
func (h *Handler) Example(c *gin.Context) {
	c.Header("Content-Disposition", `attachment; filename="`+exampleFilename+`"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", []byte(exampleCSV))
}

// Index handles GET / with a short description of the API.
//
// Index godoc
// @Summary      API index
// @Tags         health
// @Produce      json
// @Success      200  {object}  map[string]any
// @Router       / [get]
func Index(debug bool) gin.HandlerFunc {
	docs := "Documentation disabled in production"
	if debug {
		docs = "/swagger/index.html"
	}
	body := gin.H{
		"message":     "Welcome to Black-Scholes Calculator API",
		"version":     "1.0.0",
		"description": "API for calculating Black-Scholes option prices and Greeks",
		"endpoints": gin.H{
			"single_calculation": "/api/v1/black-scholes/calculate",
			"batch_processing":   "/api/v1/black-scholes/process",
			"example_format":     "/api/v1/black-scholes/example",
		},
		"docs": docs,
	}
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, body)
	}
}
