package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/opentracing/opentracing-go"
	"github.com/pkg/errors"

	"github.com/canada-ca/tracker-sub010/dto"
	tracker_errors "github.com/canada-ca/tracker-sub010/errors"
	"github.com/canada-ca/tracker-sub010/interfaces"
	"github.com/canada-ca/tracker-sub010/internal/tracing"
	"github.com/canada-ca/tracker-sub010/internal/utils"
)

type DmarcSummaryHandler struct {
	dmarcSummaryService interfaces.DmarcSummaryService
}

func NewDmarcSummaryHandler(dmarcSummaryService interfaces.DmarcSummaryService) *DmarcSummaryHandler {
	return &DmarcSummaryHandler{
		dmarcSummaryService: dmarcSummaryService,
	}
}

// Ingest stores the monthly totals posted by the DMARC report processor.
func (h *DmarcSummaryHandler) Ingest() gin.HandlerFunc {
	return func(c *gin.Context) {
		span, ctx := opentracing.StartSpanFromContext(c.Request.Context(), "DmarcSummaryHandler.Ingest")
		defer span.Finish()
		tracing.SetDefaultRestSpanTags(ctx, span)

		var request dto.DmarcSummaryInput
		if err := c.ShouldBindJSON(&request); err != nil {
			tracing.TraceErr(span, err)
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		tracing.LogObjectAsJson(span, "request", request)

		err := h.dmarcSummaryService.Ingest(ctx, request)
		switch {
		case err == nil:
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		case errors.Is(err, tracker_errors.ErrDomainNotFound):
			tracing.TraceErr(span, err)
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, utils.ErrInvalidDomain):
			tracing.TraceErr(span, err)
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			tracing.TraceErr(span, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "unable to store dmarc summary"})
		}
	}
}
