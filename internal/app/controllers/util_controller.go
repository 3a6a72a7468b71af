package controllers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yigit/hogwarts/internal/app/services"
	"github.com/yigit/hogwarts/internal/middleware"
)

// UtilController exposes the arithmetic series demo
type UtilController struct {
	utilService services.UtilService
}

// NewUtilController creates a new UtilController
func NewUtilController(utilService services.UtilService) *UtilController {
	return &UtilController{utilService: utilService}
}

func seriesLimit(ctx *gin.Context) (int64, bool) {
	raw, ok := ctx.GetQuery("n")
	if !ok {
		return services.DefaultSeriesLimit, true
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || n < 0 {
		middleware.RespondBadRequest(ctx, "Invalid query parameter", "n must be a non-negative number")
		return 0, false
	}
	return n, true
}

// SumMillion
// @Summary Sum of 1..n in closed form
// @Tags util
// @Produce json
// @Param n query int false "Upper bound" default(1000000)
// @Success 200 {integer} int64
// @Failure 400 {object} dto.ErrorResponse "Invalid n or n above 4294967295"
// @Router /util/sum-million [get]
func (c *UtilController) SumMillion(ctx *gin.Context) {
	n, ok := seriesLimit(ctx)
	if !ok {
		return
	}
	sum, err := c.utilService.SumSeries(n)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, sum)
}

// SumMillionSlow
// @Summary Sum of 1..n by iteration
// @Tags util
// @Produce json
// @Param n query int false "Upper bound" default(1000000)
// @Success 200 {integer} int64
// @Failure 400 {object} dto.ErrorResponse "Invalid n or n above 4294967295"
// @Router /util/sum-million-slow [get]
func (c *UtilController) SumMillionSlow(ctx *gin.Context) {
	n, ok := seriesLimit(ctx)
	if !ok {
		return
	}
	sum, err := c.utilService.SumSeriesIterative(ctx.Request.Context(), n)
	if err != nil {
		// the client went away, nobody reads the response
		if errors.Is(err, context.Canceled) {
			ctx.Abort()
			return
		}
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, sum)
}
