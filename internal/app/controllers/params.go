package controllers

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yigit/hogwarts/internal/middleware"
)

// pathID parses a non-negative int64 path parameter, writing a 400 on failure
func pathID(ctx *gin.Context, name, label string) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param(name), 10, 64)
	if err != nil || id < 0 {
		middleware.RespondBadRequest(ctx, "Invalid "+label+" ID", label+" ID must be a non-negative number")
		return 0, false
	}
	return id, true
}

// queryInt parses a required integer query parameter, writing a 400 on failure
func queryInt(ctx *gin.Context, name string) (int, bool) {
	raw, ok := ctx.GetQuery(name)
	if !ok {
		middleware.RespondBadRequest(ctx, "Missing query parameter", fmt.Sprintf("%s is required", name))
		return 0, false
	}

	value, err := strconv.Atoi(raw)
	if err != nil {
		middleware.RespondBadRequest(ctx, "Invalid query parameter", fmt.Sprintf("%s must be a valid number", name))
		return 0, false
	}
	return value, true
}
