package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mimiru/mimiru/internal/actions"
)

// ErrorResponse is the standard error response format for non-action
// errors (bad parameters, auth failures).
type ErrorResponse struct {
	Error string `json:"error"`
}

// respondResult writes an action result as the uniform envelope:
// 200 {"success":true,"data":...} or 400 {"success":false,"error":"..."}.
func respondResult[T any](c *gin.Context, result actions.Result[T]) {
	if result.Success() {
		c.JSON(http.StatusOK, result)
		return
	}
	c.JSON(http.StatusBadRequest, result)
}

// respondBadRequest sends a 400 Bad Request response.
func respondBadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: message})
}

// parseIDParam extracts and validates an unsigned integer ID from URL
// parameters. Responds with a 400 error and returns (0, false) on bad
// input.
func parseIDParam(c *gin.Context, paramName string) (uint, bool) {
	idStr := c.Param(paramName)
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		respondBadRequest(c, "invalid "+paramName)
		return 0, false
	}
	return uint(id), true
}

// parseQueryInt extracts an integer query parameter, falling back to def
// when absent or malformed.
func parseQueryInt(c *gin.Context, name string, def int) int {
	raw := c.Query(name)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return n
}

// parseQueryFloat extracts a float query parameter. Responds with a 400
// error and returns (0, false) when absent or malformed.
func parseQueryFloat(c *gin.Context, name string) (float64, bool) {
	raw := c.Query(name)
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		respondBadRequest(c, "invalid "+name)
		return 0, false
	}
	return f, true
}
