package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/thanFreecss/celebrity-salon/internal/httperr"
	"github.com/thanFreecss/celebrity-salon/internal/middleware"
)

func int64Param(c *gin.Context, name string) (int64, bool) {
	v, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || v <= 0 {
		httperr.Respond(c, httperr.Validation("invalid_id", "Invalid id.",
			map[string]string{name: "must be a positive integer"}))
		return 0, false
	}
	return v, true
}

func uintParam(c *gin.Context, name string) (uint, bool) {
	v, ok := int64Param(c, name)
	return uint(v), ok
}

func queryInt(c *gin.Context, name string, def int) int {
	v, err := strconv.Atoi(c.Query(name))
	if err != nil {
		return def
	}
	return v
}

// actorIDFrom returns the caller's user id for audit records.
func actorIDFrom(c *gin.Context) *uint {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		return nil
	}
	id := actor.UserID
	return &id
}
