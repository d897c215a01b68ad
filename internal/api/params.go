package api

import (
	"net/http"
	"time"

	"reprise/backend/internal/domain"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// dateQuery reads a YYYY-MM-DD query parameter, defaulting to today (UTC).
func dateQuery(c *gin.Context, name string) (time.Time, bool) {
	raw := c.Query(name)
	if raw == "" {
		return domain.DateOf(time.Now().UTC()), true
	}
	return parseDateOrAbort(c, name, raw)
}

func parseDateOrAbort(c *gin.Context, name, raw string) (time.Time, bool) {
	d, err := domain.ParseDate(raw)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid "+name+", expected YYYY-MM-DD.")
		return time.Time{}, false
	}
	return d, true
}

func objectIDParam(c *gin.Context, name string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param(name))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid "+name+" format.")
		return primitive.NilObjectID, false
	}
	return id, true
}
