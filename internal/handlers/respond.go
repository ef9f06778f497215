// Package handlers adapts the services to gin. Every failure leaves through
// respondError so clients always see {"success":false,"message":...}.
package handlers

import (
	"errors"
	"io"
	"strconv"

	"project-tracker/backend/internal/apperror"
	"project-tracker/backend/internal/middleware"
	"project-tracker/backend/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/gofrs/uuid"
	"github.com/rs/zerolog"
)

const msgInvalidBody = "Invalid request body"

func respondError(c *gin.Context, logger zerolog.Logger, err error) {
	kind := apperror.KindOf(err)
	status := kind.StatusCode()
	message := apperror.PublicMessage(err)

	event := logger.Warn()
	if kind == apperror.KindInternal {
		event = logger.Error().Err(err)
	}
	event.
		Str("method", c.Request.Method).
		Str("path", c.Request.URL.Path).
		Int("status", status).
		Str("kind", kind.String()).
		Msg(message)

	c.AbortWithStatusJSON(status, gin.H{
		"success": false,
		"message": message,
	})
}

// bindJSON decodes the request body into dst. An empty body leaves dst
// untouched so presence checks report the missing fields.
func bindJSON(c *gin.Context, dst interface{}) error {
	if err := c.ShouldBindJSON(dst); err != nil && !errors.Is(err, io.EOF) {
		return apperror.Validation(msgInvalidBody)
	}
	return nil
}

// pageRequest reads page and limit. Values that are not integers fall back
// to the defaults applied by the services.
func pageRequest(c *gin.Context) services.PageRequest {
	page, _ := strconv.Atoi(c.Query("page"))
	limit, _ := strconv.Atoi(c.Query("limit"))
	return services.PageRequest{Page: page, Limit: limit}
}

// pathID parses the :id parameter. A malformed id cannot name any record,
// so it is reported with the caller's not-found message.
func pathID(c *gin.Context, notFound string) (uuid.UUID, error) {
	id, err := uuid.FromString(c.Param("id"))
	if err != nil {
		return uuid.Nil, apperror.NotFound(notFound)
	}
	return id, nil
}

// callerID is set by middleware.Authenticate on every protected route.
func callerID(c *gin.Context) (uuid.UUID, error) {
	id, ok := middleware.UserID(c)
	if !ok {
		return uuid.Nil, apperror.Auth("User not authenticated")
	}
	return id, nil
}
