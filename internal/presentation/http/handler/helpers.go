package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/retailpk/fbrpos-api/internal/presentation/http/dto/response"
)

// parseUUIDParam parses a UUID path parameter, writing a 400 response on failure.
// Callers must return immediately when ok is false.
func parseUUIDParam(c *gin.Context, name, label string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		response.BadRequest(c, "Invalid "+label)
		return uuid.Nil, false
	}
	return id, true
}

// parseUUIDQuery parses an optional UUID query value; empty or malformed values
// yield nil
func parseUUIDQuery(value string) *uuid.UUID {
	if value == "" {
		return nil
	}
	id, err := uuid.Parse(value)
	if err != nil {
		return nil
	}
	return &id
}
