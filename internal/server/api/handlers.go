package api

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nvoronin/daybook/internal/models"
	"github.com/nvoronin/daybook/internal/server/records"
)

const maxPushSize = 4 << 20 // 4MB

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// requestScope validates the collection and owner every record route needs.
func requestScope(c *gin.Context) (collection, owner string, ok bool) {
	collection = c.Param("collection")
	valid := false
	for _, kind := range models.Kinds() {
		if collection == string(kind) {
			valid = true
			break
		}
	}
	if !valid {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown collection"})
		return "", "", false
	}

	owner = c.Query("owner")
	if owner == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "owner is required"})
		return "", "", false
	}
	return collection, owner, true
}

func (s *Server) handleList(c *gin.Context) {
	collection, owner, ok := requestScope(c)
	if !ok {
		return
	}

	rows, err := s.repo.List(c.Request.Context(), owner, collection, c.Query("from"), c.Query("to"))
	if err != nil {
		s.log.Error(c.Request.Context(), "list failed", "collection", collection, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "storage failure"})
		return
	}

	payloads := make([]json.RawMessage, 0, len(rows))
	for _, row := range rows {
		payloads = append(payloads, row.Payload)
	}
	c.JSON(http.StatusOK, payloads)
}

func (s *Server) handleUpsert(c *gin.Context) {
	collection, owner, ok := requestScope(c)
	if !ok {
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxPushSize)

	var payloads []json.RawMessage
	if err := c.ShouldBindJSON(&payloads); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "body must be a JSON array of records"})
		return
	}

	rows := make([]records.Row, 0, len(payloads))
	for _, payload := range payloads {
		row, err := records.NewRow(owner, collection, payload)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		rows = append(rows, row)
	}

	if err := s.repo.Upsert(c.Request.Context(), rows); err != nil {
		s.log.Error(c.Request.Context(), "upsert failed", "collection", collection, "count", len(rows), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "storage failure"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"upserted": len(rows)})
}

func (s *Server) handleDelete(c *gin.Context) {
	collection, owner, ok := requestScope(c)
	if !ok {
		return
	}

	if err := s.repo.Delete(c.Request.Context(), owner, collection, c.Param("id")); err != nil {
		s.log.Error(c.Request.Context(), "delete failed", "collection", collection, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "storage failure"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": c.Param("id")})
}

func (s *Server) handleCount(c *gin.Context) {
	collection, owner, ok := requestScope(c)
	if !ok {
		return
	}

	n, err := s.repo.Count(c.Request.Context(), owner, collection)
	if err != nil {
		s.log.Error(c.Request.Context(), "count failed", "collection", collection, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "storage failure"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": n})
}
