package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"bersekolah/gateway/internal/documents"
	"bersekolah/gateway/internal/middleware"
	"bersekolah/gateway/internal/models"
)

func (h HandlerSet) DocumentTypes(c *gin.Context) {
	sess, ok := middleware.CurrentSession(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
		return
	}

	category := c.DefaultQuery("category", documents.CategoryWajib)
	types, err := h.documents.ListTypes(c.Request.Context(), sess, category)
	if err != nil {
		h.writeUpstreamError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"types": types})
}

func (h HandlerSet) ListDocuments(c *gin.Context) {
	sess, ok := middleware.CurrentSession(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
		return
	}

	category := c.DefaultQuery("category", documents.CategoryWajib)
	docs, err := h.documents.ListUploaded(c.Request.Context(), sess, category)
	if err != nil {
		h.writeUpstreamError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"documents": docs})
}

func (h HandlerSet) UploadDocument(c *gin.Context) {
	sess, ok := middleware.CurrentSession(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
		return
	}

	docType := models.DocumentType(c.Param("type"))

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file_required"})
		return
	}
	defer file.Close()

	note := c.PostForm("keterangan")

	doc, err := h.documents.Upload(c.Request.Context(), sess, docType, header.Filename, file, note)
	if err != nil {
		if errors.Is(err, documents.ErrUnknownType) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown_document_type"})
			return
		}
		h.writeUpstreamError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"document": doc})
}
