package handlers

import (
	"net/http"

	"blogcms/internal/models"
	"blogcms/internal/response"
)

type TagsResponse struct {
	Tags []models.Tag `json:"tags"`
}

type TagResponse struct {
	Tag *models.Tag `json:"tag"`
}

type CreateTagRequest struct {
	Name string `json:"name"`
}

func (h *Handlers) ListTags(w http.ResponseWriter, r *http.Request) {
	tags, err := h.TagService.ListTags(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	response.JSON(w, http.StatusOK, TagsResponse{Tags: tags})
}

// CreateTag answers 201 for a new tag and 200 when the name already existed.
func (h *Handlers) CreateTag(w http.ResponseWriter, r *http.Request) {
	var req CreateTagRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	tag, created, err := h.TagService.CreateOrGetTag(r.Context(), req.Name)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}

	response.JSON(w, status, TagResponse{Tag: tag})
}
