package handlers

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"blogcms/internal/apperrors"
	"blogcms/internal/models"
	"blogcms/internal/response"
	"blogcms/internal/service"
	"blogcms/internal/storage"
)

type PostResponse struct {
	Post *models.Post `json:"post"`
}

// parsePostQuery reads page, limit, search and tagId. Unparseable numbers fall
// back to the defaults and an unparseable tagId is ignored.
func parsePostQuery(r *http.Request, userID int64) models.PostQuery {
	query := r.URL.Query()

	page, err := strconv.Atoi(query.Get("page"))
	if err != nil {
		page = 1
	}

	limit, err := strconv.Atoi(query.Get("limit"))
	if err != nil {
		limit = service.DefaultPageLimit
	}

	q := service.NormalizePostQuery(models.PostQuery{
		UserID: userID,
		Page:   page,
		Limit:  limit,
		Search: query.Get("search"),
	})

	if tagID, err := strconv.ParseInt(query.Get("tagId"), 10, 64); err == nil {
		q.TagID = &tagID
	}

	return q
}

func (h *Handlers) ListPosts(w http.ResponseWriter, r *http.Request) {
	principal, err := principalFrom(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	page, err := h.PostService.ListPosts(r.Context(), parsePostQuery(r, principal.UserID))
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	response.JSON(w, http.StatusOK, page)
}

func (h *Handlers) GetPost(w http.ResponseWriter, r *http.Request) {
	principal, err := principalFrom(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	postID, err := pathID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	post, err := h.PostService.GetPost(r.Context(), principal.UserID, postID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	response.JSON(w, http.StatusOK, PostResponse{Post: post})
}

func (h *Handlers) CreatePost(w http.ResponseWriter, r *http.Request) {
	principal, err := principalFrom(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	var in models.CreatePostInput
	if err := decodeJSON(w, r, &in); err != nil {
		h.writeError(w, r, err)
		return
	}

	post, err := h.PostService.CreatePost(r.Context(), principal.UserID, in)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	response.JSON(w, http.StatusCreated, PostResponse{Post: post})
}

// UpdatePost applies a partial update: fields missing from the body are left
// untouched, and an explicit null clears excerpt or featuredImage.
func (h *Handlers) UpdatePost(w http.ResponseWriter, r *http.Request) {
	principal, err := principalFrom(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	postID, err := pathID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	var upd models.PostUpdate
	if err := decodeJSON(w, r, &upd); err != nil {
		h.writeError(w, r, err)
		return
	}

	post, err := h.PostService.UpdatePost(r.Context(), principal.UserID, postID, upd)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	response.JSON(w, http.StatusOK, PostResponse{Post: post})
}

func (h *Handlers) DeletePost(w http.ResponseWriter, r *http.Request) {
	principal, err := principalFrom(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	postID, err := pathID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	if err := h.PostService.DeletePost(r.Context(), principal.UserID, postID); err != nil {
		h.writeError(w, r, err)
		return
	}

	response.Success(w)
}

// UploadFeaturedImage takes a multipart "image" file and makes it the post's
// featured image.
func (h *Handlers) UploadFeaturedImage(w http.ResponseWriter, r *http.Request) {
	principal, err := principalFrom(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	postID, err := pathID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	if r.ContentLength > h.Cfg.MaxUploadSize {
		response.Error(w, http.StatusRequestEntityTooLarge, "image is too large")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.Cfg.MaxUploadSize)
	if err := r.ParseMultipartForm(h.Cfg.MaxUploadSize); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			response.Error(w, http.StatusRequestEntityTooLarge, "image is too large")
			return
		}
		h.writeError(w, r, apperrors.Validation("invalid multipart form"))
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		h.writeError(w, r, apperrors.ValidationWithDetails("validation failed", map[string]string{"image": "is required"}))
		return
	}
	defer file.Close()

	declared, ok := storage.ImageContentType(header.Filename)
	if !ok || sniffContentType(file) != declared {
		h.writeError(w, r, apperrors.ValidationWithDetails("validation failed",
			map[string]string{"image": "must be a jpeg, png, gif or webp image"}))
		return
	}

	post, err := h.PostService.SetFeaturedImage(r.Context(), principal.UserID, postID, header.Filename, file, header.Size)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	response.JSON(w, http.StatusOK, PostResponse{Post: post})
}

// sniffContentType inspects the first bytes of f and rewinds it.
func sniffContentType(f io.ReadSeeker) string {
	buf := make([]byte, 512)
	n, _ := io.ReadFull(f, buf)
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return ""
	}
	return http.DetectContentType(buf[:n])
}
