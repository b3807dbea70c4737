package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"happy_thoughts/internal/repository"
	"happy_thoughts/internal/service"

	"github.com/gin-gonic/gin"
)

// Request DTO for creating a thought.
type createThoughtRequest struct {
	Message  string `json:"message"`
	Category string `json:"category,omitempty"`
}

// Request DTO for updating a thought. Pointer fields distinguish
// "absent" from "set to empty".
type updateThoughtRequest struct {
	Message  *string `json:"message,omitempty"`
	Category *string `json:"category,omitempty"`
}

// parseListQuery maps the raw query parameters onto a typed listing
// query. Malformed values degrade silently to "no filter" / defaults;
// a public read endpoint never rejects its query string.
func parseListQuery(c *gin.Context) service.ListQuery {
	q := service.ListQuery{Page: 1, PageSize: service.DefaultPageSize}

	if v, err := strconv.Atoi(c.Query("heartsMin")); err == nil && v > 0 {
		q.MinHearts = v
	}
	q.Category = strings.TrimSpace(c.Query("category"))

	switch c.Query("sortBy") {
	case "hearts":
		q.Sort = repository.SortHearts
	case "date":
		q.Sort = repository.SortDate
	}

	if v, err := strconv.Atoi(c.Query("page")); err == nil && v > 0 {
		q.Page = v
	}
	if v, err := strconv.Atoi(c.Query("limit")); err == nil && v > 0 {
		q.PageSize = v
	}
	return q
}

// @Summary      List thoughts
// @Description  Filter by minimum hearts and category (case-insensitive), sort by hearts or date, paginate
// @Tags         thoughts
// @Produce      json
// @Param        heartsMin  query  int     false  "Minimum hearts"
// @Param        category   query  string  false  "Category filter"
// @Param        sortBy     query  string  false  "Sort order"  Enums(hearts,date)
// @Param        page       query  int     false  "1-indexed page"  default(1)
// @Param        limit      query  int     false  "Page size"  default(20)
// @Success      200  {object}  service.ThoughtPage
// @Failure      500  {object}  map[string]string
// @Router       /thoughts [get]
func (h *Handler) listThoughts(c *gin.Context) {
	page, err := h.services.Thoughts.List(c.Request.Context(), parseListQuery(c))
	if err != nil {
		h.writeServiceError(c, err, "thoughts_list_failed")
		return
	}
	c.JSON(http.StatusOK, page)
}

// @Summary      Get one thought
// @Tags         thoughts
// @Produce      json
// @Param        id  path  string  true  "Thought id"
// @Success      200  {object}  models.Thought
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /thoughts/{id} [get]
func (h *Handler) getThought(c *gin.Context) {
	t, err := h.services.Thoughts.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err, "thought_get_failed")
		return
	}
	c.JSON(http.StatusOK, t)
}

// @Summary      Create a thought
// @Description  With a valid token the thought is attributed to the caller; without a header it is anonymous
// @Tags         thoughts
// @Accept       json
// @Produce      json
// @Param        body  body  createThoughtRequest  true  "New thought"
// @Success      201  {object}  models.Thought
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Router       /thoughts [post]
// @Security     BearerAuth
func (h *Handler) createThought(c *gin.Context) {
	var input createThoughtRequest
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}

	t, err := h.services.Thoughts.Create(c.Request.Context(), service.NewThought{
		Message:  input.Message,
		Category: input.Category,
	}, currentUser(c))
	if err != nil {
		h.writeServiceError(c, err, "thought_create_failed")
		return
	}
	c.JSON(http.StatusCreated, t)
}

// @Summary      Update a thought
// @Description  Only the creator may edit; omitted fields stay unchanged
// @Tags         thoughts
// @Accept       json
// @Produce      json
// @Param        id    path  string                true  "Thought id"
// @Param        body  body  updateThoughtRequest  true  "Fields to change"
// @Success      200  {object}  models.Thought
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /thoughts/{id} [patch]
// @Security     BearerAuth
func (h *Handler) updateThought(c *gin.Context) {
	var input updateThoughtRequest
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}

	t, err := h.services.Thoughts.Update(c.Request.Context(), c.Param("id"), service.ThoughtEdit{
		Message:  input.Message,
		Category: input.Category,
	}, currentUser(c))
	if err != nil {
		h.writeServiceError(c, err, "thought_update_failed")
		return
	}
	c.JSON(http.StatusOK, t)
}

// @Summary      Delete a thought
// @Description  Only the creator may delete
// @Tags         thoughts
// @Produce      json
// @Param        id  path  string  true  "Thought id"
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /thoughts/{id} [delete]
// @Security     BearerAuth
func (h *Handler) deleteThought(c *gin.Context) {
	if err := h.services.Thoughts.Delete(c.Request.Context(), c.Param("id"), currentUser(c)); err != nil {
		h.writeServiceError(c, err, "thought_delete_failed")
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

// @Summary      Like a thought
// @Description  Increments hearts by one; no authentication required
// @Tags         thoughts
// @Produce      json
// @Param        id  path  string  true  "Thought id"
// @Success      200  {object}  models.Thought
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /thoughts/{id}/like [post]
func (h *Handler) likeThought(c *gin.Context) {
	t, err := h.services.Thoughts.Like(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err, "thought_like_failed")
		return
	}
	c.JSON(http.StatusOK, t)
}
