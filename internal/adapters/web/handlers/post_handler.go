package handlers

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/lcalzada-xor/snapgram/internal/adapters/web/middleware"
	"github.com/lcalzada-xor/snapgram/internal/adapters/web/response"
	"github.com/lcalzada-xor/snapgram/internal/core/domain"
	"github.com/lcalzada-xor/snapgram/internal/core/ports"
	"github.com/sirupsen/logrus"
)

// PostHandler serves post creation, editing and listing.
type PostHandler struct {
	Service ports.PostService
	Log     logrus.FieldLogger
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(service ports.PostService, log logrus.FieldLogger) *PostHandler {
	return &PostHandler{Service: service, Log: log}
}

// HandleCreate publishes a post with an optional postPhoto file.
func (h *PostHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFrom(r.Context())
	if !ok {
		response.Error(w, r, h.Log, domain.ErrUnauthorized)
		return
	}

	if err := parseMultipart(w, r); err != nil {
		response.Error(w, r, h.Log, err)
		return
	}
	defer r.MultipartForm.RemoveAll()

	in := domain.CreatePostInput{Description: r.FormValue("description")}
	if err := validateInput(in); err != nil {
		response.Error(w, r, h.Log, err)
		return
	}

	photo, release, err := formFile(r, "postPhoto")
	if err != nil {
		response.Error(w, r, h.Log, err)
		return
	}
	defer release()

	view, err := h.Service.Create(r.Context(), claims.UserID, in, photo)
	if err != nil {
		response.Error(w, r, h.Log, err)
		return
	}
	response.JSON(w, http.StatusCreated, view)
}

// HandleGet returns a single post. Ids that are not integers do not exist.
func (h *PostHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		response.Error(w, r, h.Log, domain.NotFound("post"))
		return
	}

	view, err := h.Service.FindByID(r.Context(), id)
	if err != nil {
		response.Error(w, r, h.Log, err)
		return
	}
	response.JSON(w, http.StatusOK, view)
}

func (h *PostHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFrom(r.Context())
	if !ok {
		response.Error(w, r, h.Log, domain.ErrUnauthorized)
		return
	}
	id, ok := pathID(r, "id")
	if !ok {
		response.Error(w, r, h.Log, domain.NotFound("post"))
		return
	}

	if err := parseMultipart(w, r); err != nil {
		response.Error(w, r, h.Log, err)
		return
	}
	defer r.MultipartForm.RemoveAll()

	in := domain.UpdatePostInput{Description: r.FormValue("description")}
	if err := validateInput(in); err != nil {
		response.Error(w, r, h.Log, err)
		return
	}

	photo, release, err := formFile(r, "postPhoto")
	if err != nil {
		response.Error(w, r, h.Log, err)
		return
	}
	defer release()

	if err := h.Service.Update(r.Context(), claims.UserID, id, in, photo); err != nil {
		response.Error(w, r, h.Log, err)
		return
	}
	response.NoContent(w)
}

func (h *PostHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFrom(r.Context())
	if !ok {
		response.Error(w, r, h.Log, domain.ErrUnauthorized)
		return
	}
	id, ok := pathID(r, "id")
	if !ok {
		response.Error(w, r, h.Log, domain.NotFound("post"))
		return
	}

	if err := h.Service.Delete(r.Context(), claims.UserID, id); err != nil {
		response.Error(w, r, h.Log, err)
		return
	}
	response.NoContent(w)
}

// HandleListMine pages through the caller's posts.
func (h *PostHandler) HandleListMine(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFrom(r.Context())
	if !ok {
		response.Error(w, r, h.Log, domain.ErrUnauthorized)
		return
	}
	h.list(w, r, claims.UserID)
}

// HandleListByUser pages through the posts of any user.
func (h *PostHandler) HandleListByUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(r, "userId")
	if !ok {
		response.Error(w, r, h.Log, domain.NotFound("user"))
		return
	}
	h.list(w, r, userID)
}

func (h *PostHandler) list(w http.ResponseWriter, r *http.Request, userID int64) {
	q := r.URL.Query()
	p := domain.NewPaginator(q.Get("pageNumber"), q.Get("pageSize"))

	page, err := h.Service.ListByUser(r.Context(), userID, p)
	if err != nil {
		response.Error(w, r, h.Log, err)
		return
	}
	response.JSON(w, http.StatusOK, page)
}

func pathID(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)[name], 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
