package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"postsync/pkg/posts"
	"postsync/pkg/remote"
	"postsync/pkg/store"
)

type PostHandler struct {
	Store  *store.Store
	Remote *remote.Controller
	ByUser *store.ByUserSelector
	Logger *zap.SugaredLogger
}

func MarshalAndWrite(w http.ResponseWriter, data interface{}) {
	resp, err := json.Marshal(data)
	if err != nil {
		http.Error(w, "Marshaling error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, err = w.Write(resp)
	if err != nil {
		http.Error(w, "Writing response error", http.StatusInternalServerError)
	}
}

func jsonError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	resp, err := json.Marshal(map[string]string{"message": msg})
	if err != nil {
		return
	}
	_, _ = w.Write(resp)
}

type draftForm struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	UserID  int    `json:"userId"`
}

func (ph *PostHandler) readDraft(w http.ResponseWriter, r *http.Request) (draftForm, bool) {
	form := draftForm{}
	body, err := io.ReadAll(r.Body)
	defer r.Body.Close()
	if err != nil {
		jsonError(w, http.StatusBadRequest, "cant read request body")
		return form, false
	}
	if err := json.Unmarshal(body, &form); err != nil {
		jsonError(w, http.StatusBadRequest, "cant unpack payload")
		return form, false
	}
	if err := posts.ValidateDraft(form.Title, form.Content, form.UserID); err != nil {
		jsonError(w, http.StatusBadRequest, err.Error())
		return form, false
	}
	return form, true
}

func (ph *PostHandler) List(w http.ResponseWriter, r *http.Request) {
	MarshalAndWrite(w, ph.Store.AllPosts())
}

func (ph *PostHandler) ListIDs(w http.ResponseWriter, r *http.Request) {
	MarshalAndWrite(w, ph.Store.PostIDs())
}

func (ph *PostHandler) Get(w http.ResponseWriter, r *http.Request) {
	postID, ok := mux.Vars(r)["POST_ID"]
	if !ok {
		jsonError(w, http.StatusBadRequest, "Request URL hasn't POST_ID")
		return
	}
	post, err := ph.Store.PostByID(postID)
	if err != nil {
		jsonError(w, http.StatusNotFound, err.Error())
		return
	}
	MarshalAndWrite(w, post)
}

func (ph *PostHandler) ListByUser(w http.ResponseWriter, r *http.Request) {
	rawID, ok := mux.Vars(r)["USER_ID"]
	if !ok {
		jsonError(w, http.StatusBadRequest, "Request URL hasn't USER_ID")
		return
	}
	userID, err := strconv.Atoi(rawID)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "USER_ID must be a number")
		return
	}
	MarshalAndWrite(w, ph.ByUser.Select(userID))
}

func (ph *PostHandler) Status(w http.ResponseWriter, r *http.Request) {
	MarshalAndWrite(w, map[string]interface{}{
		"status": ph.Store.Status(),
		"error":  ph.Store.Error(),
		"count":  ph.Store.Count(),
	})
}

// Add creates a post locally, without touching the remote resource.
func (ph *PostHandler) Add(w http.ResponseWriter, r *http.Request) {
	form, ok := ph.readDraft(w, r)
	if !ok {
		return
	}
	post, err := ph.Store.PostAdded(form.Title, form.Content, form.UserID)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, err.Error())
		return
	}
	MarshalAndWrite(w, post)
	ph.Logger.Infof("Add new local post with ID: %v", post.ID)
}

// AddRemote creates a post through the remote resource.
func (ph *PostHandler) AddRemote(w http.ResponseWriter, r *http.Request) {
	form, ok := ph.readDraft(w, r)
	if !ok {
		return
	}
	post, err := ph.Remote.AddNew(r.Context(), remote.Draft{
		Title:   form.Title,
		Content: form.Content,
		UserID:  form.UserID,
	})
	if err != nil {
		jsonError(w, http.StatusBadGateway, err.Error())
		return
	}
	MarshalAndWrite(w, post)
}

func (ph *PostHandler) Update(w http.ResponseWriter, r *http.Request) {
	postID, ok := mux.Vars(r)["POST_ID"]
	if !ok {
		jsonError(w, http.StatusBadRequest, "Request URL hasn't POST_ID")
		return
	}
	form, ok := ph.readDraft(w, r)
	if !ok {
		return
	}
	existing, err := ph.Store.PostByID(postID)
	if err != nil {
		jsonError(w, http.StatusNotFound, err.Error())
		return
	}
	existing.Title = form.Title
	existing.Content = form.Content
	existing.UserID = form.UserID
	settled, err := ph.Remote.Update(r.Context(), existing)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if settled.ID == "" {
		MarshalAndWrite(w, map[string]string{"message": "update could not complete"})
		return
	}
	MarshalAndWrite(w, settled)
}

func (ph *PostHandler) Delete(w http.ResponseWriter, r *http.Request) {
	postID, ok := mux.Vars(r)["POST_ID"]
	if !ok {
		jsonError(w, http.StatusBadRequest, "Request URL hasn't POST_ID")
		return
	}
	post, err := ph.Store.PostByID(postID)
	if err != nil {
		jsonError(w, http.StatusNotFound, err.Error())
		return
	}
	if diagnostic := ph.Remote.Delete(r.Context(), post); diagnostic != "" {
		MarshalAndWrite(w, map[string]string{"message": diagnostic})
		return
	}
	MarshalAndWrite(w, map[string]string{"message": "success"})
}

func (ph *PostHandler) React(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	postID, ok := vars["POST_ID"]
	if !ok {
		jsonError(w, http.StatusBadRequest, "Request URL hasn't POST_ID")
		return
	}
	kind, ok := vars["REACTION"]
	if !ok {
		jsonError(w, http.StatusBadRequest, "Request URL hasn't REACTION")
		return
	}
	ph.Store.ReactionAdded(postID, posts.Reaction(kind))
	post, err := ph.Store.PostByID(postID)
	if err != nil {
		jsonError(w, http.StatusNotFound, err.Error())
		return
	}
	MarshalAndWrite(w, post)
	ph.Logger.Infof("Add new reaction: %v at post with ID: %v", kind, postID)
}

// Refresh re-runs the full fetch; the outcome lands in status/error rather
// than the response code.
func (ph *PostHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	_ = ph.Remote.FetchAll(r.Context())
	ph.Status(w, r)
}

func (ph *PostHandler) IncreaseCount(w http.ResponseWriter, r *http.Request) {
	ph.Store.IncreaseCount()
	MarshalAndWrite(w, map[string]int{"count": ph.Store.Count()})
}
