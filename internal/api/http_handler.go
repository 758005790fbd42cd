package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"time"

	"product-catalog-manager/internal/catalog"
	"product-catalog-manager/internal/form"
	"product-catalog-manager/internal/session"
	"product-catalog-manager/internal/view"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

const serviceName = "ProductCatalogManager"

var (
	errNotListed   = errors.New("product is not in the current listing")
	errEmptyBody   = errors.New("request body is empty")
	errUnsupported = errors.New("unsupported content type")
)

// Options configures an HTTPHandler.
type Options struct {
	CookieName    string
	PreviewLength int
	Logger        *zap.Logger
}

// HTTPHandler serves the catalog page and the JSON intent API. Every request
// is bound to one session; intents of a session run one at a time.
type HTTPHandler struct {
	sessions   *session.Registry
	renderer   *view.Renderer
	cookieName string
	previewLen int
	log        *zap.Logger
}

// NewHTTPHandler creates a new HTTPHandler with dependencies.
func NewHTTPHandler(sessions *session.Registry, renderer *view.Renderer, opts Options) *HTTPHandler {
	h := &HTTPHandler{
		sessions:   sessions,
		renderer:   renderer,
		cookieName: opts.CookieName,
		previewLen: opts.PreviewLength,
		log:        opts.Logger,
	}
	if h.cookieName == "" {
		h.cookieName = "catalog_session"
	}
	if h.log == nil {
		h.log = zap.NewNop()
	}
	return h
}

// --- Helpers ---

// ErrorResponse defines the structure for JSON error responses.
type ErrorResponse struct {
	Error string `json:"error"`
}

// StateResponse is the body of every intent answered with JSON.
type StateResponse struct {
	catalog.State
	Error string `json:"error,omitempty"`
}

func (h *HTTPHandler) respondWithError(w http.ResponseWriter, code int, message string) {
	h.respondWithJSON(w, code, ErrorResponse{Error: message})
}

func (h *HTTPHandler) respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	body, err := json.Marshal(payload)
	if err != nil {
		h.log.Error("failed to encode JSON response", zap.Error(err))
		http.Error(w, `{"error": "Internal server error during JSON encoding"}`, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write(body)
}

// isFormPost reports whether r came from an HTML form on the page.
func isFormPost(r *http.Request) bool {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil {
		return false
	}
	return mediaType == "application/x-www-form-urlencoded" || mediaType == "multipart/form-data"
}

// decodeBody fills dst from a JSON body, or hands form posts to fromForm.
func decodeBody(r *http.Request, dst interface{}, fromForm func(*http.Request)) error {
	if isFormPost(r) {
		if err := r.ParseForm(); err != nil {
			return fmt.Errorf("invalid form body: %w", err)
		}
		fromForm(r)
		return nil
	}
	if ct := r.Header.Get("Content-Type"); ct != "" {
		mediaType, _, err := mime.ParseMediaType(ct)
		if err != nil || mediaType != "application/json" {
			return errUnsupported
		}
	}
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return errEmptyBody
		}
		return fmt.Errorf("invalid request payload: %w", err)
	}
	return nil
}

func decodeFields(r *http.Request) (form.Fields, error) {
	var fields form.Fields
	err := decodeBody(r, &fields, func(r *http.Request) {
		fields = form.Fields{
			Name:        r.PostFormValue("name"),
			Description: r.PostFormValue("description"),
			Price:       r.PostFormValue("price"),
			Stock:       r.PostFormValue("stock"),
		}
	})
	return fields, err
}

// statusFor maps an intent error to an HTTP status.
func statusFor(err error) int {
	var verr *form.ValidationError
	switch {
	case err == nil:
		return http.StatusOK
	case errors.As(err, &verr):
		return http.StatusUnprocessableEntity
	case errors.Is(err, catalog.ErrDialogClosed):
		return http.StatusConflict
	case errors.Is(err, errNotListed):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// apply runs fn against the request's session controller and answers with
// the resulting state. Form posts from the page are redirected back to it.
func (h *HTTPHandler) apply(w http.ResponseWriter, r *http.Request, fn func(*catalog.Controller) error) {
	sess := sessionFromContext(r.Context())

	var st catalog.State
	var err error
	sess.Do(func(c *catalog.Controller) {
		err = fn(c)
		st = c.State()
	})

	code := statusFor(err)
	if code == http.StatusInternalServerError {
		h.log.Error("catalog intent failed", zap.String("path", r.URL.Path), zap.Error(err))
	} else if err != nil {
		h.log.Debug("catalog intent rejected", zap.String("path", r.URL.Path), zap.Error(err))
	}

	if isFormPost(r) {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	resp := StateResponse{State: st}
	if err != nil {
		resp.Error = err.Error()
	}
	h.respondWithJSON(w, code, resp)
}

func (h *HTTPHandler) cardActions(c *catalog.Controller) view.CardActions {
	return view.CardActions{
		OnView:   c.OpenDetails,
		OnEdit:   c.OpenEdit,
		OnDelete: c.OpenDelete,
	}
}

func (h *HTTPHandler) page(c *catalog.Controller) view.Page {
	st := c.State()
	del := view.NewDeleteConfirmation(st.Dialogs.Delete, st.PendingDeleteName, c.ConfirmDelete, c.CancelDelete)
	return view.NewPage(st, h.cardActions(c), del, h.previewLen)
}

// --- Session binding ---

type sessionKey struct{}

func sessionFromContext(ctx context.Context) *session.Session {
	s, _ := ctx.Value(sessionKey{}).(*session.Session)
	return s
}

// withSession binds the request to the caller's session, starting one and
// setting its cookie when needed.
func (h *HTTPHandler) withSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var id string
		if cookie, err := r.Cookie(h.cookieName); err == nil {
			id = cookie.Value
		}
		sess, created, err := h.sessions.Acquire(id)
		if err != nil {
			h.log.Error("failed to start session", zap.Error(err))
			h.respondWithError(w, http.StatusInternalServerError, "Failed to start session")
			return
		}
		if created {
			http.SetCookie(w, &http.Cookie{
				Name:     h.cookieName,
				Value:    sess.ID(),
				Path:     "/",
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), sessionKey{}, sess)))
	})
}

// --- Page ---

func (h *HTTPHandler) Page(w http.ResponseWriter, r *http.Request) {
	var p view.Page
	sessionFromContext(r.Context()).Do(func(c *catalog.Controller) {
		p = h.page(c)
	})

	var buf bytes.Buffer
	if err := h.renderer.Render(&buf, p); err != nil {
		h.log.Error("failed to render page", zap.Error(err))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

func (h *HTTPHandler) Healthz(w http.ResponseWriter, r *http.Request) {
	h.respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"status":      "healthy",
		"serviceName": serviceName,
		"timestamp":   time.Now().UTC().Format(time.RFC3339),
		"sessions":    h.sessions.Len(),
	})
}

// --- Catalog intents ---

func (h *HTTPHandler) GetState(w http.ResponseWriter, r *http.Request) {
	h.apply(w, r, func(*catalog.Controller) error { return nil })
}

// SearchInput is the body of a search intent.
type SearchInput struct {
	Query string `json:"query"`
}

func (h *HTTPHandler) Search(w http.ResponseWriter, r *http.Request) {
	var input SearchInput
	err := decodeBody(r, &input, func(r *http.Request) {
		input.Query = r.PostFormValue("query")
	})
	if err != nil {
		h.respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	h.apply(w, r, func(c *catalog.Controller) error {
		c.SetSearchQuery(input.Query)
		return nil
	})
}

func (h *HTTPHandler) OpenAdd(w http.ResponseWriter, r *http.Request) {
	h.apply(w, r, func(c *catalog.Controller) error {
		c.OpenAdd()
		return nil
	})
}

func (h *HTTPHandler) CancelAdd(w http.ResponseWriter, r *http.Request) {
	h.apply(w, r, func(c *catalog.Controller) error {
		c.CancelAdd()
		return nil
	})
}

func (h *HTTPHandler) SubmitAdd(w http.ResponseWriter, r *http.Request) {
	fields, err := decodeFields(r)
	if err != nil {
		h.respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	h.apply(w, r, func(c *catalog.Controller) error {
		return c.SubmitAdd(fields)
	})
}

// cardIntent looks up the card of the listed product named in the path and
// lets pick emit one of its intents.
func (h *HTTPHandler) cardIntent(pick func(view.Card)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		productID := chi.URLParam(r, "productId")
		h.apply(w, r, func(c *catalog.Controller) error {
			card, ok := h.page(c).Card(productID)
			if !ok {
				return fmt.Errorf("product %q: %w", productID, errNotListed)
			}
			pick(card)
			return nil
		})
	}
}

func (h *HTTPHandler) SubmitEdit(w http.ResponseWriter, r *http.Request) {
	fields, err := decodeFields(r)
	if err != nil {
		h.respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	h.apply(w, r, func(c *catalog.Controller) error {
		return c.SubmitEditForm(fields)
	})
}

func (h *HTTPHandler) CancelEdit(w http.ResponseWriter, r *http.Request) {
	h.apply(w, r, func(c *catalog.Controller) error {
		c.CancelEdit()
		return nil
	})
}

func (h *HTTPHandler) CloseDetails(w http.ResponseWriter, r *http.Request) {
	h.apply(w, r, func(c *catalog.Controller) error {
		c.CloseDetails()
		return nil
	})
}

// answerDelete resolves the delete prompt with confirm or cancel.
func (h *HTTPHandler) answerDelete(confirm bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.apply(w, r, func(c *catalog.Controller) error {
			prompt := h.page(c).Delete
			var answered bool
			if confirm {
				answered = prompt.Confirm()
			} else {
				answered = prompt.Cancel()
			}
			if !answered {
				return fmt.Errorf("delete: %w", catalog.ErrDialogClosed)
			}
			return nil
		})
	}
}

// --- Route Registration ---

// RegisterRoutes sets up the HTTP routes for the service.
func (h *HTTPHandler) RegisterRoutes(r chi.Router) {
	r.Get("/api/v1/healthz", h.Healthz)

	r.Group(func(r chi.Router) {
		r.Use(h.withSession)

		r.Get("/", h.Page)

		r.Route("/api/v1/catalog", func(r chi.Router) {
			r.Get("/", h.GetState)
			r.Post("/search", h.Search)

			r.Route("/add", func(r chi.Router) {
				r.Post("/open", h.OpenAdd)
				r.Post("/cancel", h.CancelAdd)
				r.Post("/submit", h.SubmitAdd)
			})

			r.Route("/products/{productId}", func(r chi.Router) {
				r.Post("/view", h.cardIntent(view.Card.View))
				r.Post("/edit", h.cardIntent(view.Card.Edit))
				r.Post("/delete", h.cardIntent(view.Card.Delete))
			})

			r.Post("/edit/submit", h.SubmitEdit)
			r.Post("/edit/cancel", h.CancelEdit)
			r.Post("/details/close", h.CloseDetails)
			r.Post("/delete/confirm", h.answerDelete(true))
			r.Post("/delete/cancel", h.answerDelete(false))
		})
	})
}
