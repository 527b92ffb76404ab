package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"sarf/internal/gateway/middleware"
	gatewaylexicon "sarf/internal/gateway/service/lexicon"
	"sarf/internal/lexicon"
	"sarf/internal/scheme"
)

var validate = validator.New()

type rootRequest struct {
	Root string `json:"root" validate:"required"`
}

type verifyRequest struct {
	Word string `json:"word" validate:"required"`
	Root string `json:"root" validate:"required"`
}

type identifyRequest struct {
	Word string `json:"word" validate:"required"`
}

type manageRequest struct {
	Root   string `json:"root" validate:"required"`
	Action string `json:"action" validate:"required,oneof=add delete"`
}

// Category is a pointer so an explicit "" is told apart from an absent field.
type addSchemeRequest struct {
	Name     string  `json:"name" validate:"required"`
	Category *string `json:"category"`
}

type schemeNameRequest struct {
	Name string `json:"name" validate:"required"`
}

type verifyResponse struct {
	Valid   bool   `json:"valid"`
	Scheme  string `json:"scheme,omitempty"`
	Message string `json:"message"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// LexiconHandler serves the JSON endpoints over the lexicon service.
type LexiconHandler struct {
	svc *gatewaylexicon.Service
	log *zap.Logger
}

func NewLexiconHandler(svc *gatewaylexicon.Service, log *zap.Logger) *LexiconHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &LexiconHandler{svc: svc, log: log}
}

func (h *LexiconHandler) HandleRoots(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"roots": h.svc.ListRoots()})
}

func (h *LexiconHandler) HandleSchemes(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"schemes": h.svc.ListSchemes()})
}

func (h *LexiconHandler) HandleGenerateAll(w http.ResponseWriter, r *http.Request) {
	var in rootRequest
	if !h.decode(w, r, &in) {
		return
	}
	out, err := h.svc.Generate(r.Context(), in.Root)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"results": out})
}

func (h *LexiconHandler) HandleVerify(w http.ResponseWriter, r *http.Request) {
	var in verifyRequest
	if !h.decode(w, r, &in) {
		return
	}
	ok, name := h.svc.Verify(r.Context(), in.Word, in.Root)
	if !ok {
		writeJSON(w, http.StatusOK, verifyResponse{
			Valid:   false,
			Message: "هذه الكلمة لا تنتمي لهذا الجذر وفق الأوزان المتاحة",
		})
		return
	}
	writeJSON(w, http.StatusOK, verifyResponse{
		Valid:   true,
		Scheme:  name,
		Message: fmt.Sprintf("تم التحقق بنجاح! الوزن: %s", name),
	})
}

func (h *LexiconHandler) HandleIdentify(w http.ResponseWriter, r *http.Request) {
	var in identifyRequest
	if !h.decode(w, r, &in) {
		return
	}
	out := h.svc.Identify(r.Context(), in.Word)
	if len(out) == 0 {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "لم يتم العثور على أصل لهذا المشتق"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"results": out})
}

func (h *LexiconHandler) HandleManage(w http.ResponseWriter, r *http.Request) {
	var in manageRequest
	if !h.decode(w, r, &in) {
		return
	}
	root := strings.TrimSpace(in.Root)
	var err error
	switch in.Action {
	case "add":
		err = h.svc.AddRoot(r.Context(), root)
	case "delete":
		err = h.svc.DeleteRoot(r.Context(), root)
	}
	if err != nil {
		h.fail(w, r, err)
		return
	}
	msg := fmt.Sprintf("تمت إضافة الجذر '%s' بنجاح", root)
	if in.Action == "delete" {
		msg = fmt.Sprintf("تم حذف الجذر '%s' بنجاح", root)
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": msg})
}

func (h *LexiconHandler) HandleAddScheme(w http.ResponseWriter, r *http.Request) {
	var in addSchemeRequest
	if !h.decode(w, r, &in) {
		return
	}
	category := scheme.DefaultCategory
	if in.Category != nil {
		category = strings.TrimSpace(*in.Category)
	}
	if err := h.svc.AddScheme(r.Context(), in.Name, category); err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": fmt.Sprintf("تمت إضافة الوزن '%s' بنجاح", strings.TrimSpace(in.Name))})
}

func (h *LexiconHandler) HandleDeleteScheme(w http.ResponseWriter, r *http.Request) {
	var in schemeNameRequest
	if !h.decode(w, r, &in) {
		return
	}
	if err := h.svc.RemoveScheme(r.Context(), in.Name); err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": fmt.Sprintf("تم حذف الوزن '%s' بنجاح", strings.TrimSpace(in.Name))})
}

func (h *LexiconHandler) HandleSave(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if err := h.svc.Save(r.Context()); err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func (h *LexiconHandler) HandleHealth(w http.ResponseWriter, _ *http.Request) {
	roots, schemes := h.svc.Store().Counts()
	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "roots": roots, "schemes": schemes})
}

// decode reads a POST body into dst and validates it. It writes the error
// response itself and reports whether the handler should continue.
func (h *LexiconHandler) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return false
	}
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid json body"})
		return false
	}
	if err := validate.Struct(dst); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: validationMessage(err)})
		return false
	}
	return true
}

func (h *LexiconHandler) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := StatusOf(err)
	if status == http.StatusInternalServerError {
		h.log.Error("lexicon request failed",
			zap.String("path", r.URL.Path),
			zap.String("request_id", middleware.RequestID(r.Context())),
			zap.Error(err))
	}
	writeJSON(w, status, errorResponse{Error: messageOf(err)})
}

// StatusOf maps lexicon errors to HTTP status codes.
func StatusOf(err error) int {
	switch {
	case errors.Is(err, lexicon.ErrInvalidToken), errors.Is(err, lexicon.ErrInvalidScheme):
		return http.StatusBadRequest
	case errors.Is(err, lexicon.ErrNotFound), errors.Is(err, lexicon.ErrUnknownScheme):
		return http.StatusNotFound
	case errors.Is(err, lexicon.ErrAlreadyExists):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

func messageOf(err error) string {
	switch {
	case errors.Is(err, lexicon.ErrInvalidToken):
		return "يرجى إدخال 3 أحرف عربية فقط"
	case errors.Is(err, lexicon.ErrInvalidScheme):
		return "يجب أن يتكون الوزن من أحرف عربية فقط"
	case errors.Is(err, lexicon.ErrNotFound):
		return "الجذر غير موجود في قاعدة البيانات"
	case errors.Is(err, lexicon.ErrUnknownScheme):
		return "الوزن غير موجود"
	case errors.Is(err, lexicon.ErrAlreadyExists):
		return "موجود بالفعل"
	}
	return err.Error()
}

func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, strings.ToLower(fe.Field())+" ("+fe.Tag()+")")
	}
	return "validation failed on " + strings.Join(fields, ", ")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
