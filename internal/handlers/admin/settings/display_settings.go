package settings

import (
	"bytes"
	"embed"
	"html/template"
	"mime"
	"net/http"

	"github.com/makehaven/tasks-display/internal/metrics"
	"github.com/makehaven/tasks-display/internal/models"
	"github.com/makehaven/tasks-display/internal/services"
	"github.com/makehaven/tasks-display/pkg/debug"
	"github.com/makehaven/tasks-display/pkg/httputil"
	"github.com/makehaven/tasks-display/pkg/jwt"
)

// FormTokenField is the hidden input carrying the form token.
const FormTokenField = "form_token"

//go:embed templates/settings_form.html.tmpl
var formFS embed.FS

var settingsFormTemplate = template.Must(template.ParseFS(formFS, "templates/settings_form.html.tmpl"))

// DisplaySettings is the JSON shape of the display settings.
type DisplaySettings struct {
	CodeWord string `json:"code_word"`
}

type formPage struct {
	Form      *services.FormDescriptor
	FormToken string
	Message   string
	Error     *services.ValidationError
}

func (p formPage) HasError(field string) bool {
	return p.Error != nil && p.Error.Field == field
}

// DisplaySettingsHandler handles the tasks display settings for admins
type DisplaySettingsHandler struct {
	service *services.SettingsService
	metrics *metrics.Metrics
}

// NewDisplaySettingsHandler creates a new display settings handler
func NewDisplaySettingsHandler(service *services.SettingsService, m *metrics.Metrics) *DisplaySettingsHandler {
	return &DisplaySettingsHandler{
		service: service,
		metrics: m,
	}
}

// GetSettingsForm renders the settings form
func (h *DisplaySettingsHandler) GetSettingsForm(w http.ResponseWriter, r *http.Request) {
	debug.Debug("Rendering display settings form")

	form, err := h.service.RenderSettingsForm(r.Context())
	if err != nil {
		debug.Error("Failed to build display settings form: %v", err)
		http.Error(w, "Failed to load display settings", http.StatusInternalServerError)
		return
	}

	h.renderForm(w, r, http.StatusOK, formPage{Form: form})
}

// SubmitSettingsForm handles the form-encoded settings submission
func (h *DisplaySettingsHandler) SubmitSettingsForm(w http.ResponseWriter, r *http.Request) {
	debug.Info("Received display settings form submission")

	if err := r.ParseForm(); err != nil {
		debug.Error("Failed to parse display settings form: %v", err)
		h.metrics.ObserveSettings(metrics.EndpointSettings, metrics.ResultInvalid)
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}
	userID, _ := jwt.GetUserID(r.Context())
	if err := jwt.ValidateFormToken(r.PostForm.Get(FormTokenField), userID, services.SettingsFormID); err != nil {
		debug.Warning("Rejected display settings submission from user %q: %v", userID, err)
		h.metrics.ObserveSettings(metrics.EndpointSettings, metrics.ResultDenied)
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}
	submitted := r.PostForm.Get(models.DisplayConfigCodeWordKey)

	err := h.service.SubmitSettingsForm(r.Context(), submitted)
	if validationErr, ok := services.IsValidationError(err); ok {
		h.metrics.ObserveSettings(metrics.EndpointSettings, metrics.ResultInvalid)

		form, formErr := h.service.RenderSettingsForm(r.Context())
		if formErr != nil {
			debug.Error("Failed to build display settings form: %v", formErr)
			http.Error(w, "Failed to load display settings", http.StatusInternalServerError)
			return
		}
		for i := range form.Fields {
			if form.Fields[i].Name == validationErr.Field {
				form.Fields[i].DefaultValue = submitted
			}
		}
		h.renderForm(w, r, http.StatusUnprocessableEntity, formPage{Form: form, Error: validationErr})
		return
	}
	if err != nil {
		debug.Error("Failed to save display settings: %v", err)
		h.metrics.ObserveSettings(metrics.EndpointSettings, metrics.ResultError)
		http.Error(w, "Failed to save display settings", http.StatusInternalServerError)
		return
	}

	h.metrics.ObserveSettings(metrics.EndpointSettings, metrics.ResultOK)
	debug.Info("Display code word changed by admin %s", userID)

	form, err := h.service.RenderSettingsForm(r.Context())
	if err != nil {
		debug.Error("Failed to build display settings form: %v", err)
		http.Error(w, "Failed to load display settings", http.StatusInternalServerError)
		return
	}
	h.renderForm(w, r, http.StatusOK, formPage{Form: form, Message: services.SettingsSavedMessage})
}

// GetSettings returns the display settings as JSON
func (h *DisplaySettingsHandler) GetSettings(w http.ResponseWriter, r *http.Request) {
	debug.Debug("Getting display settings")

	cfg, err := h.service.CurrentConfig(r.Context())
	if err != nil {
		debug.Error("Failed to get display settings: %v", err)
		httputil.RespondWithError(w, http.StatusInternalServerError, "Failed to get display settings")
		return
	}

	httputil.RespondWithJSON(w, http.StatusOK, DisplaySettings{CodeWord: cfg.CodeWord})
}

// UpdateSettings updates the display settings from a JSON body
func (h *DisplaySettingsHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	debug.Info("Received request to update display settings")

	if mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type")); err != nil || mediaType != "application/json" {
		h.metrics.ObserveSettings(metrics.EndpointSettingsAPI, metrics.ResultInvalid)
		httputil.RespondWithError(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json")
		return
	}

	var req DisplaySettings
	if err := httputil.ParseJSONBody(r, &req); err != nil {
		debug.Error("Failed to decode display settings request: %v", err)
		h.metrics.ObserveSettings(metrics.EndpointSettingsAPI, metrics.ResultInvalid)
		httputil.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	err := h.service.SubmitSettingsForm(r.Context(), req.CodeWord)
	if validationErr, ok := services.IsValidationError(err); ok {
		h.metrics.ObserveSettings(metrics.EndpointSettingsAPI, metrics.ResultInvalid)
		httputil.RespondWithError(w, http.StatusBadRequest, validationErr.Message)
		return
	}
	if err != nil {
		debug.Error("Failed to update display settings: %v", err)
		h.metrics.ObserveSettings(metrics.EndpointSettingsAPI, metrics.ResultError)
		httputil.RespondWithError(w, http.StatusInternalServerError, "Failed to update display settings")
		return
	}

	h.metrics.ObserveSettings(metrics.EndpointSettingsAPI, metrics.ResultOK)
	if userID, ok := jwt.GetUserID(r.Context()); ok {
		debug.Info("Display code word changed by admin %s", userID)
	}

	cfg, err := h.service.CurrentConfig(r.Context())
	if err != nil {
		debug.Error("Failed to reload display settings: %v", err)
		httputil.RespondWithError(w, http.StatusInternalServerError, "Failed to get display settings")
		return
	}

	httputil.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"message":  services.SettingsSavedMessage,
		"settings": DisplaySettings{CodeWord: cfg.CodeWord},
	})
}

func (h *DisplaySettingsHandler) renderForm(w http.ResponseWriter, r *http.Request, code int, page formPage) {
	userID, _ := jwt.GetUserID(r.Context())
	token, err := jwt.GenerateFormToken(userID, page.Form.ID)
	if err != nil {
		debug.Error("Failed to issue form token: %v", err)
		http.Error(w, "Failed to render display settings", http.StatusInternalServerError)
		return
	}
	page.FormToken = token

	var buf bytes.Buffer
	if err := settingsFormTemplate.Execute(&buf, page); err != nil {
		debug.Error("Failed to render display settings form: %v", err)
		http.Error(w, "Failed to render display settings", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Cache-Control", "no-store")
	httputil.RespondWithHTML(w, code, buf.Bytes())
}
