package httpapi

import (
	"encoding/json"
	"errors"
	"html/template"
	"mime"
	"net/http"

	"github.com/dmitrijs2005/savvysnip/internal/common"
)

var resetPage = template.Must(template.New("reset").Parse(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>SavvySnip - Reset password</title></head>
<body>
{{if .Message}}<p>{{.Message}}</p>{{end}}
{{if .Token}}
<form method="post" action="/password-reset">
  <input type="hidden" name="token" value="{{.Token}}">
  <label>New password <input type="password" name="password" autofocus></label>
  <button type="submit">Reset password</button>
</form>
{{end}}
</body>
</html>
`))

type resetView struct {
	Token   string
	Message string
}

type resetRequest struct {
	Token    string `json:"token"`
	Password string `json:"password"`
}

type statusResponse struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func renderReset(w http.ResponseWriter, code int, v resetView) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(code)
	_ = resetPage.Execute(w, v)
}

func (s *HTTPServer) healthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, statusResponse{Status: "OK"})
}

func (s *HTTPServer) resetFormHandler(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		renderReset(w, http.StatusBadRequest, resetView{Message: "This reset link is incomplete."})
		return
	}
	renderReset(w, http.StatusOK, resetView{Token: token})
}

// resetStatus maps a ResetPassword error to an HTTP status and a message
// safe to show the user.
func resetStatus(err error) (int, string) {
	switch {
	case errors.Is(err, common.ErrFieldEmpty):
		return http.StatusBadRequest, "Fields Cannot Be Empty"
	case errors.Is(err, common.ErrInvalidToken):
		return http.StatusBadRequest, "This reset link is not valid."
	case errors.Is(err, common.ErrResetTokenExpired):
		return http.StatusGone, "This reset link has expired."
	default:
		return http.StatusInternalServerError, "Password could not be reset. Please try again later."
	}
}

func (s *HTTPServer) resetHandler(w http.ResponseWriter, r *http.Request) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	asJSON := mediaType == "application/json"

	var req resetRequest
	if asJSON {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, statusResponse{Status: "error", Error: "invalid JSON"})
			return
		}
	} else {
		if err := r.ParseForm(); err != nil {
			renderReset(w, http.StatusBadRequest, resetView{Message: "Invalid form."})
			return
		}
		req.Token = r.PostForm.Get("token")
		req.Password = r.PostForm.Get("password")
	}

	err := s.users.ResetPassword(r.Context(), req.Token, req.Password)
	if err != nil {
		code, msg := resetStatus(err)
		if code == http.StatusInternalServerError {
			s.logger.Error(r.Context(), "password reset failed", "error", err)
		}
		if asJSON {
			writeJSON(w, code, statusResponse{Status: "error", Error: msg})
			return
		}
		view := resetView{Message: msg}
		if errors.Is(err, common.ErrFieldEmpty) {
			view.Token = req.Token
		}
		renderReset(w, code, view)
		return
	}

	if asJSON {
		writeJSON(w, http.StatusOK, statusResponse{Status: "OK"})
		return
	}
	renderReset(w, http.StatusOK, resetView{Message: "Your password has been changed. You can sign in now."})
}
