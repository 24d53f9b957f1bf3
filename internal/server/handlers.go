package server

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/jonathan/cv-studio/internal/enhance"
	"github.com/jonathan/cv-studio/internal/export"
	"github.com/jonathan/cv-studio/internal/session"
	"github.com/jonathan/cv-studio/internal/types"
)

// state builds the snapshot returned by every document endpoint, so the
// client can re-render from whatever it last heard.
func (s *Server) state() DocumentState {
	return DocumentState{
		CVData:     s.sess.Document(),
		SkillsText: s.sess.SkillsText(),
		Flags:      s.sess.BusyFlags(),
	}
}

func (s *Server) handleGetState(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, s.state())
}

func (s *Server) handleSetPersonalDetails(w http.ResponseWriter, r *http.Request) {
	var req PersonalDetailsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	s.sess.SetPersonalDetails(r.Context(), types.PersonalDetails{
		FullName: req.FullName,
		JobTitle: req.JobTitle,
		Email:    req.Email,
		Phone:    req.Phone,
		Address:  req.Address,
		LinkedIn: req.LinkedIn,
		Photo:    req.Photo,
	})
	s.jsonResponse(w, http.StatusOK, s.state())
}

func (s *Server) handleSetSummary(w http.ResponseWriter, r *http.Request) {
	var req SummaryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	s.sess.SetSummary(r.Context(), req.Summary)
	s.jsonResponse(w, http.StatusOK, s.state())
}

func (s *Server) handleSetSkillsText(w http.ResponseWriter, r *http.Request) {
	var req SkillsTextRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	s.sess.SetSkillsText(r.Context(), req.Text)
	s.jsonResponse(w, http.StatusOK, s.state())
}

func (s *Server) handleAddWorkExperience(w http.ResponseWriter, r *http.Request) {
	id := s.sess.AddWorkExperience(r.Context())
	s.jsonResponse(w, http.StatusCreated, map[string]any{
		"id":    id,
		"state": s.state(),
	})
}

func (s *Server) handleUpdateWorkExperience(w http.ResponseWriter, r *http.Request) {
	var req ItemPatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	s.sess.UpdateWorkExperience(r.Context(), r.PathValue("id"), req.Field, req.Value)
	s.jsonResponse(w, http.StatusOK, s.state())
}

func (s *Server) handleRemoveWorkExperience(w http.ResponseWriter, r *http.Request) {
	s.sess.RemoveWorkExperience(r.Context(), r.PathValue("id"))
	s.jsonResponse(w, http.StatusOK, s.state())
}

func (s *Server) handleAddEducation(w http.ResponseWriter, r *http.Request) {
	id := s.sess.AddEducation(r.Context())
	s.jsonResponse(w, http.StatusCreated, map[string]any{
		"id":    id,
		"state": s.state(),
	})
}

func (s *Server) handleUpdateEducation(w http.ResponseWriter, r *http.Request) {
	var req ItemPatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	s.sess.UpdateEducation(r.Context(), r.PathValue("id"), req.Field, req.Value)
	s.jsonResponse(w, http.StatusOK, s.state())
}

func (s *Server) handleRemoveEducation(w http.ResponseWriter, r *http.Request) {
	s.sess.RemoveEducation(r.Context(), r.PathValue("id"))
	s.jsonResponse(w, http.StatusOK, s.state())
}

func (s *Server) handleEnhance(w http.ResponseWriter, r *http.Request) {
	if err := s.sess.Enhance(r.Context()); err != nil {
		s.aiErrorResponse(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, s.state())
}

func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	var req ImportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := s.sess.ImportCV(r.Context(), req.Text); err != nil {
		s.aiErrorResponse(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, s.state())
}

func (s *Server) handleTransformPhoto(w http.ResponseWriter, r *http.Request) {
	if err := s.sess.TransformPhoto(r.Context()); err != nil {
		s.aiErrorResponse(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, s.state())
}

func (s *Server) handleGetConsent(w http.ResponseWriter, r *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]bool{"granted": s.sess.Consent(r.Context())})
}

func (s *Server) handleSetConsent(w http.ResponseWriter, r *http.Request) {
	var req ConsentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	s.sess.SetConsent(r.Context(), req.Granted)
	s.jsonResponse(w, http.StatusOK, map[string]bool{"granted": req.Granted})
}

func (s *Server) handleCheckoutBegin(w http.ResponseWriter, r *http.Request) {
	url := s.handoff.Begin(r.Context())
	s.jsonResponse(w, http.StatusOK, map[string]string{"url": url})
}

func (s *Server) handleCheckoutReturn(w http.ResponseWriter, r *http.Request) {
	armed := s.handoff.HandleReturn(r.URL.Query())
	s.jsonResponse(w, http.StatusOK, map[string]bool{"exportReady": armed})
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	if !s.sess.ConsumeExport() {
		s.errorResponse(w, http.StatusPaymentRequired, "Export has not been unlocked")
		return
	}

	pdf, err := export.PDF(r.Context(), s.sess.Document())
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "PDF generation failed: "+err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="cv.pdf"`)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(pdf); err != nil {
		log.Printf("Error writing PDF response: %v", err)
	}
}

// aiErrorResponse maps the AI pipeline error taxonomy onto HTTP codes:
// busy flags to 409, bad user input to 422, collaborator failures to 502.
func (s *Server) aiErrorResponse(w http.ResponseWriter, err error) {
	var vErr *enhance.ValidationError
	switch {
	case errors.Is(err, session.ErrEnhanceInProgress),
		errors.Is(err, session.ErrImportInProgress),
		errors.Is(err, session.ErrPhotoInProgress):
		s.errorResponse(w, http.StatusConflict, err.Error())
	case errors.Is(err, session.ErrNoPhoto):
		s.errorResponse(w, http.StatusUnprocessableEntity, err.Error())
	case errors.As(err, &vErr):
		s.errorResponse(w, http.StatusUnprocessableEntity, vErr.Message)
	default:
		s.errorResponse(w, http.StatusBadGateway, err.Error())
	}
}
