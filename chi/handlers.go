package chi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/fwojciec/redline"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
)

// ReasonIndexOutOfRange and ReasonInvalidDiffEntry extend the annotation
// validation reasons reported in error bodies.
const (
	ReasonIndexOutOfRange  = "index_out_of_range"
	ReasonInvalidDiffEntry = "invalid_diff_entry"
)

type segmentsRequest struct {
	Text        string               `json:"text"`
	Annotations []redline.Annotation `json:"annotations"`
}

type segmentsResponse struct {
	Segments []redline.Segment `json:"segments"`
	Summary  redline.Summary   `json:"summary"`
}

type removeRequest struct {
	Text        string               `json:"text"`
	Annotations []redline.Annotation `json:"annotations"`
	Index       *int                 `json:"index" validate:"required"`
}

type removeResponse struct {
	Annotations []redline.Annotation `json:"annotations"`
	Segments    []redline.Segment    `json:"segments"`
	Decision    redline.Decision     `json:"decision"`
}

type reviewRequest struct {
	Name string `json:"name" validate:"max=256"`
	Text string `json:"text"`
}

type reviewResponse struct {
	Document    string               `json:"document"`
	Annotations []redline.Annotation `json:"annotations"`
	Segments    []redline.Segment    `json:"segments"`
	Summary     redline.Summary      `json:"summary"`
}

type entryPayload struct {
	Label string           `json:"label" validate:"required"`
	Left  string           `json:"left"`
	Right string           `json:"right"`
	Kind  redline.DiffKind `json:"kind" validate:"required"`
	Note  string           `json:"note"`
}

type comparisonRequest struct {
	Entries []entryPayload    `json:"entries" validate:"required_without=Left,dive"`
	Left    *redline.Document `json:"left" validate:"required_without=Entries"`
	Right   *redline.Document `json:"right" validate:"required_with=Left"`
}

type comparisonResponse struct {
	Entries []redline.DiffEntry       `json:"entries"`
	Rows    []redline.ComparisonRow   `json:"rows"`
	Summary redline.ComparisonSummary `json:"summary"`
}

type errorResponse struct {
	Error  string `json:"error"`
	Reason string `json:"reason,omitempty"`
	Index  *int   `json:"index,omitempty"`
}

func (s *Server) handleSegments(w http.ResponseWriter, r *http.Request) {
	var req segmentsRequest
	if !s.decode(w, r, &req) {
		return
	}

	segments, err := redline.Project(req.Text, req.Annotations)
	if err != nil {
		s.renderError(w, r, err)
		return
	}
	s.renderJSON(w, r, http.StatusOK, segmentsResponse{
		Segments: nonNil(segments),
		Summary:  redline.Summarize(req.Annotations),
	})
}

func (s *Server) handleRemove(action redline.Action) http.HandlerFunc {
	remove := redline.Dismiss
	if action == redline.ActionAccepted {
		remove = redline.Accept
	}

	return func(w http.ResponseWriter, r *http.Request) {
		var req removeRequest
		if !s.decode(w, r, &req) {
			return
		}

		if err := redline.ValidateAnnotations(req.Text, req.Annotations); err != nil {
			s.renderError(w, r, err)
			return
		}
		index := *req.Index
		remaining, err := remove(req.Annotations, index)
		if err != nil {
			s.renderError(w, r, err)
			return
		}
		segments, err := redline.Project(req.Text, remaining)
		if err != nil {
			s.renderError(w, r, err)
			return
		}
		s.renderJSON(w, r, http.StatusOK, removeResponse{
			Annotations: remaining,
			Segments:    nonNil(segments),
			Decision:    redline.Decision{Action: action, Annotation: req.Annotations[index]},
		})
	}
}

func (s *Server) handleReview(w http.ResponseWriter, r *http.Request) {
	if s.analyzer == nil {
		s.renderJSON(w, r, http.StatusNotImplemented, errorResponse{Error: "no analyzer configured"})
		return
	}

	var req reviewRequest
	if !s.decode(w, r, &req) {
		return
	}

	doc := redline.Document{Name: req.Name, Text: req.Text}
	annotations, err := s.analyzer.Analyze(r.Context(), doc)
	if err != nil {
		s.renderError(w, r, fmt.Errorf("analyze: %w", err))
		return
	}
	segments, err := redline.Project(doc.Text, annotations)
	if err != nil {
		s.renderError(w, r, err)
		return
	}
	s.renderJSON(w, r, http.StatusOK, reviewResponse{
		Document:    doc.Name,
		Annotations: nonNil(annotations),
		Segments:    nonNil(segments),
		Summary:     redline.Summarize(annotations),
	})
}

func (s *Server) handleComparison(w http.ResponseWriter, r *http.Request) {
	var req comparisonRequest
	if !s.decode(w, r, &req) {
		return
	}

	entries := make([]redline.DiffEntry, len(req.Entries))
	for i, e := range req.Entries {
		entries[i] = redline.DiffEntry{Label: e.Label, Left: e.Left, Right: e.Right, Kind: e.Kind, Note: e.Note}
	}
	if req.Left != nil {
		if s.aligner == nil {
			s.renderJSON(w, r, http.StatusNotImplemented, errorResponse{Error: "no aligner configured"})
			return
		}
		aligned, err := s.aligner.Align(r.Context(), *req.Left, *req.Right)
		if err != nil {
			s.renderError(w, r, fmt.Errorf("align: %w", err))
			return
		}
		entries = aligned
	}

	rows, err := redline.ProjectComparison(entries, s.differ)
	if err != nil {
		s.renderError(w, r, err)
		return
	}
	s.renderJSON(w, r, http.StatusOK, comparisonResponse{
		Entries: nonNil(entries),
		Rows:    nonNil(rows),
		Summary: redline.SummarizeComparison(entries, s.differ),
	})
}

// decode reads and validates a JSON body, rendering a 4xx response and
// reporting false when it cannot.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			s.renderJSON(w, r, http.StatusRequestEntityTooLarge, errorResponse{
				Error: fmt.Sprintf("request body exceeds %d bytes", maxErr.Limit),
			})
			return false
		}
		s.renderJSON(w, r, http.StatusBadRequest, errorResponse{Error: "invalid JSON: " + err.Error()})
		return false
	}
	if err := s.validate.Struct(v); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			s.renderJSON(w, r, http.StatusBadRequest, errorResponse{
				Error:  fmt.Sprintf("%s failed %q validation", fe.Namespace(), fe.Tag()),
				Reason: fe.Tag(),
			})
			return false
		}
		s.renderJSON(w, r, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return false
	}
	return true
}

// renderError maps domain errors onto status codes. Precondition
// violations are 422 with the reason and the offending index.
func (s *Server) renderError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		annErr   *redline.AnnotationError
		indexErr *redline.IndexError
		entryErr *redline.DiffEntryError
	)
	switch {
	case errors.As(err, &annErr):
		s.renderJSON(w, r, http.StatusUnprocessableEntity, errorResponse{
			Error:  annErr.Error(),
			Reason: string(annErr.Reason),
			Index:  &annErr.Index,
		})
	case errors.As(err, &indexErr):
		s.renderJSON(w, r, http.StatusUnprocessableEntity, errorResponse{
			Error:  indexErr.Error(),
			Reason: ReasonIndexOutOfRange,
			Index:  &indexErr.Index,
		})
	case errors.As(err, &entryErr):
		s.renderJSON(w, r, http.StatusUnprocessableEntity, errorResponse{
			Error:  entryErr.Error(),
			Reason: ReasonInvalidDiffEntry,
			Index:  &entryErr.Index,
		})
	case errors.Is(err, context.DeadlineExceeded):
		s.renderJSON(w, r, http.StatusGatewayTimeout, errorResponse{Error: err.Error()})
	default:
		s.logger.Error().Err(err).Str("request_id", middleware.GetReqID(r.Context())).Msg("request failed")
		s.renderJSON(w, r, http.StatusBadGateway, errorResponse{Error: err.Error()})
	}
}

func (s *Server) renderJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error().Err(err).Str("request_id", middleware.GetReqID(r.Context())).Msg("encode response")
	}
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
