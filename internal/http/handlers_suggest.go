package http

import (
	"net/http"

	"fintrack/internal/log"
)

type suggestCategoryResponse struct {
	Category string `json:"category"`
	Degraded bool   `json:"degraded"`
}

// handleSuggestCategory proposes a category for a free-form description.
// Classifier trouble never surfaces as a 5xx; the response degrades to
// Other instead.
func (s *Server) handleSuggestCategory(w http.ResponseWriter, r *http.Request) {
	if resp := RequireMethod(r, http.MethodPost); resp != nil {
		resp.Write(w)
		return
	}
	ctx := r.Context()

	parser := NewRequestBodyParser(r)
	if err := parser.Parse(); err != nil {
		s.logger.ErrorContext(ctx, "Request body parse error",
			log.FieldError, err, log.FieldPath, r.URL.Path)
		BadRequestError("malformed request body").Write(w)
		return
	}

	description := parser.Get("description")
	if description == "" {
		UnprocessableEntityError("empty description").Write(w)
		return
	}

	suggestion := s.suggest(ctx, description)
	s.logger.InfoContext(ctx, "Category suggested",
		log.FieldCategory, suggestion.Category.String(),
		log.FieldDegraded, suggestion.Degraded)

	NewResponse().JSON(suggestCategoryResponse{
		Category: suggestion.Category.String(),
		Degraded: suggestion.Degraded,
	}).Write(w)
}
