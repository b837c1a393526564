package http

import (
	"encoding/json"
	"net/http"
)

func (s *Server) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	NewJSONResponse().Body(viewSettings(s.store.Settings())).Write(w)
}

// handleUpdateSettings replaces the settings record wholesale; omitted fields
// become empty, they are not merged with the previous value.
func (s *Server) handleUpdateSettings(w http.ResponseWriter, r *http.Request) {
	var payload settingsPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		BadRequestError("corpo da requisição inválido").Write(w)
		return
	}

	cs := payload.toCore()
	if cs.Name == "" {
		UnprocessableEntityError("nome da empresa é obrigatório").Write(w)
		return
	}

	s.store.ReplaceSettings(cs)
	NewJSONResponse().Body(viewSettings(s.store.Settings())).Write(w)
}
