package http

import (
	"encoding/json"
	"net/http"

	"frota/internal/log"
)

func (s *Server) handleListDrivers(w http.ResponseWriter, r *http.Request) {
	snap := s.store.Snapshot()
	views := make([]driverView, 0, len(snap.Drivers))
	for _, d := range snap.Drivers {
		views = append(views, viewDriver(d))
	}
	NewJSONResponse().Body(views).Write(w)
}

func (s *Server) handleCreateDriver(w http.ResponseWriter, r *http.Request) {
	var payload driverPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		BadRequestError("corpo da requisição inválido").Write(w)
		return
	}

	d, err := payload.toCore()
	if err != nil {
		UnprocessableEntityError(err.Error()).Write(w)
		return
	}

	created := s.store.AddDriver(d)

	s.logger.InfoContext(r.Context(), "Driver created",
		log.FieldDriverID, created.ID)

	NewJSONResponse().Status(http.StatusCreated).Body(viewDriver(created)).Write(w)
}
