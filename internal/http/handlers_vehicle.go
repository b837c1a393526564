package http

import (
	"encoding/json"
	"net/http"

	"frota/internal/core"
	"frota/internal/log"
)

func (s *Server) handleListVehicles(w http.ResponseWriter, r *http.Request) {
	snap := s.store.Snapshot()
	views := make([]vehicleView, 0, len(snap.Vehicles))
	for _, v := range snap.Vehicles {
		views = append(views, viewVehicle(v))
	}
	NewJSONResponse().Body(views).Write(w)
}

func (s *Server) handleCreateVehicle(w http.ResponseWriter, r *http.Request) {
	var payload vehiclePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		BadRequestError("corpo da requisição inválido").Write(w)
		return
	}

	v, err := payload.toCore()
	if err != nil {
		UnprocessableEntityError(err.Error()).Write(w)
		return
	}

	created := s.store.AddVehicle(v)
	s.invalidateDashboard()

	s.logger.InfoContext(r.Context(), "Vehicle created",
		log.FieldVehicleID, created.ID,
		"plate", created.Plate)

	NewJSONResponse().Status(http.StatusCreated).Body(viewVehicle(created)).Write(w)
}

type statusPayload struct {
	Status string `json:"status"`
}

// handleUpdateVehicleStatus sets the vehicle's status. Any transition between
// valid statuses is accepted; an unknown vehicle id is a 404.
func (s *Server) handleUpdateVehicleStatus(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var payload statusPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		BadRequestError("corpo da requisição inválido").Write(w)
		return
	}

	status := core.VehicleStatus(payload.Status)
	if !status.Valid() {
		UnprocessableEntityError("status inválido").Write(w)
		return
	}

	if !s.store.UpdateVehicleStatus(id, status) {
		NotFoundError("veículo não encontrado").Write(w)
		return
	}
	s.invalidateDashboard()

	s.logger.InfoContext(r.Context(), "Vehicle status updated",
		log.FieldVehicleID, id,
		log.FieldStatus, string(status))

	updated, _ := s.store.Vehicle(id)
	NewJSONResponse().Body(viewVehicle(updated)).Write(w)
}
