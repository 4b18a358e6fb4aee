package httpserver

import (
	"encoding/json"
	"fmt"
	"net/http"

	tickethttp "trafficdesk/contexts/ad-operations/ticket-service/transport/http"
)

func (s *Server) handleCreateTicket(w http.ResponseWriter, r *http.Request) {
	var req tickethttp.CreateTicketRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeTicketError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.tickets.Handler.CreateTicketHandler(r.Context(), req)
	if err != nil {
		writeTicketDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleListTickets(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	resp, err := s.tickets.Handler.ListTicketsHandler(
		r.Context(),
		query.Get("campaign_id"),
		query.Get("channel_id"),
		query.Get("status"),
	)
	if err != nil {
		writeTicketDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetTicket(w http.ResponseWriter, r *http.Request) {
	resp, err := s.tickets.Handler.GetTicketHandler(r.Context(), r.PathValue("ticket_id"))
	if err != nil {
		writeTicketDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleUpdateTicket(w http.ResponseWriter, r *http.Request) {
	var req tickethttp.UpdateTicketRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeTicketError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.tickets.Handler.UpdateTicketHandler(r.Context(), r.PathValue("ticket_id"), req)
	if err != nil {
		writeTicketDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDeleteTicket(w http.ResponseWriter, r *http.Request) {
	if err := s.tickets.Handler.DeleteTicketHandler(r.Context(), r.PathValue("ticket_id")); err != nil {
		writeTicketDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleEvaluateTicket(w http.ResponseWriter, r *http.Request) {
	resp, err := s.tickets.Handler.EvaluateTicketHandler(r.Context(), r.PathValue("ticket_id"))
	if err != nil {
		writeTicketDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDeployTicket(w http.ResponseWriter, r *http.Request) {
	resp, err := s.tickets.Handler.DeployTicketHandler(r.Context(), r.PathValue("ticket_id"))
	if err != nil {
		writeTicketDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusAccepted, resp)
}

// handleEventStream pushes domain events to the client as server-sent events.
// Slow consumers are dropped by the hub rather than blocking publishers.
func (s *Server) handleEventStream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		writeTicketError(w, http.StatusInternalServerError, "streaming_unsupported", "response writer does not support streaming")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	events, cancel := s.hub.Subscribe()
	defer cancel()

	for {
		select {
		case <-r.Context().Done():
			return
		case envelope := <-events:
			data, err := json.Marshal(envelope)
			if err != nil {
				continue
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", envelope.EventType, data)
			flusher.Flush()
		}
	}
}
