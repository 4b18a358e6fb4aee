package httpserver

import (
	"encoding/json"
	"net/http"

	cataloghttp "trafficdesk/contexts/ad-operations/catalog-service/transport/http"
)

func (s *Server) handleCreateMarket(w http.ResponseWriter, r *http.Request) {
	var req cataloghttp.CreateMarketRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeCatalogError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.catalog.Handler.CreateMarketHandler(r.Context(), req)
	if err != nil {
		writeCatalogDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleListMarkets(w http.ResponseWriter, r *http.Request) {
	resp, err := s.catalog.Handler.ListMarketsHandler(r.Context())
	if err != nil {
		writeCatalogDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetMarket(w http.ResponseWriter, r *http.Request) {
	resp, err := s.catalog.Handler.GetMarketHandler(r.Context(), r.PathValue("market_id"))
	if err != nil {
		writeCatalogDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleUpdateMarket(w http.ResponseWriter, r *http.Request) {
	var req cataloghttp.UpdateMarketRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeCatalogError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.catalog.Handler.UpdateMarketHandler(r.Context(), r.PathValue("market_id"), req)
	if err != nil {
		writeCatalogDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDeleteMarket(w http.ResponseWriter, r *http.Request) {
	if err := s.catalog.Handler.DeleteMarketHandler(r.Context(), r.PathValue("market_id")); err != nil {
		writeCatalogDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleCreateBrand(w http.ResponseWriter, r *http.Request) {
	var req cataloghttp.CreateBrandRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeCatalogError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.catalog.Handler.CreateBrandHandler(r.Context(), req)
	if err != nil {
		writeCatalogDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleListBrands(w http.ResponseWriter, r *http.Request) {
	resp, err := s.catalog.Handler.ListBrandsHandler(r.Context())
	if err != nil {
		writeCatalogDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetBrand(w http.ResponseWriter, r *http.Request) {
	resp, err := s.catalog.Handler.GetBrandHandler(r.Context(), r.PathValue("brand_id"))
	if err != nil {
		writeCatalogDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleUpdateBrand(w http.ResponseWriter, r *http.Request) {
	var req cataloghttp.UpdateBrandRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeCatalogError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.catalog.Handler.UpdateBrandHandler(r.Context(), r.PathValue("brand_id"), req)
	if err != nil {
		writeCatalogDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDeleteBrand(w http.ResponseWriter, r *http.Request) {
	if err := s.catalog.Handler.DeleteBrandHandler(r.Context(), r.PathValue("brand_id")); err != nil {
		writeCatalogDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleCreateChannel(w http.ResponseWriter, r *http.Request) {
	var req cataloghttp.CreateChannelRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeCatalogError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.catalog.Handler.CreateChannelHandler(r.Context(), req)
	if err != nil {
		writeCatalogDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleListChannels(w http.ResponseWriter, r *http.Request) {
	resp, err := s.catalog.Handler.ListChannelsHandler(r.Context())
	if err != nil {
		writeCatalogDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetChannel(w http.ResponseWriter, r *http.Request) {
	resp, err := s.catalog.Handler.GetChannelHandler(r.Context(), r.PathValue("channel_id"))
	if err != nil {
		writeCatalogDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleUpdateChannel(w http.ResponseWriter, r *http.Request) {
	var req cataloghttp.UpdateChannelRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeCatalogError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.catalog.Handler.UpdateChannelHandler(r.Context(), r.PathValue("channel_id"), req)
	if err != nil {
		writeCatalogDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDeleteChannel(w http.ResponseWriter, r *http.Request) {
	if err := s.catalog.Handler.DeleteChannelHandler(r.Context(), r.PathValue("channel_id")); err != nil {
		writeCatalogDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleCreateCampaign(w http.ResponseWriter, r *http.Request) {
	var req cataloghttp.CreateCampaignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeCatalogError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.catalog.Handler.CreateCampaignHandler(r.Context(), req)
	if err != nil {
		writeCatalogDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleListCampaigns(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	resp, err := s.catalog.Handler.ListCampaignsHandler(
		r.Context(),
		query.Get("brand_id"),
		query.Get("market_id"),
		query.Get("status"),
	)
	if err != nil {
		writeCatalogDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetCampaign(w http.ResponseWriter, r *http.Request) {
	resp, err := s.catalog.Handler.GetCampaignHandler(r.Context(), r.PathValue("campaign_id"))
	if err != nil {
		writeCatalogDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleUpdateCampaign(w http.ResponseWriter, r *http.Request) {
	var req cataloghttp.UpdateCampaignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeCatalogError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.catalog.Handler.UpdateCampaignHandler(r.Context(), r.PathValue("campaign_id"), req)
	if err != nil {
		writeCatalogDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleChangeCampaignStatus(w http.ResponseWriter, r *http.Request) {
	var req cataloghttp.ChangeCampaignStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeCatalogError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.catalog.Handler.ChangeCampaignStatusHandler(r.Context(), r.PathValue("campaign_id"), req)
	if err != nil {
		writeCatalogDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDeleteCampaign(w http.ResponseWriter, r *http.Request) {
	if err := s.catalog.Handler.DeleteCampaignHandler(r.Context(), r.PathValue("campaign_id")); err != nil {
		writeCatalogDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
