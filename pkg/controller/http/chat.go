package http

import (
	"encoding/json"
	"net/http"

	"github.com/m-mizutani/goerr/v2"
	"github.com/remedian-lab/remedian/pkg/utils/errutil"
)

type chatRequest struct {
	Message string `json:"message"`
}

type chatResponse struct {
	Response string `json:"response"`
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errutil.HandleHTTP(ctx, w, goerr.Wrap(err, "failed to decode chat request"), http.StatusBadRequest)
		return
	}
	if req.Message == "" {
		errutil.HandleHTTP(ctx, w, goerr.New("message is required"), http.StatusBadRequest)
		return
	}

	response, err := s.uc.Agent.Chat(ctx, sessionIDFrom(ctx), userIDFrom(ctx), req.Message)
	if err != nil {
		errutil.HandleHTTP(ctx, w, goerr.Wrap(err, "agent chat failed"), http.StatusInternalServerError)
		return
	}

	writeJSON(ctx, w, http.StatusOK, chatResponse{Response: response})
}
