package http

import "github.com/visithercegovina/tours-backend/internal/tours/domain"

// The legacy client wraps the payload and carries the session token in the
// body; the guard reads authToken, handlers bind the rest.
type createReq struct {
	Tour domain.Tour `json:"tour"`
}

type patchReq struct {
	Tour map[string]any `json:"tour"`
}

type createResp struct {
	Success bool   `json:"success"`
	ID      string `json:"id"`
}

type successResp struct {
	Success bool `json:"success"`
}
