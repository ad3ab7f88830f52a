package response

import "github.com/onedrop-app/onedrop-api/internal/domain"

type CountResponse struct {
	CampaignID uint  `json:"campaign_id"`
	Count      int64 `json:"count"`
}

type TokenResponse struct {
	Token string       `json:"token"`
	Actor domain.Actor `json:"actor"`
}

type HealthResponse struct {
	Status string `json:"status"`
}
