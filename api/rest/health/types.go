package health

type Response struct {
	Status     string `json:"status"`
	Service    string `json:"service"`
	Version    string `json:"version,omitempty"`
	IndexBuilt bool   `json:"index_built"`
	Examples   int    `json:"examples"`
}

type PingResponse struct {
	Message string `json:"message"`
}
