package dto

type DiscoveryItemResponse struct {
	OccupationID string `json:"occupationId"`
	Title        string `json:"title"`
	Fit          int    `json:"fit"`
	Estimated    bool   `json:"estimated"`
}

type DiscoveryResponse struct {
	Items  []DiscoveryItemResponse `json:"items"`
	Limit  int                     `json:"limit"`
	Offset int                     `json:"offset"`
}
