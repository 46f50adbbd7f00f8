package dto

type PageViewRequest struct {
	OccupationID string `json:"occupationId"`
}

type TimeSpentRequest struct {
	OccupationID string `json:"occupationId"`
	Seconds      int    `json:"seconds"`
}

type VideoWatchRequest struct {
	OccupationID   string `json:"occupationId"`
	VideoID        string `json:"videoId"`
	WatchedSeconds int    `json:"watchedSeconds"`
	Completed      bool   `json:"completed"`
}
