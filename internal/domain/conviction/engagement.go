package conviction

const (
	videoPointsEach   = 20
	videoCap          = 50
	watchPointsPerMin = 5
	watchCap          = 25
	viewPointsEach    = 5
	viewCap           = 15
	timePointsPerMin  = 2
	timeCap           = 10
)

type VideoWatch struct {
	VideoID        string `json:"videoId"`
	WatchedSeconds int    `json:"watchedSeconds"`
	Completed      bool   `json:"completed"`
}

// EngagementScore sums per-channel capped points so no single signal dominates.
func EngagementScore(watches []VideoWatch, pageViews, timeSpentSeconds int) int {
	completed := 0
	watchedSeconds := 0
	for _, w := range watches {
		if w.Completed {
			completed++
		}
		if w.WatchedSeconds > 0 {
			watchedSeconds += w.WatchedSeconds
		}
	}

	videoScore := min(completed*videoPointsEach, videoCap)
	watchScore := min((watchedSeconds/60)*watchPointsPerMin, watchCap)
	viewScore := min(max(pageViews, 0)*viewPointsEach, viewCap)
	timeScore := min((max(timeSpentSeconds, 0)/60)*timePointsPerMin, timeCap)

	return min(videoScore+watchScore+viewScore+timeScore, 100)
}
