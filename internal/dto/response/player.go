package response

// GateSessionResponse describes a playback-gate session. FullMovieURL is only
// populated once the gate is unlocked; LockerURL only while verification is
// pending or being retried.
type GateSessionResponse struct {
	SessionID    string  `json:"sessionId"`
	MovieID      string  `json:"movieId"`
	State        string  `json:"state"`
	Position     float64 `json:"position"`
	Progress     float64 `json:"progress"`
	CurrentTime  string  `json:"currentTime"`
	Duration     string  `json:"duration"`
	Checks       int     `json:"checks,omitempty"`
	PreviewURL   string  `json:"previewUrl,omitempty"`
	FullMovieURL string  `json:"fullMovieUrl,omitempty"`
	LockerURL    string  `json:"lockerUrl,omitempty"`
}
