package request

// PositionRequest reports a playback position sample in seconds.
type PositionRequest struct {
	Seconds float64 `json:"seconds" validate:"min=0"`
}

// SeekRequest asks to move playback to a position in seconds. The gate clamps
// it to the preview threshold while content is still gated.
type SeekRequest struct {
	Seconds float64 `json:"seconds" validate:"min=0"`
}
