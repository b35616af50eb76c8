package capture

import (
	"encoding/json"
	"os"

	"mirror-balls/internal/surface"
)

// Manifest describes a capture: output settings, camera and every ball.
type Manifest struct {
	Image           string      `json:"image"`
	Width           int         `json:"width"`
	Height          int         `json:"height"`
	Frames          int         `json:"frames"`
	FPS             float64     `json:"fps"`
	FrameDurationMS uint        `json:"frame_duration_ms"`
	Supersample     int         `json:"supersample"`
	Camera          CameraEntry `json:"camera"`
	Balls           []BallEntry `json:"balls"`
}

// CameraEntry is the camera at the start of the capture.
type CameraEntry struct {
	FovY     float64    `json:"fov_y"`
	Position [3]float64 `json:"position"`
}

// BallEntry represents one ball in the manifest.
type BallEntry struct {
	Index         int        `json:"index"`
	Radius        float64    `json:"radius"`
	Position      [3]float64 `json:"position"`
	Tiles         int        `json:"tiles"`
	StartRotation float64    `json:"start_rotation_y"`
	EndRotation   float64    `json:"end_rotation_y"`
}

func newManifest(s *surface.Surface, cfg Config) *Manifest {
	cam := s.Camera()
	m := &Manifest{
		Image:           cfg.Output,
		Width:           cfg.Width,
		Height:          cfg.Height,
		Frames:          cfg.Frames,
		FPS:             cfg.FPS,
		FrameDurationMS: frameDuration(cfg.FPS),
		Supersample:     cfg.Supersample,
		Camera: CameraEntry{
			FovY:     cam.FovY,
			Position: cam.Position,
		},
	}
	for i, b := range s.Balls() {
		m.Balls = append(m.Balls, BallEntry{
			Index:         i,
			Radius:        b.Radius,
			Position:      b.Node.Position,
			Tiles:         b.TileCount(),
			StartRotation: b.RotationY(),
		})
	}
	return m
}

func (m *Manifest) finish(s *surface.Surface) {
	for i, b := range s.Balls() {
		if i < len(m.Balls) {
			m.Balls[i].EndRotation = b.RotationY()
		}
	}
}

// WriteManifest writes the manifest as indented JSON.
func WriteManifest(path string, m *Manifest) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
