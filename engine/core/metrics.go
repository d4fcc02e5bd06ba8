package core

const AVG_COUNT uint8 = 30

// frameRateEpsilon guards the instant frame rate against a zero delta.
const frameRateEpsilon = 2.220446049250313e-16

// FrameMetrics keeps advisory timing figures about the frame loop. None of
// these values are used to drive the loop itself.
type FrameMetrics struct {
	frameAVGCounter    uint8
	msTimes            [AVG_COUNT]float64
	msAvg              float64
	frames             int32
	accumulatedFrameMS float64
	fps                float64
	instantFPS         float64
}

func NewFrameMetrics() *FrameMetrics {
	return &FrameMetrics{}
}

// Update records one frame whose delta time is dt seconds.
func (m *FrameMetrics) Update(dt float64) {
	m.instantFPS = 1.0 / (dt + frameRateEpsilon)

	// Calculate frame ms average
	frameMS := dt * 1000.0
	m.msTimes[m.frameAVGCounter] = frameMS
	if m.frameAVGCounter == AVG_COUNT-1 {
		m.msAvg = 0
		for i := uint8(0); i < AVG_COUNT; i++ {
			m.msAvg += m.msTimes[i]
		}
		m.msAvg /= float64(AVG_COUNT)
	}
	m.frameAVGCounter++
	m.frameAVGCounter %= AVG_COUNT

	// Calculate frames per second.
	m.accumulatedFrameMS += frameMS
	if m.accumulatedFrameMS > 1000 {
		m.fps = float64(m.frames)
		m.accumulatedFrameMS -= 1000
		m.frames = 0
	}

	// Count all frames.
	m.frames++
}

// InstantFPS is 1/dt of the last recorded frame.
func (m *FrameMetrics) InstantFPS() float64 {
	return m.instantFPS
}

// FPS is the number of frames counted during the last full second.
func (m *FrameMetrics) FPS() float64 {
	return m.fps
}

// FrameTime is the average frame time in milliseconds over the last
// AVG_COUNT frames.
func (m *FrameMetrics) FrameTime() float64 {
	return m.msAvg
}

func (m *FrameMetrics) Frame() (float64, float64) {
	return m.fps, m.msAvg
}
