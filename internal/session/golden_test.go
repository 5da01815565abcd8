package session

import (
	"encoding/json"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/require"

	"pipe-viewer/internal/spatial"
)

// traceStep is one observation of the session after an action, serialized
// for golden comparison.
type traceStep struct {
	Action  string `json:"action"`
	State   string `json:"state"`
	Backend string `json:"backend"`
	Placed  bool   `json:"placed"`
}

// TestSessionTrace_PlacementLifecycle pins the full lifecycle against a
// golden file: tracked start, commit, platform-terminated hand-off to
// fallback (placement preserved), reset.
func TestSessionTrace_PlacementLifecycle(t *testing.T) {
	h := newHarness()
	var trace []traceStep

	record := func(action string) {
		trace = append(trace, traceStep{
			Action:  action,
			State:   h.ctx.State().String(),
			Backend: h.ctx.Backend().String(),
			Placed:  h.ctx.Placement() != nil,
		})
	}

	h.ctx.StartTracked()
	record("start-tracked")

	h.platform.Session().SetHits([]spatial.Pose{spatial.PoseAt(mgl32.Vec3{1, 0, -2})})
	h.ctx.Frame(mgl32.Vec3{}, mgl32.Vec3{})
	h.ctx.CommitPlacement()
	record("commit")

	h.platform.Session().TriggerEnd()
	record("tracked-ended")

	h.ctx.Reset()
	record("reset")

	data, err := json.MarshalIndent(trace, "", "  ")
	require.NoError(t, err)

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "placement_lifecycle", data)
}
