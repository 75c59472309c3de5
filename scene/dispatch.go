package scene

import (
	"encoding/json"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// Request is one destruction event. Target names an entity; when empty the
// first entity near Point is hit. A zero Radius uses the configured radius.
type Request struct {
	Point  [3]float32 `json:"point"`
	Radius float32    `json:"radius,omitempty"`
	Target string     `json:"target,omitempty"`
}

// Result reports what a request did.
type Result struct {
	Target    *Entity
	Carved    int
	Fragments []*Entity
}

// ParseRequests decodes a JSON array of requests.
func ParseRequests(data []byte) ([]Request, error) {
	var reqs []Request
	if err := json.Unmarshal(data, &reqs); err != nil {
		return nil, fmt.Errorf("invalid requests JSON: %w", err)
	}
	return reqs, nil
}

// Dispatcher routes destruction requests to the entities of a world.
type Dispatcher struct {
	World *World
}

func NewDispatcher(w *World) *Dispatcher { return &Dispatcher{World: w} }

// Dispatch carves the request sphere out of its target and, when the world
// config asks for it, isolates the target even if nothing was carved, so
// clusters left over by an earlier fragment cap get another chance. Requests
// that hit nothing return a zero Result.
func (d *Dispatcher) Dispatch(req Request) Result {
	if d == nil || d.World == nil {
		return Result{}
	}
	point := mgl32.Vec3(req.Point)
	radius := req.Radius
	if radius <= 0 {
		radius = d.World.Config.DestructionRadius
	}

	var target *Entity
	if req.Target != "" {
		target = d.World.Find(req.Target)
	} else {
		target = d.World.Pick(point, radius)
	}
	if target == nil || target.Destructor == nil {
		return Result{}
	}

	res := Result{Target: target}
	res.Carved = target.Destructor.DestroySphere(point, radius)
	if d.World.Config.AutoIsolate && target.Isolation != nil {
		res.Fragments = target.Isolation.Isolate()
	}
	d.World.logger.Printf("request %v r=%.3f on %s: %d carved, %d fragments", req.Point, radius, target.Name, res.Carved, len(res.Fragments))
	return res
}
