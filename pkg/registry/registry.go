// pkg/registry/registry.go
package registry

import (
	"encoding/json"
	"io"
	"time"
)

func New(version string) *ActivityRegistry {
	return &ActivityRegistry{
		Version:     version,
		LastUpdated: time.Now().UTC().Format(time.RFC3339),
	}
}

// Add registers a, replacing any activity with the same task type.
func (r *ActivityRegistry) Add(a Activity) {
	for i := range r.Activities {
		if r.Activities[i].TaskType == a.TaskType {
			r.Activities[i] = a
			return
		}
	}
	r.Activities = append(r.Activities, a)
}

func (r *ActivityRegistry) Find(taskType string) (Activity, bool) {
	for _, a := range r.Activities {
		if a.TaskType == taskType {
			return a, true
		}
	}
	return Activity{}, false
}

// Enabled returns the activities that should get a job worker.
func (r *ActivityRegistry) Enabled() []Activity {
	var out []Activity
	for _, a := range r.Activities {
		if a.Enabled {
			out = append(out, a)
		}
	}
	return out
}

func (r *ActivityRegistry) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}
