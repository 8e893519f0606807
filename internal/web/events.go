package web

import (
	"encoding/json"
	"net/http"

	"git.sr.ht/~jakintosh/tasklist/internal/domain"
)

// triggerDetail is the payload htmx hands to listeners of each event.
type triggerDetail struct {
	IDs []string `json:"ids,omitempty"`
}

// setTriggerHeader names the transition events in HX-Trigger so client-side
// motion can follow additions and removals without the server knowing about it.
func setTriggerHeader(w http.ResponseWriter, events []domain.Event) error {
	if len(events) == 0 {
		return nil
	}

	payload := make(map[string]*triggerDetail)
	for _, e := range events {
		name := string(e.Kind)
		d, ok := payload[name]
		if !ok {
			d = &triggerDetail{}
			payload[name] = d
		}
		if e.TaskID != "" {
			d.IDs = append(d.IDs, e.TaskID)
		}
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	w.Header().Set("HX-Trigger", string(data))
	return nil
}
