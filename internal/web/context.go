package web

import "net/http"

type RequestContext struct {
	IsHTMX    bool   // HX-Request header present
	TriggerID string // HX-Trigger - what element initiated this
	TargetID  string // HX-Target - where response will land
	Boosted   bool   // HX-Boosted - was this a boosted link/form?
}

func parseRequestContext(r *http.Request) RequestContext {
	return RequestContext{
		IsHTMX:    r.Header.Get("HX-Request") == "true",
		TriggerID: r.Header.Get("HX-Trigger"),
		TargetID:  r.Header.Get("HX-Target"),
		Boosted:   r.Header.Get("HX-Boosted") == "true",
	}
}

// wantsFragment reports whether the response should be a partial swap
// rather than a redirect back to the page.
func (c RequestContext) wantsFragment() bool {
	return c.IsHTMX && !c.Boosted
}
