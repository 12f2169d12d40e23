package ottava

import (
	"log/slog"
	"sync"
	"time"

	Og "github.com/craque/ottava/glyph"
)

type RenderSupervisor struct {
	View     *View
	Ticker   *time.Ticker
	StopChan chan struct{}
	WG       sync.WaitGroup
}

// NewRenderSupervisor is a wrapper around the View that manages the render goroutine
// They are strongly coupled, one knows about the other
func (v *View) NewRenderSupervisor() *RenderSupervisor {
	rs := &RenderSupervisor{
		View: v,
	}
	v.Supervisor = rs
	return rs
}

// ReloadConfig swaps the vector source from a fresh config
// while the supervisor is paused, then resumes rendering.
func (v *View) ReloadConfig(c []Og.ConfigFile) {
	v.Supervisor.Stop()

	provider, err := ProviderFromConfig(c)
	if err != nil {
		slog.Error("Failed to reload vector source", slog.Any("Error", err))
		v.Supervisor.Start()
		return
	}

	v.MU.Lock()
	v.Provider = provider
	v.MU.Unlock()

	v.Supervisor.Start()
}

// Start the RenderSupervisor
func (r *RenderSupervisor) Start() {
	r.StopChan = make(chan struct{})
	r.Ticker = time.NewTicker(1 * time.Second)

	r.WG.Add(1)
	go func() {
		defer r.WG.Done()
		defer r.Ticker.Stop()

		for {
			select {
			case <-r.Ticker.C:
				if err := r.View.RenderPass(); err != nil {
					slog.Error("Failed to RenderPass", slog.Any("Error", err))
				}
			case <-r.StopChan:
				return
			}
		}
	}()
}

// Stop the RenderSupervisor
func (r *RenderSupervisor) Stop() {
	if r.StopChan != nil {
		close(r.StopChan)
		r.WG.Wait()
	}
}

// Restart the RenderSupervisor
func (r *RenderSupervisor) Restart() {
	r.Stop()
	r.Start()
}
