// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package renderjob owns the submit -> poll -> terminate lifecycle of render
// jobs. At most one job is in flight at a time: submitting while a previous
// job is still polling cancels that job's loop first. Polling is
// single-flight, the next status check is only scheduled after the previous
// response has been processed.
package renderjob

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"omukit/internal/templated"
)

// Status is the canonical, lowercase render state exposed to callers.
// Remote status strings are case-normalized before they ever leave this
// package.
type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
)

// Terminal reports whether no further status changes can occur.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

// normalizeStatus case-folds a remote status string into the canonical enum.
// Anything unrecognized or empty counts as still pending.
func normalizeStatus(raw string) Status {
	switch Status(strings.ToLower(raw)) {
	case StatusCompleted:
		return StatusCompleted
	case StatusFailed:
		return StatusFailed
	default:
		return StatusPending
	}
}

// Job is a snapshot of the in-flight (or just-finished) render.
type Job struct {
	ID           string    `json:"id"`
	TemplateID   string    `json:"templateId"`
	TemplateName string    `json:"templateName,omitempty"`
	Status       Status    `json:"status"`
	URL          string    `json:"url,omitempty"`
	Error        string    `json:"error,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Target identifies the template a render is submitted against. The name is
// carried along so lifecycle observers can journal it without another fetch.
type Target struct {
	TemplateID   string
	TemplateName string
}

// RenderAPI is the slice of the Templated client the controller needs.
type RenderAPI interface {
	CreateRender(ctx context.Context, templateID string, layers map[string]templated.LayerOverride) (*templated.Render, error)
	GetRender(ctx context.Context, renderID string) (*templated.Render, error)
}

// UpdateFunc observes every job state transition. Called outside the
// controller lock; the application uses it to journal history rows.
type UpdateFunc func(Job)

// Controller runs the render lifecycle for one job at a time.
// All methods are safe for concurrent use.
type Controller struct {
	api      RenderAPI
	interval time.Duration
	onUpdate UpdateFunc

	// after is the timer source for poll ticks. Tests replace it to drive
	// the loop deterministically.
	after func(d time.Duration) <-chan time.Time

	mu     sync.Mutex
	job    *Job
	gen    int // bumped on every submit/cancel; stale loops check it
	cancel context.CancelFunc
}

// New creates a controller polling at the given interval. onUpdate may be nil.
func New(api RenderAPI, interval time.Duration, onUpdate UpdateFunc) *Controller {
	if interval <= 0 {
		interval = 2 * time.Second
	}
	return &Controller{
		api:      api,
		interval: interval,
		onUpdate: onUpdate,
		after:    time.After,
	}
}

// Submit cancels any active poll loop, creates a render for the target
// template with the given overrides, and starts polling unless the creation
// response already reports a terminal status. Returns the initial job
// snapshot.
func (c *Controller) Submit(ctx context.Context, target Target, layers map[string]templated.LayerOverride) (Job, error) {
	c.mu.Lock()
	c.stopLocked()
	gen := c.gen
	c.mu.Unlock()

	res, err := c.api.CreateRender(ctx, target.TemplateID, layers)
	if err != nil {
		// The prior job's loop is already cancelled; without a new job to
		// replace it the tracked snapshot would sit pending forever.
		c.discard(gen)
		return Job{}, fmt.Errorf("submit render: %w", err)
	}
	if res.ID == "" {
		c.discard(gen)
		return Job{}, fmt.Errorf("submit render: response missing job id")
	}

	job := Job{
		ID:           res.ID,
		TemplateID:   target.TemplateID,
		TemplateName: target.TemplateName,
		Status:       normalizeStatus(res.Status),
		URL:          res.URL,
		CreatedAt:    time.Now().UTC(),
	}

	c.mu.Lock()
	if c.gen != gen {
		// A concurrent Submit or Cancel won the race; this job is not
		// tracked, but the remote render exists, so observers still get
		// to record its creation.
		c.mu.Unlock()
		c.notify(job)
		return job, nil
	}
	c.job = &job

	if !job.Status.Terminal() {
		pollCtx, cancel := context.WithCancel(context.Background())
		c.cancel = cancel
		go c.poll(pollCtx, gen, job.ID)
	}
	c.mu.Unlock()

	c.notify(job)
	return job, nil
}

// Current returns a snapshot of the tracked job, or ok=false when idle.
func (c *Controller) Current() (Job, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.job == nil {
		return Job{}, false
	}
	return *c.job, true
}

// Cancel stops any active poll loop and discards the current job,
// returning the controller to idle. Safe to call in any state.
func (c *Controller) Cancel() {
	c.mu.Lock()
	c.stopLocked()
	c.job = nil
	c.mu.Unlock()
}

// discard drops the tracked job after a failed submission, unless a newer
// Submit or Cancel already moved the generation on.
func (c *Controller) discard(gen int) {
	c.mu.Lock()
	if c.gen == gen {
		c.job = nil
	}
	c.mu.Unlock()
}

// stopLocked cancels the active poll loop and bumps the generation so any
// in-flight status response from the old loop is discarded. Caller holds mu.
func (c *Controller) stopLocked() {
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	c.gen++
}

// poll checks the render status on each tick until a terminal status, an
// error, or cancellation. Ticks never overlap: the next wait begins only
// after the current response has been processed.
func (c *Controller) poll(ctx context.Context, gen int, renderID string) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-c.after(c.interval):
		}

		res, err := c.api.GetRender(ctx, renderID)

		c.mu.Lock()
		if c.gen != gen || c.job == nil || c.job.ID != renderID {
			// Cancelled or superseded while the request was in flight.
			c.mu.Unlock()
			return
		}

		switch {
		case err != nil:
			// Fail fast: one failed status check ends the job.
			c.job.Status = StatusFailed
			c.job.Error = err.Error()
		case res.ID == "":
			c.job.Status = StatusFailed
			c.job.Error = "status response missing job id"
		default:
			c.job.Status = normalizeStatus(res.Status)
			if res.URL != "" {
				c.job.URL = res.URL
			}
		}

		job := *c.job
		done := job.Status.Terminal()
		if done {
			if c.cancel != nil {
				c.cancel()
				c.cancel = nil
			}
		}
		c.mu.Unlock()

		c.notify(job)
		if done {
			return
		}
	}
}

func (c *Controller) notify(job Job) {
	if c.onUpdate != nil {
		c.onUpdate(job)
	}
}
