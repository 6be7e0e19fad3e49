package generation

import (
	"context"
	"errors"
	"fmt"

	"resume-builder/internal/llm"
	"resume-builder/internal/profiles"
	"resume-builder/internal/shared/telemetry"
)

// Progress locates a section event within the run.
type Progress struct {
	Total   int `json:"total"`
	Current int `json:"current"`
}

// Event is one stream frame. Type is "progress", "section", "section_error",
// "complete", or "error"; the other fields are populated per type, matching
// what the receiving client renders.
type Event struct {
	Type              string    `json:"type"`
	Total             int       `json:"total,omitempty"`
	Current           *int      `json:"current,omitempty"`
	Section           string    `json:"section,omitempty"`
	Title             string    `json:"title,omitempty"`
	Message           string    `json:"message,omitempty"`
	Content           string    `json:"content,omitempty"`
	CompanyName       *string   `json:"company_name,omitempty"`
	ProjectName       *string   `json:"project_name,omitempty"`
	Index             *int      `json:"index,omitempty"`
	Progress          *Progress `json:"progress,omitempty"`
	Error             string    `json:"error,omitempty"`
	RateLimitExceeded bool      `json:"rate_limit_exceeded,omitempty"`
	CurrentCount      int       `json:"current_count,omitempty"`
	Sections          []string  `json:"sections,omitempty"`
}

// RateLimiter gates demo-account pipeline runs. CheckAndConsume verifies the
// token and, when allowed, counts this run against it atomically.
type RateLimiter interface {
	CheckAndConsume(ctx context.Context, token string) (allowed bool, count int, err error)
}

// Request carries the inputs for one pipeline run.
type Request struct {
	UserID         int64
	Username       string
	JobDescription string
	Instruction    string
	Token          string
}

// Service runs the section generation pipeline.
type Service struct {
	Profiles  profiles.Repo
	Generator llm.Generator
	Limiter   RateLimiter
}

// DemoUsername is the account whose runs are rate limited by signed token.
const DemoUsername = "demo"

// Run executes the pipeline and returns its event stream. Sections are
// generated strictly sequentially; a failed section emits a section_error
// and the run continues. Failures before the first section emit a single
// terminal error event. The channel is closed when the run ends. The run
// stops submitting new sections once ctx is cancelled, though a request
// already sent to the generation service finishes on its own timeout.
func (s *Service) Run(ctx context.Context, req Request) <-chan Event {
	out := make(chan Event)
	go func() {
		defer close(out)
		s.run(ctx, req, out)
	}()
	return out
}

func (s *Service) run(ctx context.Context, req Request, out chan<- Event) {
	send := func(ev Event) bool {
		select {
		case out <- ev:
			return true
		case <-ctx.Done():
			return false
		}
	}

	if req.Instruction == "" || req.JobDescription == "" || req.UserID == 0 {
		send(Event{Type: "error", Error: "prompt, job_description, and user_id are required"})
		return
	}

	if req.Username == DemoUsername {
		if req.Token == "" {
			send(Event{Type: "error", Error: "token is required for demo users"})
			return
		}
		if s.Limiter == nil {
			send(Event{Type: "error", Error: "rate limiting is not configured"})
			return
		}
		allowed, count, err := s.Limiter.CheckAndConsume(ctx, req.Token)
		if err != nil {
			send(Event{Type: "error", Error: "failed to verify rate limit: " + err.Error()})
			return
		}
		if !allowed {
			send(Event{
				Type:              "error",
				Error:             "Rate limit exceeded. You have generated 5 resumes in the last hour. Please wait before generating more.",
				RateLimitExceeded: true,
				CurrentCount:      count,
			})
			return
		}
	}

	if s.Generator == nil {
		send(Event{Type: "error", Error: llm.ErrNotConfigured.Error()})
		return
	}

	details, err := s.Profiles.Details(ctx, req.UserID)
	if err != nil {
		if errors.Is(err, profiles.ErrNotFound) {
			send(Event{Type: "error", Error: fmt.Sprintf("user with id %d does not exist or has no data", req.UserID)})
		} else {
			send(Event{Type: "error", Error: "failed to load profile: " + err.Error()})
		}
		return
	}

	sections := Decompose(details, req.JobDescription, req.Instruction)
	total := len(sections)

	if !send(Event{
		Type:    "progress",
		Total:   total,
		Current: intPtr(0),
		Message: "Job description received. Starting resume generation...",
	}) {
		return
	}

	var completed []string
	for i, section := range sections {
		if ctx.Err() != nil {
			telemetry.Warn("generation.cancelled", map[string]any{
				"user_id":   req.UserID,
				"completed": len(completed),
				"total":     total,
			})
			return
		}
		current := i + 1

		if !send(Event{
			Type:    "progress",
			Total:   total,
			Current: intPtr(current),
			Section: section.Kind,
			Title:   section.Title,
			Message: fmt.Sprintf("Generating %s...", section.Title),
		}) {
			return
		}

		content, err := s.Generator.Generate(ctx, section.Prompt)
		if err != nil {
			if !send(Event{
				Type:     "section_error",
				Section:  section.Kind,
				Title:    section.Title,
				Error:    fmt.Sprintf("Error generating %s: %v", section.Title, err),
				Progress: &Progress{Total: total, Current: current},
			}) {
				return
			}
			continue
		}

		ev := Event{
			Type:     "section",
			Section:  section.Kind,
			Title:    section.Title,
			Content:  content,
			Progress: &Progress{Total: total, Current: current},
		}
		switch section.Kind {
		case "experience":
			ev.CompanyName = strPtr(section.CompanyName)
			ev.Index = intPtr(section.Index)
			completed = append(completed, fmt.Sprintf("experience_%d", section.Index))
		case "project":
			ev.ProjectName = strPtr(section.ProjectName)
			ev.Index = intPtr(section.Index)
			completed = append(completed, fmt.Sprintf("project_%d", section.Index))
		default:
			completed = append(completed, section.Kind)
		}
		if !send(ev) {
			return
		}
	}

	send(Event{
		Type:     "complete",
		Total:    total,
		Message:  "Resume generation completed",
		Sections: completed,
	})
}

func intPtr(v int) *int { return &v }

func strPtr(v string) *string { return &v }
