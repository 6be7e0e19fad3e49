package generation

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"resume-builder/internal/profiles"
)

type stubGenerator struct {
	calls   []string
	failOn  map[int]error
	content string
}

func (g *stubGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	call := len(g.calls)
	g.calls = append(g.calls, prompt)
	if err, ok := g.failOn[call]; ok {
		return "", err
	}
	return fmt.Sprintf("%s #%d", g.content, call), nil
}

type stubLimiter struct {
	allowed bool
	count   int
	err     error
	tokens  []string
}

func (l *stubLimiter) CheckAndConsume(ctx context.Context, token string) (bool, int, error) {
	l.tokens = append(l.tokens, token)
	return l.allowed, l.count, l.err
}

func collect(t *testing.T, ch <-chan Event) []Event {
	t.Helper()
	var out []Event
	for ev := range ch {
		out = append(out, ev)
	}
	return out
}

func newPipeline(gen *stubGenerator, limiter RateLimiter) *Service {
	repo := profiles.NewMemoryRepo()
	repo.Seed(7, testDetails())
	return &Service{Profiles: repo, Generator: gen, Limiter: limiter}
}

func TestRunEmitsAllSectionsInOrder(t *testing.T) {
	gen := &stubGenerator{content: "generated"}
	svc := newPipeline(gen, nil)

	events := collect(t, svc.Run(context.Background(), Request{
		UserID:         7,
		Username:       "alice",
		JobDescription: "Go backend role",
		Instruction:    "keep it concise",
	}))

	// 1 opening progress + 4 sections, each preceded by a progress frame,
	// + 1 complete.
	if len(events) != 10 {
		t.Fatalf("events = %d, want 10: %+v", len(events), events)
	}

	first := events[0]
	if first.Type != "progress" || first.Total != 4 || first.Current == nil || *first.Current != 0 {
		t.Fatalf("opening event = %+v", first)
	}

	var sections []Event
	for _, ev := range events {
		if ev.Type == "section" {
			sections = append(sections, ev)
		}
	}
	if len(sections) != 4 {
		t.Fatalf("section events = %d, want 4", len(sections))
	}
	wantKinds := []string{"summary", "experience", "experience", "project"}
	for i, want := range wantKinds {
		if sections[i].Section != want {
			t.Fatalf("section %d = %q, want %q", i, sections[i].Section, want)
		}
		if sections[i].Content == "" {
			t.Fatalf("section %d has empty content", i)
		}
	}
	if sections[1].CompanyName == nil || *sections[1].CompanyName != "Acme" {
		t.Fatalf("experience event missing company name: %+v", sections[1])
	}
	if sections[3].ProjectName == nil || *sections[3].ProjectName != "cachekit" {
		t.Fatalf("project event missing project name: %+v", sections[3])
	}

	last := events[len(events)-1]
	if last.Type != "complete" {
		t.Fatalf("last event = %+v, want complete", last)
	}
	wantSections := []string{"summary", "experience_0", "experience_1", "project_0"}
	if len(last.Sections) != len(wantSections) {
		t.Fatalf("complete sections = %v, want %v", last.Sections, wantSections)
	}
	for i, want := range wantSections {
		if last.Sections[i] != want {
			t.Fatalf("complete sections[%d] = %q, want %q", i, last.Sections[i], want)
		}
	}
}

func TestRunSectionErrorDoesNotAbort(t *testing.T) {
	gen := &stubGenerator{
		content: "generated",
		failOn:  map[int]error{1: errors.New("ollama timeout")},
	}
	svc := newPipeline(gen, nil)

	events := collect(t, svc.Run(context.Background(), Request{
		UserID:         7,
		JobDescription: "jd",
		Instruction:    "p",
	}))

	var sectionErrs, sections int
	for _, ev := range events {
		switch ev.Type {
		case "section_error":
			sectionErrs++
			if !strings.Contains(ev.Error, "ollama timeout") {
				t.Fatalf("section_error message = %q", ev.Error)
			}
		case "section":
			sections++
		}
	}
	if sectionErrs != 1 {
		t.Fatalf("section_error events = %d, want 1", sectionErrs)
	}
	if sections != 3 {
		t.Fatalf("section events = %d, want 3", sections)
	}
	last := events[len(events)-1]
	if last.Type != "complete" {
		t.Fatalf("last event = %+v, want complete", last)
	}
	// The failed section is not in the completed list.
	for _, name := range last.Sections {
		if name == "experience_0" {
			t.Fatalf("failed section listed as completed: %v", last.Sections)
		}
	}
}

func TestRunMissingInputsIsFatal(t *testing.T) {
	gen := &stubGenerator{content: "generated"}
	svc := newPipeline(gen, nil)

	events := collect(t, svc.Run(context.Background(), Request{UserID: 7}))
	if len(events) != 1 || events[0].Type != "error" {
		t.Fatalf("events = %+v, want single error", events)
	}
	if events[0].Error != "prompt, job_description, and user_id are required" {
		t.Fatalf("error message = %q", events[0].Error)
	}
	if len(gen.calls) != 0 {
		t.Fatalf("generator called %d times for invalid input", len(gen.calls))
	}
}

func TestRunMissingPromptIsFatal(t *testing.T) {
	gen := &stubGenerator{content: "generated"}
	svc := newPipeline(gen, nil)

	events := collect(t, svc.Run(context.Background(), Request{
		UserID:         7,
		JobDescription: "jd",
	}))
	if len(events) != 1 || events[0].Type != "error" {
		t.Fatalf("events = %+v, want single error", events)
	}
	if len(gen.calls) != 0 {
		t.Fatalf("generator called %d times for invalid input", len(gen.calls))
	}
}

func TestRunWithoutGeneratorIsFatal(t *testing.T) {
	repo := profiles.NewMemoryRepo()
	repo.Seed(7, testDetails())
	svc := &Service{Profiles: repo, Generator: nil}

	events := collect(t, svc.Run(context.Background(), Request{
		UserID:         7,
		JobDescription: "jd",
		Instruction:    "p",
	}))
	if len(events) != 1 || events[0].Type != "error" {
		t.Fatalf("events = %+v, want single terminal error", events)
	}
	if !strings.Contains(events[0].Error, "not configured") {
		t.Fatalf("error message = %q", events[0].Error)
	}
}

func TestRunUnknownUserIsFatal(t *testing.T) {
	gen := &stubGenerator{content: "generated"}
	svc := newPipeline(gen, nil)

	events := collect(t, svc.Run(context.Background(), Request{
		UserID:         99,
		JobDescription: "jd",
		Instruction:    "p",
	}))
	if len(events) != 1 || events[0].Type != "error" {
		t.Fatalf("events = %+v, want single error", events)
	}
	if !strings.Contains(events[0].Error, "99") {
		t.Fatalf("error does not name the user: %q", events[0].Error)
	}
}

func TestRunDemoUserRequiresToken(t *testing.T) {
	svc := newPipeline(&stubGenerator{content: "x"}, &stubLimiter{allowed: true})

	events := collect(t, svc.Run(context.Background(), Request{
		UserID:         7,
		Username:       DemoUsername,
		JobDescription: "jd",
		Instruction:    "p",
	}))
	if len(events) != 1 || events[0].Type != "error" {
		t.Fatalf("events = %+v, want single error", events)
	}
}

func TestRunDemoUserRateLimited(t *testing.T) {
	limiter := &stubLimiter{allowed: false, count: 5}
	gen := &stubGenerator{content: "x"}
	svc := newPipeline(gen, limiter)

	events := collect(t, svc.Run(context.Background(), Request{
		UserID:         7,
		Username:       DemoUsername,
		JobDescription: "jd",
		Instruction:    "p",
		Token:          "tok",
	}))

	if len(events) != 1 {
		t.Fatalf("events = %+v, want single error", events)
	}
	ev := events[0]
	if ev.Type != "error" || !ev.RateLimitExceeded || ev.CurrentCount != 5 {
		t.Fatalf("rate limit event = %+v", ev)
	}
	if len(gen.calls) != 0 {
		t.Fatalf("generator must not run when rate limited")
	}
	if len(limiter.tokens) != 1 || limiter.tokens[0] != "tok" {
		t.Fatalf("limiter saw tokens %v", limiter.tokens)
	}
}

func TestRunDemoUserAllowedProceeds(t *testing.T) {
	limiter := &stubLimiter{allowed: true, count: 1}
	svc := newPipeline(&stubGenerator{content: "x"}, limiter)

	events := collect(t, svc.Run(context.Background(), Request{
		UserID:         7,
		Username:       DemoUsername,
		JobDescription: "jd",
		Instruction:    "p",
		Token:          "tok",
	}))

	if events[len(events)-1].Type != "complete" {
		t.Fatalf("last event = %+v, want complete", events[len(events)-1])
	}
}

func TestRunStopsAfterCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	gen := &stubGenerator{content: "x"}
	svc := newPipeline(gen, nil)

	ch := svc.Run(ctx, Request{UserID: 7, JobDescription: "jd", Instruction: "p"})

	// Read the opening progress, then disconnect.
	<-ch
	cancel()
	for range ch {
	}

	// At most one generation can already be in flight at cancel time.
	if len(gen.calls) > 1 {
		t.Fatalf("generator ran %d times after cancel", len(gen.calls))
	}
}
