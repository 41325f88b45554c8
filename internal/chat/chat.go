// Package chat runs the interactive conversation loop: user text goes to the
// model, function calls in the reply are executed against the schedule, and
// a follow-up request turns each result into a natural-language answer.
package chat

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"schedchat/internal/gemini"
	"schedchat/internal/schedule"
	"schedchat/internal/tools"
)

// maxToolDepth bounds the tool-call/follow-up protocol: a function call in a
// follow-up response is not executed.
const maxToolDepth = 1

// exitSentinel ends the session (matched case-insensitively).
const exitSentinel = "exit"

// maxLineBytes bounds a single line of user input. Scanner's 64KB default is
// too small for long pastes and would silently end the session.
const maxLineBytes = 1 << 20

// systemPrompt primes the model with its role, the current date and the
// serialized schedule. The conflict-avoidance and goal-coaching guidance is
// prompted behavior; nothing in this program checks overlaps itself.
const systemPrompt = `You are a personal scheduling assistant. Manage the user's schedule using the available tools.
Current date: %s.
Current schedule: %s

When the user asks you to decide or choose a time, analyze their current schedule and suggest available time slots that don't conflict with existing events.
Be proactive in suggesting times based on:
- Avoiding conflicts with existing events
- Common preferences (e.g., morning for exercise, afternoon for meetings)
- Gaps in their schedule
Always provide 2-3 time options when suggesting.

When the user mentions a problem, goal, or improvement area (like "I lack GK", "I need to exercise", "I want to learn coding"),
be helpful and proactive. Suggest adding relevant events or tasks to their schedule to help them achieve their goal.
For example:
- "I lack GK" → Suggest adding daily/weekly GK reading or quiz sessions
- "I need to exercise" → Suggest adding workout sessions
- "I want to learn X" → Suggest adding study/practice sessions

Always relate their goals back to their schedule and offer to help them make time for improvement.`

// Generator produces a model response from conversation history plus the
// advertised tool schema. *gemini.Client satisfies it; tests substitute a
// scripted fake.
type Generator interface {
	GenerateContent(ctx context.Context, contents []gemini.Content, tools []gemini.Tool) (*gemini.Content, error)
}

// Session owns one conversation: its history, the store it mutates and the
// streams it reads from and writes to. History grows for the lifetime of the
// session and is not persisted.
type Session struct {
	gen     Generator
	disp    *tools.Dispatcher
	label   string
	in      io.Reader
	out     io.Writer
	now     func() time.Time
	history []gemini.Content
	tools   []gemini.Tool
}

// NewSession seeds a session with the priming turn built from the current
// date and the store's schedule. label names the model in the banner and
// reply prefix. now may be nil, in which case time.Now is used.
func NewSession(gen Generator, disp *tools.Dispatcher, store *schedule.Store, label string, in io.Reader, out io.Writer, now func() time.Time) *Session {
	if now == nil {
		now = time.Now
	}
	scheduleJSON, _ := json.Marshal(store.Snapshot())
	prompt := fmt.Sprintf(systemPrompt, now().Format("2006-01-02"), scheduleJSON)
	return &Session{
		gen:     gen,
		disp:    disp,
		label:   label,
		in:      in,
		out:     out,
		now:     now,
		history: []gemini.Content{gemini.TextContent("user", prompt)},
		tools:   []gemini.Tool{{FunctionDeclarations: tools.Declarations}},
	}
}

// Run reads user lines until the exit sentinel or end of input, fully
// resolving each turn (tool execution and follow-up included) before
// accepting the next. Transport and persistence errors end the session.
func (s *Session) Run(ctx context.Context) error {
	fmt.Fprintf(s.out, "Chat with %s. Type 'exit' to quit.\n", s.label)

	scanner := bufio.NewScanner(s.in)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	for {
		fmt.Fprint(s.out, "You: ")
		if !scanner.Scan() {
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		if strings.EqualFold(line, exitSentinel) {
			return nil
		}
		s.history = append(s.history, gemini.TextContent("user", line))
		if err := s.respond(ctx, 0); err != nil {
			return err
		}
	}
}

// respond issues one model request over the current history and processes the
// reply's parts in order. Text parts are printed and appended; function calls
// are executed only while depth < maxToolDepth, each execution appending a
// function-response turn before the follow-up request sees the history.
func (s *Session) respond(ctx context.Context, depth int) error {
	content, err := s.gen.GenerateContent(ctx, s.history, s.tools)
	if err != nil {
		return err
	}
	if content == nil || len(content.Parts) == 0 {
		if depth == 0 {
			fmt.Fprintf(s.out, "%s: No response received.\n", s.label)
		}
		return nil
	}

	for _, part := range content.Parts {
		if part.Text != "" {
			fmt.Fprintf(s.out, "%s: %s\n", s.label, part.Text)
			s.history = append(s.history, gemini.TextContent("model", part.Text))
		}
		if part.FunctionCall == nil || depth >= maxToolDepth {
			continue
		}
		result, err := s.disp.Dispatch(part.FunctionCall.Name, part.FunctionCall.Args)
		if err != nil {
			return err
		}
		s.history = append(s.history, gemini.Content{
			Role: "model",
			Parts: []gemini.Part{{
				FunctionResponse: &gemini.FunctionResponse{
					Name:     part.FunctionCall.Name,
					Response: map[string]any{"result": result},
				},
			}},
		})
		if err := s.respond(ctx, depth+1); err != nil {
			return err
		}
	}
	return nil
}

// History returns the conversation so far. Used by tests.
func (s *Session) History() []gemini.Content {
	return s.history
}
