// Package agent runs the conversation loop: assemble memory context,
// call the model, dispatch tool calls to handlers, and speak the
// reply.
package agent

import (
	"context"
	"log"
	"time"

	"github.com/maltai/maltai-go/audio"
	"github.com/maltai/maltai-go/core"
	"github.com/maltai/maltai-go/memory"
	"github.com/maltai/maltai-go/model"
	"github.com/maltai/maltai-go/tools"
)

// Agent drives one user's conversation. A turn flows through a fixed
// pipeline: the user's text joins the transcript, memory context is
// assembled into the system prompt, the model responds, at most one
// tool branch runs, and the final message is spoken.
type Agent struct {
	store     memory.Store
	client    model.Client
	config    Configuration
	assembler *Assembler
	handlers  map[tools.Kind]tools.Handler

	synthesizer audio.Synthesizer
	player      audio.Player

	maxTokens     int
	storeTimeout  time.Duration
	modelTimeout  time.Duration
	speechTimeout time.Duration
	now           func() time.Time
}

// Option configures an Agent.
type Option func(*Agent)

// WithSpeech wires a synthesizer and player so replies are spoken.
func WithSpeech(synthesizer audio.Synthesizer, player audio.Player) Option {
	return func(a *Agent) {
		a.synthesizer = synthesizer
		a.player = player
	}
}

// WithMaxTokens caps the model response length.
func WithMaxTokens(n int) Option {
	return func(a *Agent) {
		a.maxTokens = n
	}
}

// WithTimeouts bounds each external suspension point: store access,
// the model call, and speech synthesis. Zero keeps the default.
func WithTimeouts(store, model, speech time.Duration) Option {
	return func(a *Agent) {
		if store > 0 {
			a.storeTimeout = store
		}
		if model > 0 {
			a.modelTimeout = model
		}
		if speech > 0 {
			a.speechTimeout = speech
		}
	}
}

// WithClock overrides the time source used in the system prompt.
func WithClock(now func() time.Time) Option {
	return func(a *Agent) {
		a.now = now
	}
}

// New creates an agent over the given store and model client.
func New(store memory.Store, client model.Client, config Configuration, opts ...Option) *Agent {
	a := &Agent{
		store:     store,
		client:    client,
		config:    config,
		assembler: NewAssembler(store),
		handlers: map[tools.Kind]tools.Handler{
			tools.KindStoreMemory:        tools.NewMemoryHandler(store),
			tools.KindAddTodo:            tools.NewTodoHandler(store),
			tools.KindUpdateProfile:      tools.NewProfileHandler(store),
			tools.KindUpdateInstructions: tools.NewInstructionsHandler(store),
		},
		maxTokens:     model.DefaultMaxTokens,
		storeTimeout:  10 * time.Second,
		modelTimeout:  60 * time.Second,
		speechTimeout: 30 * time.Second,
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Config returns the agent's configuration.
func (a *Agent) Config() Configuration {
	return a.config
}

// Canned replies for infrastructure failures. The turn still ends at
// the speech stage so the user hears that something went wrong
// instead of silence.
const (
	memoryTroubleReply = "Sorry, I'm having trouble accessing my memory right now. Please try again."
	modelTroubleReply  = "Sorry, I'm having trouble thinking right now. Please try again."
	toolTroubleReply   = "Sorry, I couldn't finish that for you. Please try again."
)

// Turn runs one conversation turn. history is the transcript so far;
// text is the user's new utterance. It returns the spoken reply and
// the messages this turn appended, in order: the user message, the
// assistant message, then any tool results.
//
// Infrastructure failures (store, model, tool handler) do not error
// the turn; they are reported to the user as an assistant message and
// logged. The error return is reserved for context cancellation.
func (a *Agent) Turn(ctx context.Context, history []core.Message, text string) (string, []core.Message, error) {
	turn := []core.Message{core.NewUserMessage(text)}
	transcript := append(append([]core.Message(nil), history...), turn...)

	assembleCtx, cancelAssemble := context.WithTimeout(ctx, a.storeTimeout)
	pc, err := a.assembler.Assemble(assembleCtx, a.config.UserID, transcript)
	cancelAssemble()
	if err != nil {
		if ctx.Err() != nil {
			return "", nil, ctx.Err()
		}
		log.Printf("[AGENT] Context assembly failed: %v", err)
		return a.finish(ctx, turn, memoryTroubleReply)
	}

	system := RenderPrompt(a.config.SystemPrompt, map[string]string{
		"user_info":    pc.UserInfo,
		"time":         a.now().Format(time.RFC3339),
		"profile_info": pc.ProfileInfo,
		"todo_list":    pc.TodoList,
		"instructions": pc.Instructions,
	})

	modelCtx, cancelModel := context.WithTimeout(ctx, a.modelTimeout)
	resp, err := a.client.Generate(modelCtx, &model.Request{
		System:    system,
		Messages:  transcript,
		Tools:     tools.Definitions(),
		MaxTokens: a.maxTokens,
	})
	cancelModel()
	if err != nil {
		if ctx.Err() != nil {
			return "", nil, ctx.Err()
		}
		log.Printf("[AGENT] Model call failed: %v", err)
		return a.finish(ctx, turn, modelTroubleReply)
	}

	turn = append(turn, *resp)
	route := RouteMessage(*resp)
	log.Printf("[AGENT] user=%s route=%s tool_calls=%d", a.config.UserID, route, len(resp.ToolCalls))

	if route == RouteFinalize {
		return a.finish(ctx, turn, resp.Content)
	}

	toolCtx, cancelTool := context.WithTimeout(ctx, a.storeTimeout)
	results, err := a.handlers[route.Kind()].Execute(toolCtx, a.config.UserID, resp.ToolCalls)
	cancelTool()
	if err != nil {
		if ctx.Err() != nil {
			return "", nil, ctx.Err()
		}
		log.Printf("[AGENT] Tool handler %s failed: %v", route, err)
		return a.finish(ctx, turn, toolTroubleReply)
	}
	turn = append(turn, results...)

	// The spoken reply is whatever the turn ends on: the last tool
	// result when a handler ran, the assistant text otherwise.
	reply := resp.Content
	if len(results) > 0 {
		reply = results[len(results)-1].Content
	}
	return a.finish(ctx, turn, reply)
}

// finish appends a synthetic assistant message when the reply did not
// come from the model, then speaks the reply.
func (a *Agent) finish(ctx context.Context, turn []core.Message, reply string) (string, []core.Message, error) {
	last := turn[len(turn)-1]
	if last.Role != core.RoleAssistant && last.Role != core.RoleTool {
		turn = append(turn, core.NewAssistantMessage(reply))
	}
	a.Speak(ctx, reply)
	return reply, turn, nil
}

// Speak voices the reply when speech output is configured. Playback
// failures are logged, not returned; a lost utterance should not fail
// the turn that produced it.
func (a *Agent) Speak(ctx context.Context, text string) {
	if a.synthesizer == nil || a.player == nil || text == "" {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, a.speechTimeout)
	defer cancel()
	speech, err := a.synthesizer.Synthesize(ctx, audio.CleanForSpeech(text))
	if err != nil {
		log.Printf("[AGENT] Speech synthesis failed: %v", err)
		return
	}
	if err := a.player.Play(ctx, speech); err != nil {
		log.Printf("[AGENT] Audio playback failed: %v", err)
	}
}
