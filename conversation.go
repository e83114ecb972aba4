// SPDX-License-Identifier: MIT

package voxhook

import (
	"encoding/json"
	"net/http"
	"sort"
	"sync/atomic"

	"github.com/rs/zerolog"
	"golang.org/x/text/language"

	"github.com/voxhook/voxhook/internal/log"
	"github.com/voxhook/voxhook/internal/serialize"
	"github.com/voxhook/voxhook/internal/wire"
	"github.com/voxhook/voxhook/rich"
)

// Generation identifies the API generation of a turn.
type Generation = wire.Generation

// FrontEnd identifies the integration that delivered a turn.
type FrontEnd = wire.FrontEnd

// Re-exported enum values.
const (
	Gen1       = wire.Gen1
	Gen2       = wire.Gen2
	ActionsSDK = wire.ActionsSDK
	Dialogflow = wire.Dialogflow
)

// Conversation is the unified per-turn model. It is constructed fresh from
// the raw body on every inbound call, owned by that call's execution, and
// discarded afterwards; all cross-call continuity round-trips through the
// dialog token or the reserved context.
//
// A Conversation must not be mutated from concurrently running goroutines;
// the respond-once guard is the only concurrent-access protection it carries.
type Conversation struct {
	raw  []byte
	gen  wire.Generation
	fe   wire.FrontEnd
	t    turn
	info turnMeta

	locale language.Tag

	state     dialogState
	stateLost bool
	contexts  map[string]Context
	deleted   map[string]bool

	responded atomic.Bool
	pending   pendingResponse

	apiVersion string
	logger     zerolog.Logger
}

// pendingResponse is the response model accumulated by handler calls.
type pendingResponse struct {
	rich               *rich.Response
	noInputPrompts     []string
	systemIntent       *rich.SystemIntent
	expectUserResponse bool
}

func newConversation(gen wire.Generation, fe wire.FrontEnd, body []byte, t turn, apiVersion string) *Conversation {
	c := &Conversation{
		raw:        body,
		gen:        gen,
		fe:         fe,
		t:          t,
		info:       t.meta(),
		contexts:   map[string]Context{},
		deleted:    map[string]bool{},
		apiVersion: apiVersion,
	}
	c.logger = log.Derive(func(zc *zerolog.Context) {
		*zc = zc.Str(log.FieldComponent, "conversation").
			Str(log.FieldConversationID, c.info.ConversationID)
	})

	ds, ok := decodeDialogState(t.statePayload())
	c.state, c.stateLost = ds, !ok
	if c.stateLost {
		c.logger.Debug().
			Str(log.FieldEvent, "state.reset").
			Msg("malformed dialog state; starting empty")
	}

	// Expired contexts never reach handlers; the reserved context is
	// library-internal and hidden from the developer's working set.
	for _, ctx := range t.inboundContexts() {
		if ctx.Name == reservedContextName || ctx.Lifespan <= 0 {
			continue
		}
		c.contexts[ctx.Name] = ctx
	}

	if tag, err := language.Parse(c.info.Locale); err == nil {
		c.locale = tag
	} else {
		c.locale = language.Und
	}
	return c
}

// RawBody returns the untouched inbound payload.
func (c *Conversation) RawBody() []byte { return c.raw }

// APIGeneration returns the detected API generation.
func (c *Conversation) APIGeneration() Generation { return c.gen }

// FrontEnd returns the detected front-end integration.
func (c *Conversation) FrontEnd() FrontEnd { return c.fe }

// Intent returns the dispatch key of the turn.
func (c *Conversation) Intent() string { return c.t.intentKey() }

// Query returns the raw user utterance, empty for non-speech turns.
func (c *Conversation) Query() string { return c.t.query() }

// Parameters returns the NLU slot values (Dialogflow front end only).
func (c *Conversation) Parameters() map[string]any { return c.t.parameters() }

// Param returns one slot value, or nil.
func (c *Conversation) Param(name string) any {
	return c.t.parameters()[name]
}

// Arguments returns the normalized typed arguments of the turn.
func (c *Conversation) Arguments() []Argument { return c.t.arguments() }

// Argument returns the named argument, or nil.
func (c *Conversation) Argument(name string) *Argument {
	for _, a := range c.t.arguments() {
		if a.Name == name {
			arg := a
			return &arg
		}
	}
	return nil
}

// FirstArgument returns the first argument of the turn, or nil.
func (c *Conversation) FirstArgument() *Argument {
	if args := c.t.arguments(); len(args) > 0 {
		arg := args[0]
		return &arg
	}
	return nil
}

// ConversationID returns the platform conversation/session identifier.
func (c *Conversation) ConversationID() string { return c.info.ConversationID }

// Locale returns the parsed user locale, language.Und when absent.
func (c *Conversation) Locale() language.Tag { return c.locale }

// User returns the calling user as far as granted permissions allow.
func (c *Conversation) User() User { return c.info.User }

// DeviceLocation returns the device location, nil unless granted.
func (c *Conversation) DeviceLocation() *Location { return c.info.Location }

// Surface returns the capability set of the calling surface.
func (c *Conversation) Surface() Surface { return c.info.Surface }

// Sandbox reports whether the turn runs in the platform sandbox.
func (c *Conversation) Sandbox() bool { return c.info.Sandbox }

// Data returns the free-form session data map persisted across turns. The
// returned map is live: mutations are serialized into the next response.
func (c *Conversation) Data() map[string]any { return c.state.Data }

// SetData replaces the session data map.
func (c *Conversation) SetData(data map[string]any) {
	if data == nil {
		data = map[string]any{}
	}
	c.state.Data = data
}

// State returns the developer-assigned conversation state, nil by default.
func (c *Conversation) State() any { return c.state.State }

// SetState assigns the conversation state identifier.
func (c *Conversation) SetState(state string) { c.state.State = state }

// ClearState resets the conversation state to its null default.
func (c *Conversation) ClearState() { c.state.State = nil }

// StateLost reports whether the round-tripped state was malformed and reset
// to empty on intake.
func (c *Conversation) StateLost() bool { return c.stateLost }

// Contexts returns the active (lifespan > 0) contexts, sorted by name.
func (c *Conversation) Contexts() []Context {
	out := make([]Context, 0, len(c.contexts))
	for _, ctx := range c.contexts {
		out = append(out, ctx)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// GetContext returns the named active context.
func (c *Conversation) GetContext(name string) (Context, bool) {
	ctx, ok := c.contexts[name]
	return ctx, ok
}

// SetContext creates or overwrites a context entry. A lifespan of zero is an
// explicit deletion.
func (c *Conversation) SetContext(name string, lifespan int, parameters map[string]any) {
	if lifespan <= 0 {
		c.DeleteContext(name)
		return
	}
	delete(c.deleted, name)
	c.contexts[name] = Context{Name: name, Lifespan: lifespan, Parameters: parameters}
}

// DeleteContext removes a context. The observable contract is identical on
// both front ends: the context is absent from the next inbound call's active
// set (encoded as an explicit zero-lifespan entry where the wire requires it).
func (c *Conversation) DeleteContext(name string) {
	delete(c.contexts, name)
	c.deleted[name] = true
}

// Ask sends a rich response and keeps the conversation open. Up to three
// no-input reprompts may be supplied. The first Ask or Tell on a turn wins;
// later calls are silent no-ops.
func (c *Conversation) Ask(resp *rich.Response, noInputPrompts ...string) error {
	if resp == nil {
		return rich.ErrNoSimpleItem
	}
	if err := resp.Validate(); err != nil {
		return err
	}
	if err := rich.CheckPromptCount(noInputPrompts); err != nil {
		return err
	}
	return c.commit(pendingResponse{
		rich:               resp,
		noInputPrompts:     noInputPrompts,
		expectUserResponse: true,
	})
}

// AskSimple is Ask with a single text-or-SSML prompt.
func (c *Conversation) AskSimple(text string, noInputPrompts ...string) error {
	return c.Ask(rich.NewResponse().AddSimple(text, ""), noInputPrompts...)
}

// Tell sends a rich response and ends the conversation.
func (c *Conversation) Tell(resp *rich.Response) error {
	if resp == nil {
		return rich.ErrNoSimpleItem
	}
	if err := resp.Validate(); err != nil {
		return err
	}
	return c.commit(pendingResponse{rich: resp})
}

// TellText is Tell with a single text-or-SSML prompt.
func (c *Conversation) TellText(text string) error {
	return c.Tell(rich.NewResponse().AddSimple(text, ""))
}

// AskSystemIntent requests structured input via a platform system intent.
// The initial prompt is a placeholder; the platform owns the rendered text.
func (c *Conversation) AskSystemIntent(si *rich.SystemIntent) error {
	if si == nil {
		return rich.ErrNoSimpleItem
	}
	return c.commit(pendingResponse{
		rich:               rich.NewResponse().AddSimple(si.Placeholder, ""),
		systemIntent:       si,
		expectUserResponse: true,
	})
}

// AskForPermission requests user-data permissions.
func (c *Conversation) AskForPermission(optContext string, permissions ...rich.Permission) error {
	si, err := rich.NewPermission(optContext, permissions...)
	if err != nil {
		return err
	}
	return c.AskSystemIntent(si)
}

// AskForSignIn requests account linking.
func (c *Conversation) AskForSignIn(actionPhrase string) error {
	si, err := rich.NewSignIn(actionPhrase)
	if err != nil {
		return err
	}
	return c.AskSystemIntent(si)
}

// AskForConfirmation asks a yes/no question.
func (c *Conversation) AskForConfirmation(text string) error {
	si, err := rich.NewConfirmation(text)
	if err != nil {
		return err
	}
	return c.AskSystemIntent(si)
}

// AskForDateTime asks for a date and time.
func (c *Conversation) AskForDateTime(initialPrompt, datePrompt, timePrompt string) error {
	si, err := rich.NewDateTime(initialPrompt, datePrompt, timePrompt)
	if err != nil {
		return err
	}
	return c.AskSystemIntent(si)
}

// AskForDeliveryAddress asks for a delivery address.
func (c *Conversation) AskForDeliveryAddress(reason string) error {
	return c.AskSystemIntent(rich.NewDeliveryAddress(reason))
}

// AskForTransactionRequirements checks whether the user can transact.
func (c *Conversation) AskForTransactionRequirements(orderOptions, paymentOptions map[string]any) error {
	return c.AskSystemIntent(rich.NewTransactionRequirements(orderOptions, paymentOptions))
}

// AskForTransactionDecision asks the user to confirm a proposed order.
func (c *Conversation) AskForTransactionDecision(proposedOrder, orderOptions, paymentOptions map[string]any) error {
	si, err := rich.NewTransactionDecision(proposedOrder, orderOptions, paymentOptions)
	if err != nil {
		return err
	}
	return c.AskSystemIntent(si)
}

// AskWithList asks the user to pick from a selection list.
func (c *Conversation) AskWithList(prompt string, list *rich.ListSelect) error {
	si, err := rich.NewListOption(list)
	if err != nil {
		return err
	}
	return c.commit(pendingResponse{
		rich:               rich.NewResponse().AddSimple(prompt, ""),
		systemIntent:       si,
		expectUserResponse: true,
	})
}

// AskWithCarousel asks the user to pick from a selection carousel.
func (c *Conversation) AskWithCarousel(prompt string, carousel *rich.CarouselSelect) error {
	si, err := rich.NewCarouselOption(carousel)
	if err != nil {
		return err
	}
	return c.commit(pendingResponse{
		rich:               rich.NewResponse().AddSimple(prompt, ""),
		systemIntent:       si,
		expectUserResponse: true,
	})
}

// commit installs the response model exactly once. Validation has already
// passed by the time commit runs, so a lost race is a no-op, not an error.
func (c *Conversation) commit(p pendingResponse) error {
	if !c.responded.CompareAndSwap(false, true) {
		c.logger.Debug().
			Str(log.FieldEvent, "respond.duplicate").
			Msg("response already written for this turn; ignoring")
		return nil
	}
	c.pending = p
	return nil
}

// hasResponded reports whether Ask or Tell has committed a response.
func (c *Conversation) hasResponded() bool { return c.responded.Load() }

// serializeResponse projects the committed response model into wire JSON.
func (c *Conversation) serializeResponse() ([]byte, http.Header, error) {
	if !c.hasResponded() {
		return nil, nil, ErrEmptyResponse
	}

	in := serialize.Input{
		Generation:         c.gen,
		FrontEnd:           c.fe,
		ExpectUserResponse: c.pending.expectUserResponse,
		Rich:               c.pending.rich,
		NoInputPrompts:     c.pending.noInputPrompts,
		SystemIntent:       c.pending.systemIntent,
		Session:            c.info.Session,
		APIVersion:         c.apiVersion,
		Sandbox:            c.info.Sandbox,
	}

	if c.pending.expectUserResponse {
		token, err := c.state.encode()
		if err != nil {
			return nil, nil, err
		}
		in.DialogToken = token
	}
	in.Contexts = c.outboundContexts(in.DialogToken)

	body, header, err := serialize.Response(in)
	if err != nil {
		return nil, nil, err
	}
	return body, header, nil
}

// outboundContexts resolves the outgoing context list: the reserved state
// context first (asks only), then developer contexts sorted by name, then
// explicit deletions as zero-lifespan entries.
func (c *Conversation) outboundContexts(token string) []serialize.ContextOut {
	var out []serialize.ContextOut
	if c.pending.expectUserResponse {
		lifespan := reservedLifespanV1
		if c.gen == wire.Gen2 {
			lifespan = reservedLifespanV2
		}
		out = append(out, serialize.ContextOut{
			Name:       reservedContextName,
			Lifespan:   lifespan,
			Parameters: map[string]any{"data": token},
		})
	}
	for _, ctx := range c.Contexts() {
		out = append(out, serialize.ContextOut{
			Name:       ctx.Name,
			Lifespan:   ctx.Lifespan,
			Parameters: ctx.Parameters,
		})
	}
	deleted := make([]string, 0, len(c.deleted))
	for name := range c.deleted {
		deleted = append(deleted, name)
	}
	sort.Strings(deleted)
	for _, name := range deleted {
		out = append(out, serialize.ContextOut{Name: name, Lifespan: 0})
	}
	return out
}

// Typed argument accessors. Each reads the single argument its system intent
// populates; absence is reported, never fabricated.

// PermissionGranted reports whether the user granted a permission request.
func (c *Conversation) PermissionGranted() bool {
	arg := c.Argument(wire.ArgPermission)
	if arg == nil {
		return false
	}
	if arg.BoolValue != nil {
		return *arg.BoolValue
	}
	return arg.TextValue == "true"
}

// Confirmation returns the user's yes/no answer to a confirmation request.
func (c *Conversation) Confirmation() (value, ok bool) {
	arg := c.Argument(wire.ArgConfirmation)
	if arg == nil || arg.BoolValue == nil {
		return false, false
	}
	return *arg.BoolValue, true
}

// DateTimeValue returns the date-time the user supplied.
func (c *Conversation) DateTimeValue() (*DateTime, bool) {
	arg := c.Argument(wire.ArgDateTime)
	if arg == nil || arg.DateTime == nil {
		return nil, false
	}
	return arg.DateTime, true
}

// SelectedOption returns the key of the option the user picked from a list
// or carousel.
func (c *Conversation) SelectedOption() (string, bool) {
	arg := c.Argument(wire.ArgOption)
	if arg == nil {
		return "", false
	}
	if arg.TextValue != "" {
		return arg.TextValue, true
	}
	if arg.RawText != "" {
		return arg.RawText, true
	}
	return "", false
}

// SignInStatus returns the status string of a sign-in flow ("OK",
// "CANCELLED", "ERROR"), decoded from the argument extension.
func (c *Conversation) SignInStatus() (string, bool) {
	arg := c.Argument(wire.ArgSignIn)
	if arg == nil {
		return "", false
	}
	var ext struct {
		Status string `json:"status"`
	}
	if len(arg.Extension) > 0 && json.Unmarshal(arg.Extension, &ext) == nil && ext.Status != "" {
		return ext.Status, true
	}
	if arg.TextValue != "" {
		return arg.TextValue, true
	}
	return "", false
}

// DeliveryAddress returns the raw delivery-address extension payload.
func (c *Conversation) DeliveryAddress() (json.RawMessage, bool) {
	arg := c.Argument(wire.ArgDeliveryAddress)
	if arg == nil || len(arg.Extension) == 0 {
		return nil, false
	}
	return arg.Extension, true
}

// TransactionRequirementsResult returns the result of a requirements check.
func (c *Conversation) TransactionRequirementsResult() (string, bool) {
	arg := c.Argument(wire.ArgTransactionRequirements)
	if arg == nil {
		return "", false
	}
	var ext struct {
		ResultType string `json:"resultType"`
	}
	if len(arg.Extension) > 0 && json.Unmarshal(arg.Extension, &ext) == nil && ext.ResultType != "" {
		return ext.ResultType, true
	}
	return arg.TextValue, arg.TextValue != ""
}

// TransactionDecision returns the user's decision on a proposed order.
func (c *Conversation) TransactionDecision() (json.RawMessage, bool) {
	arg := c.Argument(wire.ArgTransactionDecision)
	if arg == nil || len(arg.Extension) == 0 {
		return nil, false
	}
	return arg.Extension, true
}
