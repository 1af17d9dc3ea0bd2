// Package contact submits the page's contact form to the backend.
package contact

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"slices"
	"strings"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/net/html"

	"folio.dev/internal/dom"
	"folio.dev/internal/models"
)

// Messages shown in the status region when the server sends none.
const (
	MessageSent         = "Message sent successfully! I'll get back to you soon."
	MessageFailed       = "Something went wrong. Please try again or email me directly."
	MessageNetworkError = "Network error. Please try again or email me directly."
)

// Submit control labels and icons.
const (
	labelIdle = "Send Message"
	labelBusy = "Sending..."
	iconIdle  = "fas fa-paper-plane"
	iconBusy  = "fas fa-spinner fa-spin"
)

// ErrNoForm is returned by Bind when the page has no #contact-form.
var ErrNoForm = errors.New("contact form not found")

// State is the submission state of a Form.
type State int

const (
	Idle State = iota
	Submitting
)

func (s State) String() string {
	if s == Submitting {
		return "submitting"
	}
	return "idle"
}

// Result is the outcome of one submission.
type Result struct {
	OK      bool
	Message string
}

// Form drives #contact-form and its status and submit elements.
type Form struct {
	form   *dom.Element
	status *dom.Element
	button *dom.Element
	text   *dom.Element
	icon   *dom.Element

	action   string
	client   *http.Client
	logger   *zap.Logger
	defaults map[*html.Node]fieldState

	mu    sync.Mutex
	state State
}

// Bind attaches to the contact form in doc. action overrides the form's own
// action attribute when non-empty; a relative action is resolved against
// base.
func Bind(doc *dom.Document, base, action string, client *http.Client, logger *zap.Logger) (*Form, error) {
	form := doc.ByID("contact-form")
	if form == nil {
		return nil, ErrNoForm
	}
	if action == "" {
		action = form.Attr("action")
	}
	target, err := resolve(base, action)
	if err != nil {
		return nil, err
	}
	if client == nil {
		client = http.DefaultClient
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	f := &Form{
		form:     form,
		status:   doc.ByID("form-status"),
		button:   doc.ByID("submit-btn"),
		text:     doc.ByID("submit-text"),
		icon:     doc.ByID("submit-icon"),
		action:   target,
		client:   client,
		logger:   logger,
		defaults: make(map[*html.Node]fieldState),
	}
	for _, field := range f.fields() {
		f.defaults[field.Node()] = stateOf(field)
	}
	return f, nil
}

func resolve(base, action string) (string, error) {
	ref, err := url.Parse(action)
	if err != nil {
		return "", fmt.Errorf("parsing form action %q: %w", action, err)
	}
	if ref.IsAbs() || base == "" {
		return ref.String(), nil
	}
	b, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("parsing base url %q: %w", base, err)
	}
	return b.ResolveReference(ref).String(), nil
}

// Action is the URL submissions are posted to.
func (f *Form) Action() string { return f.action }

func (f *Form) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Fill writes user input into the named fields. Unknown names are ignored.
// Checkboxes and radio buttons are checked when their value is listed.
func (f *Form) Fill(values url.Values) {
	for _, field := range f.fields() {
		v, ok := values[field.Attr("name")]
		if !ok || len(v) == 0 {
			continue
		}
		if checkable(field) {
			setChecked(field, slices.Contains(v, checkValue(field)))
			continue
		}
		setFieldValue(field, v[0])
	}
}

// Values collects the current field values, like FormData: unchecked
// checkboxes and radio buttons are left out.
func (f *Form) Values() url.Values {
	out := url.Values{}
	for _, field := range f.fields() {
		if checkable(field) {
			if _, checked := field.LookupAttr("checked"); checked {
				out.Add(field.Attr("name"), checkValue(field))
			}
			continue
		}
		out.Add(field.Attr("name"), fieldValue(field))
	}
	return out
}

// Reset restores every field to the state it had when the form was bound.
func (f *Form) Reset() {
	for _, field := range f.fields() {
		st := f.defaults[field.Node()]
		if checkable(field) {
			setChecked(field, st.checked)
			continue
		}
		setFieldValue(field, st.value)
	}
}

// Submit posts the form as it stands. It reports false, doing nothing,
// while another submission is in flight.
func (f *Form) Submit(ctx context.Context) (Result, bool) {
	return f.SubmitValues(ctx, nil)
}

// SubmitValues fills the form with values and posts it. A submission in
// flight rejects the call before any field is touched.
func (f *Form) SubmitValues(ctx context.Context, values url.Values) (Result, bool) {
	f.mu.Lock()
	if f.state == Submitting {
		f.mu.Unlock()
		return Result{}, false
	}
	f.state = Submitting
	f.mu.Unlock()

	if values != nil {
		f.Fill(values)
	}
	f.setStatus("", nil)
	f.setBusy(true)
	defer func() {
		f.setBusy(false)
		f.mu.Lock()
		f.state = Idle
		f.mu.Unlock()
	}()

	res := f.post(ctx)
	f.setStatus(res.Message, &res.OK)
	if res.OK {
		f.Reset()
	}
	return res, true
}

func (f *Form) post(ctx context.Context) Result {
	requestID := uuid.NewString()
	logger := f.logger.With(zap.String("request_id", requestID), zap.String("action", f.action))

	body, contentType, err := encode(f.Values())
	if err != nil {
		logger.Error("encoding contact form", zap.Error(err))
		return Result{Message: MessageNetworkError}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, f.action, body)
	if err != nil {
		logger.Error("building contact request", zap.Error(err))
		return Result{Message: MessageNetworkError}
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("X-Requested-With", "XMLHttpRequest")
	req.Header.Set("X-Request-ID", requestID)

	resp, err := f.client.Do(req)
	if err != nil {
		logger.Error("submitting contact form", zap.Error(err))
		return Result{Message: MessageNetworkError}
	}
	defer resp.Body.Close()

	var reply models.ContactReply
	if err := json.NewDecoder(resp.Body).Decode(&reply); err != nil && !errors.Is(err, io.EOF) {
		logger.Warn("contact reply is not json", zap.Int("status", resp.StatusCode), zap.Error(err))
		reply = models.ContactReply{}
	}

	ok := resp.StatusCode >= 200 && resp.StatusCode < 300 && reply.Success
	msg := reply.Message
	if msg == "" {
		if ok {
			msg = MessageSent
		} else {
			msg = MessageFailed
		}
	}
	logger.Info("contact form submitted", zap.Int("status", resp.StatusCode), zap.Bool("ok", ok))
	return Result{OK: ok, Message: msg}
}

func encode(values url.Values) (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for name, vs := range values {
		for _, v := range vs {
			if err := w.WriteField(name, v); err != nil {
				return nil, "", fmt.Errorf("writing field %s: %w", name, err)
			}
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("closing multipart body: %w", err)
	}
	return &buf, w.FormDataContentType(), nil
}

// setStatus writes msg to the status region. ok selects the success or
// error style; nil clears both.
func (f *Form) setStatus(msg string, ok *bool) {
	f.status.SetText(msg)
	f.status.SetClass("is-success", ok != nil && *ok)
	f.status.SetClass("is-error", ok != nil && !*ok)
	if msg == "" {
		f.status.SetAttr("aria-hidden", "true")
	} else {
		f.status.SetAttr("aria-hidden", "false")
	}
}

func (f *Form) setBusy(busy bool) {
	if busy {
		f.button.SetAttr("disabled", "")
		f.text.SetText(labelBusy)
		f.icon.SetAttr("class", iconBusy)
		return
	}
	f.button.RemoveAttr("disabled")
	f.text.SetText(labelIdle)
	f.icon.SetAttr("class", iconIdle)
}

// fields returns the named, submittable controls of the form.
func (f *Form) fields() []*dom.Element {
	var out []*dom.Element
	for _, tag := range []string{"input", "textarea"} {
		for _, el := range f.form.FindTag(tag) {
			if el.Attr("name") == "" {
				continue
			}
			switch strings.ToLower(el.Attr("type")) {
			case "submit", "button", "reset", "file":
				continue
			}
			out = append(out, el)
		}
	}
	return out
}

type fieldState struct {
	value   string
	checked bool
}

func stateOf(el *dom.Element) fieldState {
	_, checked := el.LookupAttr("checked")
	return fieldState{value: fieldValue(el), checked: checked}
}

func checkable(el *dom.Element) bool {
	switch strings.ToLower(el.Attr("type")) {
	case "checkbox", "radio":
		return el.TagName() == "input"
	}
	return false
}

// checkValue is what a checked box submits: its value, or "on".
func checkValue(el *dom.Element) string {
	if v, ok := el.LookupAttr("value"); ok {
		return v
	}
	return "on"
}

func setChecked(el *dom.Element, on bool) {
	if on {
		el.SetAttr("checked", "")
		return
	}
	el.RemoveAttr("checked")
}

func fieldValue(el *dom.Element) string {
	if el.TagName() == "textarea" {
		return el.Text()
	}
	return el.Attr("value")
}

func setFieldValue(el *dom.Element, v string) {
	if el.TagName() == "textarea" {
		el.SetText(v)
		return
	}
	el.SetAttr("value", v)
}
