package controller

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/inovacc/shelfr/internal/model"
	"github.com/inovacc/shelfr/internal/notify"
	"github.com/inovacc/shelfr/internal/store"
)

// Mode tells a form whether it creates a draft or edits a persisted
// record.
type Mode int

const (
	ModeCreate Mode = iota
	ModeEdit
)

// FormStore is the slice of the record store a form controller needs.
// *store.Resource[E] satisfies it.
type FormStore[E model.Entity] interface {
	Get(ctx context.Context, id string) (E, error)
	Create(ctx context.Context, draft E) (E, error)
	Update(ctx context.Context, id string, record E) (E, error)
}

// validate checks required fields against the entities' struct tags,
// reporting violations under their JSON names. Dates validate through
// their string form so a zero date counts as missing.
var validate = func() *validator.Validate {
	v := validator.New()

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}

		return name
	})

	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if d, ok := field.Interface().(model.Date); ok {
			return d.String()
		}

		return nil
	}, model.Date{})

	return v
}()

// FormController manages the create/edit lifecycle and local validation
// of exactly one record. Local validation is advisory (it saves a round
// trip); the store stays the authority and its structured rejections are
// merged back into the field errors.
type FormController[E model.Entity] struct {
	store    FormStore[E]
	notifier *notify.Dispatcher
	schema   model.Schema[E]

	mode Mode
	id   string

	fields      map[string]string
	fieldErrors map[string]string

	submitted  bool
	submitting bool
	loading    bool
	done       bool
	notFound   bool
	closed     bool

	record E
}

type recordLoadedMsg[E model.Entity] struct {
	record E
	err    error
}

type submitResultMsg[E model.Entity] struct {
	record E
	err    error
}

// NewCreateForm starts a blank form for a new draft.
func NewCreateForm[E model.Entity](st FormStore[E], schema model.Schema[E], notifier *notify.Dispatcher) *FormController[E] {
	return &FormController[E]{
		store:       st,
		notifier:    notifier,
		schema:      schema,
		mode:        ModeCreate,
		fields:      make(map[string]string),
		fieldErrors: make(map[string]string),
	}
}

// NewEditForm starts a form editing the persisted record with the given
// id; Load fetches its current state.
func NewEditForm[E model.Entity](st FormStore[E], schema model.Schema[E], notifier *notify.Dispatcher, id string) *FormController[E] {
	return &FormController[E]{
		store:       st,
		notifier:    notifier,
		schema:      schema,
		mode:        ModeEdit,
		id:          id,
		fields:      make(map[string]string),
		fieldErrors: make(map[string]string),
	}
}

// Load fetches the record in edit mode and populates the fields. In
// create mode there is nothing to load and Load returns nil.
func (c *FormController[E]) Load() Effect {
	if c.mode == ModeCreate {
		return nil
	}

	c.loading = true

	st, id := c.store, c.id

	return func(ctx context.Context) any {
		record, err := st.Get(ctx, id)

		return recordLoadedMsg[E]{record: record, err: err}
	}
}

// SetField updates one field and eagerly clears its error; the field is
// re-validated only on the next submit.
func (c *FormController[E]) SetField(name, value string) {
	c.fields[name] = value
	delete(c.fieldErrors, name)
}

// Validate runs the local, synchronous checks: required fields must be
// non-empty after trimming and dates must parse. The result maps field
// names to messages; an empty result means the draft is locally valid.
func (c *FormController[E]) Validate() map[string]string {
	_, errs := c.build()
	return errs
}

func (c *FormController[E]) build() (E, map[string]string) {
	values := make(map[string]string, len(c.fields))
	for name, value := range c.fields {
		values[name] = strings.TrimSpace(value)
	}

	draft, errs := c.schema.Apply(values)
	if errs == nil {
		errs = make(map[string]string)
	}

	if err := validate.Struct(draft); err != nil {
		var violations validator.ValidationErrors
		if errors.As(err, &violations) {
			for _, violation := range violations {
				name := violation.Field()
				if _, taken := errs[name]; taken {
					continue
				}

				errs[name] = c.schema.Label(name) + " is required"
			}
		}
	}

	if len(errs) == 0 {
		return draft, nil
	}

	return draft, errs
}

// Submit validates locally and, if clean, issues the create or update.
// Local violations abort with zero network calls. A second submit while
// one is in flight is ignored, not queued.
func (c *FormController[E]) Submit() Effect {
	if c.submitting || c.done {
		return nil
	}

	c.submitted = true

	draft, errs := c.build()
	if len(errs) > 0 {
		c.fieldErrors = errs
		return nil
	}

	c.fieldErrors = make(map[string]string)
	c.submitting = true

	st, mode, id := c.store, c.mode, c.id

	return func(ctx context.Context) any {
		var (
			record E
			err    error
		)

		if mode == ModeEdit {
			record, err = st.Update(ctx, id, draft)
		} else {
			record, err = st.Create(ctx, draft)
		}

		return submitResultMsg[E]{record: record, err: err}
	}
}

// Apply consumes a message produced by one of this controller's effects
// and reports whether it was one.
func (c *FormController[E]) Apply(msg any) bool {
	switch m := msg.(type) {
	case recordLoadedMsg[E]:
		c.applyRecordLoaded(m)
		return true
	case submitResultMsg[E]:
		c.applySubmitResult(m)
		return true
	}

	return false
}

func (c *FormController[E]) applyRecordLoaded(msg recordLoadedMsg[E]) {
	if c.closed {
		return
	}

	c.loading = false

	if msg.err != nil {
		if store.IsNotFound(msg.err) {
			c.notFound = true
			c.notifier.Error(context.Background(), c.schema.Plural,
				fmt.Sprintf("No such %s: %s", c.schema.Singular, c.id), msg.err)

			return
		}

		c.notifier.Error(context.Background(), c.schema.Plural,
			fmt.Sprintf("Failed to load %s", c.schema.Singular), msg.err)

		return
	}

	c.record = msg.record
	c.fields = c.schema.Values(msg.record)
}

func (c *FormController[E]) applySubmitResult(msg submitResultMsg[E]) {
	if c.closed {
		return
	}

	c.submitting = false

	if msg.err != nil {
		// Structured store rejections surface next to the inputs; any
		// other failure leaves the form open with the input intact.
		if rejection, ok := store.AsValidation(msg.err); ok {
			for field, message := range rejection.Fields() {
				c.fieldErrors[field] = message
			}

			return
		}

		c.notifier.Error(context.Background(), c.schema.Plural,
			fmt.Sprintf("Failed to save %s", c.schema.Singular), msg.err)

		return
	}

	c.done = true
	c.record = msg.record

	if c.mode == ModeEdit {
		c.notifier.Info(context.Background(), c.schema.Plural, "Updated",
			fmt.Sprintf("The %s has been updated successfully.", c.schema.Singular))
	} else {
		c.notifier.Info(context.Background(), c.schema.Plural, "Created",
			fmt.Sprintf("The %s has been created successfully.", c.schema.Singular))
	}
}

// Close discards any in-flight responses.
func (c *FormController[E]) Close() {
	c.closed = true
}

// Mode returns whether the form creates or edits.
func (c *FormController[E]) Mode() Mode { return c.mode }

// ID returns the edited record's id; empty in create mode.
func (c *FormController[E]) ID() string { return c.id }

// Field returns the current value of one field.
func (c *FormController[E]) Field(name string) string { return c.fields[name] }

// FieldError returns the message attached to a field, if any.
func (c *FormController[E]) FieldError(name string) string { return c.fieldErrors[name] }

// FieldErrors returns a copy of all current field errors.
func (c *FormController[E]) FieldErrors() map[string]string {
	out := make(map[string]string, len(c.fieldErrors))
	for name, message := range c.fieldErrors {
		out[name] = message
	}

	return out
}

// Submitted reports whether a submit has been attempted.
func (c *FormController[E]) Submitted() bool { return c.submitted }

// Submitting reports whether a submit is in flight.
func (c *FormController[E]) Submitting() bool { return c.submitting }

// Loading reports whether the edit-mode fetch is in flight.
func (c *FormController[E]) Loading() bool { return c.loading }

// Done reports whether the submit succeeded; the caller should navigate
// away.
func (c *FormController[E]) Done() bool { return c.done }

// NotFound reports whether the edited record is missing server-side.
func (c *FormController[E]) NotFound() bool { return c.notFound }

// Record returns the created or updated record after a successful
// submit, or the loaded record in edit mode.
func (c *FormController[E]) Record() E { return c.record }

// Schema returns the entity schema the controller was built with.
func (c *FormController[E]) Schema() model.Schema[E] { return c.schema }
