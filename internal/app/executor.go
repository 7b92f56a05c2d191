package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/printologia/printshop/internal/platform/logging"
)

// Submissions run through five ordered steps:
//
//  1. VALIDATE - check the form before anything leaves the process
//  2. PERFORM  - render and send the notification e-mail
//  3. VERIFY   - require a provider message id for the send
//  4. ARCHIVE  - store the submission record with that id
//  5. RESPOND  - build the receipt returned to the customer
//
// A failing step stops the run; later steps never see unverified state.

// ExecutionStep names a step of an Operation.
type ExecutionStep string

const (
	StepValidate ExecutionStep = "validate"
	StepPerform  ExecutionStep = "perform"
	StepVerify   ExecutionStep = "verify"
	StepArchive  ExecutionStep = "archive"
	StepRespond  ExecutionStep = "respond"
)

// ExecutionError records the step an operation failed in.
type ExecutionError struct {
	Step    ExecutionStep
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *ExecutionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s failed: %s: %v", e.Step, e.Message, e.Cause)
	}

	return fmt.Sprintf("%s failed: %s", e.Step, e.Message)
}

// Unwrap returns the cause so domain errors stay matchable.
func (e *ExecutionError) Unwrap() error {
	return e.Cause
}

func stepError(step ExecutionStep, message string, cause error) error {
	return &ExecutionError{Step: step, Message: message, Cause: cause}
}

// Executor runs Operations and logs each step.
type Executor struct {
	logger *slog.Logger
}

// NewExecutor creates an executor. A nil logger means slog.Default.
func NewExecutor(logger *slog.Logger) *Executor {
	if logger == nil {
		logger = slog.Default()
	}

	return &Executor{logger: logger}
}

// Operation holds the step functions. Nil steps are skipped; a nil Perform
// or Verify yields the zero value of its result type.
type Operation[I, P, V, O any] struct {
	// Name identifies the operation in logs.
	Name string

	Validate func(ctx context.Context, input I) error
	Perform  func(ctx context.Context, input I) (P, error)
	Verify   func(ctx context.Context, input I, performed P) (V, error)
	Archive  func(ctx context.Context, input I, verified V) error
	Respond  func(ctx context.Context, input I, verified V) (O, error)
}

type run[I, P, V, O any] struct {
	logger *slog.Logger
	op     Operation[I, P, V, O]
	input  I
}

func (r *run[I, P, V, O]) validate(ctx context.Context) error {
	if r.op.Validate == nil {
		return nil
	}

	if err := r.op.Validate(ctx, r.input); err != nil {
		r.logger.WarnContext(ctx, "validation failed", slog.Any("error", err))

		return stepError(StepValidate, "input validation failed", err)
	}

	r.logger.DebugContext(ctx, "validation passed")

	return nil
}

func (r *run[I, P, V, O]) perform(ctx context.Context) (P, error) {
	var zero P

	if r.op.Perform == nil {
		return zero, nil
	}

	performed, err := r.op.Perform(ctx, r.input)
	if err != nil {
		r.logger.ErrorContext(ctx, "perform failed", slog.Any("error", err))

		return zero, stepError(StepPerform, "operation failed", err)
	}

	r.logger.DebugContext(ctx, "operation performed")

	return performed, nil
}

func (r *run[I, P, V, O]) verify(ctx context.Context, performed P) (V, error) {
	var zero V

	if r.op.Verify == nil {
		return zero, nil
	}

	verified, err := r.op.Verify(ctx, r.input, performed)
	if err != nil {
		r.logger.ErrorContext(ctx, "verification failed", slog.Any("error", err))

		return zero, stepError(StepVerify, "verification failed", err)
	}

	return verified, nil
}

func (r *run[I, P, V, O]) archive(ctx context.Context, verified V) error {
	if r.op.Archive == nil {
		return nil
	}

	if err := r.op.Archive(ctx, r.input, verified); err != nil {
		r.logger.ErrorContext(ctx, "archive failed", slog.Any("error", err))

		return stepError(StepArchive, "state persistence failed", err)
	}

	r.logger.DebugContext(ctx, "state archived")

	return nil
}

func (r *run[I, P, V, O]) respond(ctx context.Context, verified V) (O, error) {
	var zero O

	if r.op.Respond == nil {
		return zero, nil
	}

	result, err := r.op.Respond(ctx, r.input, verified)
	if err != nil {
		return zero, stepError(StepRespond, "building response failed", err)
	}

	return result, nil
}

// Execute runs op against input. The request-scoped logger from ctx is
// preferred over the executor's own.
func Execute[I, P, V, O any](ctx context.Context, exec *Executor, op Operation[I, P, V, O], input I) (O, error) {
	var zero O

	logger := logging.FromContextOr(ctx, exec.logger).With(slog.String("operation", op.Name))
	start := time.Now()

	r := &run[I, P, V, O]{logger: logger, op: op, input: input}

	if err := r.validate(ctx); err != nil {
		return zero, err
	}

	performed, err := r.perform(ctx)
	if err != nil {
		return zero, err
	}

	verified, err := r.verify(ctx, performed)
	if err != nil {
		return zero, err
	}

	if err := r.archive(ctx, verified); err != nil {
		return zero, err
	}

	result, err := r.respond(ctx, verified)
	if err != nil {
		return zero, err
	}

	logger.InfoContext(ctx, "operation completed", slog.Duration("duration", time.Since(start)))

	return result, nil
}

// FailedStep reports the step err came from, if it came from Execute.
func FailedStep(err error) (ExecutionStep, bool) {
	var execErr *ExecutionError
	if errors.As(err, &execErr) {
		return execErr.Step, true
	}

	return "", false
}
