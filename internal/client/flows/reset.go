package flows

import (
	"context"
	"sync"

	"golang.org/x/time/rate"

	"github.com/forkahq/forka-cli/internal/logging"
)

// ResetStep is the password-reset flow's position.
type ResetStep int

const (
	StepCollectEmail ResetStep = iota
	StepEnterCode
	StepSetPassword
	StepResetDone
)

func (s ResetStep) String() string {
	switch s {
	case StepCollectEmail:
		return "collect email"
	case StepEnterCode:
		return "enter code"
	case StepSetPassword:
		return "set password"
	case StepResetDone:
		return "done"
	default:
		return "unknown"
	}
}

// ResetAPI is the slice of the ForKa client the reset flow needs.
type ResetAPI interface {
	ForgotPassword(ctx context.Context, email string) error
	VerifyResetCode(ctx context.Context, email, code string) error
	ResetPassword(ctx context.Context, email, code, newPassword, newPassword2 string) error
}

// ResetFlow walks a password reset: email, emailed code, new password. The
// verified code is carried into the final commit, and each step only
// advances on server success.
type ResetFlow struct {
	api    ResetAPI
	logger logging.Logger

	ctx    context.Context
	cancel context.CancelFunc
	resend *rate.Limiter

	mu    sync.Mutex
	step  ResetStep
	email string
	code  string
	busy  bool
	grid  *DigitGrid
}

func NewResetFlow(parent context.Context, apiClient ResetAPI, logger logging.Logger) *ResetFlow {
	ctx, cancel := context.WithCancel(parent)
	return &ResetFlow{
		api:    apiClient,
		logger: logger,
		ctx:    ctx,
		cancel: cancel,
		resend: rate.NewLimiter(rate.Every(resendInterval), 1),
		step:   StepCollectEmail,
		grid:   NewDigitGrid(),
	}
}

func (f *ResetFlow) Step() ResetStep {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.step
}

func (f *ResetFlow) Email() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.email
}

// Grid exposes the code entry widget for the enter-code step.
func (f *ResetFlow) Grid() *DigitGrid {
	return f.grid
}

func (f *ResetFlow) Busy() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.busy
}

// SubmitEmail requests a reset code for the address. The server's response
// is deliberately generic, so success here never confirms the account
// exists.
func (f *ResetFlow) SubmitEmail(email string) error {
	if !ValidEmail(email) {
		return FieldErrors{"email": "enter a valid email address"}
	}
	if err := f.require(StepCollectEmail); err != nil {
		return err
	}
	defer f.done()

	err := f.api.ForgotPassword(f.ctx, email)
	if f.ctx.Err() != nil {
		return f.ctx.Err()
	}
	if err != nil {
		return err
	}

	f.mu.Lock()
	f.step = StepEnterCode
	f.email = email
	f.mu.Unlock()

	f.logger.Info(f.ctx, "reset code requested", "email", email)
	return nil
}

// VerifyCode checks the entered digits against the server without changing
// the password. Success carries the code into the set-password step.
func (f *ResetFlow) VerifyCode() error {
	code, ok := f.grid.Code()
	if !ok {
		return ErrIncompleteCode
	}
	if err := f.require(StepEnterCode); err != nil {
		return err
	}
	defer f.done()

	err := f.api.VerifyResetCode(f.ctx, f.Email(), code)
	if f.ctx.Err() != nil {
		return f.ctx.Err()
	}
	if err != nil {
		return err
	}

	f.mu.Lock()
	f.step = StepSetPassword
	f.code = code
	f.mu.Unlock()
	return nil
}

// SubmitPassword commits the new password using the verified code. The
// strength gate and the confirmation check run before any network call.
func (f *ResetFlow) SubmitPassword(password, password2 string) error {
	errs := FieldErrors{}
	if Score(password) < MinResetScore {
		errs["new_password"] = "password is too weak"
	}
	if password != password2 {
		errs["new_password2"] = "passwords do not match"
	}
	if len(errs) > 0 {
		return errs
	}

	if err := f.require(StepSetPassword); err != nil {
		return err
	}
	defer f.done()

	f.mu.Lock()
	email, code := f.email, f.code
	f.mu.Unlock()

	err := f.api.ResetPassword(f.ctx, email, code, password, password2)
	if f.ctx.Err() != nil {
		return f.ctx.Err()
	}
	if err != nil {
		return err
	}

	f.mu.Lock()
	f.step = StepResetDone
	f.mu.Unlock()

	f.logger.Info(f.ctx, "password reset", "email", email)
	return nil
}

// Resend asks for a fresh reset code and clears the entered digits.
func (f *ResetFlow) Resend() error {
	if err := f.require(StepEnterCode); err != nil {
		return err
	}
	defer f.done()

	if !f.resend.Allow() {
		return ErrResendCooldown
	}

	err := f.api.ForgotPassword(f.ctx, f.Email())
	if f.ctx.Err() != nil {
		return f.ctx.Err()
	}
	if err != nil {
		return err
	}

	f.grid.Clear()
	return nil
}

// Abandon cancels the flow's context. Anything still in flight is discarded.
func (f *ResetFlow) Abandon() {
	f.cancel()
}

func (f *ResetFlow) require(step ResetStep) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.step != step {
		return ErrInvalidStep
	}
	if f.busy {
		return ErrBusy
	}
	f.busy = true
	return nil
}

func (f *ResetFlow) done() {
	f.mu.Lock()
	f.busy = false
	f.mu.Unlock()
}
