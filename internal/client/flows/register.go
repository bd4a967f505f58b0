package flows

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/forkahq/forka-cli/internal/client/api"
	"github.com/forkahq/forka-cli/internal/client/models"
	"github.com/forkahq/forka-cli/internal/logging"
)

// resendInterval is the client-side cooldown between code resends.
const resendInterval = 30 * time.Second

// RegisterStep is the registration flow's position.
type RegisterStep int

const (
	StepCollectingDetails RegisterStep = iota
	StepAwaitingCode
	StepVerified
)

func (s RegisterStep) String() string {
	switch s {
	case StepCollectingDetails:
		return "collecting details"
	case StepAwaitingCode:
		return "awaiting code"
	case StepVerified:
		return "verified"
	default:
		return "unknown"
	}
}

// RegisterAPI is the slice of the ForKa client the registration flow needs.
type RegisterAPI interface {
	Register(ctx context.Context, req api.RegisterRequest) error
	VerifyEmail(ctx context.Context, email, code string) (*api.Credentials, error)
	ResendCode(ctx context.Context, email string) error
}

// SessionSetter establishes the session from verification credentials.
type SessionSetter interface {
	SetSession(ctx context.Context, user *models.User, tokens models.TokenPair) error
}

// RegisterFlow walks a new user from detail entry through email verification
// to an established session. Steps only advance on server success; a failed
// round trip keeps the step and any entered digits.
type RegisterFlow struct {
	api      RegisterAPI
	sessions SessionSetter
	logger   logging.Logger

	ctx    context.Context
	cancel context.CancelFunc
	resend *rate.Limiter

	mu    sync.Mutex
	step  RegisterStep
	email string
	busy  bool
	grid  *DigitGrid
}

func NewRegisterFlow(parent context.Context, apiClient RegisterAPI, sessions SessionSetter, logger logging.Logger) *RegisterFlow {
	ctx, cancel := context.WithCancel(parent)
	return &RegisterFlow{
		api:      apiClient,
		sessions: sessions,
		logger:   logger,
		ctx:      ctx,
		cancel:   cancel,
		resend:   rate.NewLimiter(rate.Every(resendInterval), 1),
		step:     StepCollectingDetails,
		grid:     NewDigitGrid(),
	}
}

func (f *RegisterFlow) Step() RegisterStep {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.step
}

// Email returns the address the verification code was sent to.
func (f *RegisterFlow) Email() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.email
}

// Grid exposes the code entry widget for the awaiting-code step.
func (f *RegisterFlow) Grid() *DigitGrid {
	return f.grid
}

func (f *RegisterFlow) Busy() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.busy
}

// Submit validates the registration details and, if they pass, sends them to
// the server. Validation failures return FieldErrors without any network
// call. Success advances to the awaiting-code step.
func (f *RegisterFlow) Submit(r Registration) error {
	if errs := r.Validate(); errs != nil {
		return errs
	}
	if err := f.require(StepCollectingDetails); err != nil {
		return err
	}
	defer f.done()

	err := f.api.Register(f.ctx, api.RegisterRequest{
		Username:  r.Username,
		Email:     r.Email,
		Password:  r.Password,
		Password2: r.Password2,
		Bio:       r.Bio,
	})
	if f.ctx.Err() != nil {
		return f.ctx.Err()
	}
	if err != nil {
		return err
	}

	f.mu.Lock()
	f.step = StepAwaitingCode
	f.email = r.Email
	f.mu.Unlock()

	f.logger.Info(f.ctx, "registration submitted", "email", r.Email)
	return nil
}

// ResumeVerification jumps straight to the awaiting-code step for an account
// that was registered earlier but never verified, e.g. after a login attempt
// came back with email verification required.
func (f *RegisterFlow) ResumeVerification(email string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.step != StepCollectingDetails {
		return ErrInvalidStep
	}
	f.step = StepAwaitingCode
	f.email = email
	return nil
}

// VerifyCode redeems the entered digits. Success establishes the session and
// finishes the flow; failure keeps the digits so the user can correct them.
func (f *RegisterFlow) VerifyCode() error {
	code, ok := f.grid.Code()
	if !ok {
		return ErrIncompleteCode
	}
	if err := f.require(StepAwaitingCode); err != nil {
		return err
	}
	defer f.done()

	creds, err := f.api.VerifyEmail(f.ctx, f.Email(), code)
	if f.ctx.Err() != nil {
		return f.ctx.Err()
	}
	if err != nil {
		return err
	}

	if err := f.sessions.SetSession(f.ctx, &creds.User, creds.Tokens); err != nil {
		return err
	}

	f.mu.Lock()
	f.step = StepVerified
	f.mu.Unlock()

	f.logger.Info(f.ctx, "email verified", "username", creds.User.Username)
	return nil
}

// Resend asks for a fresh code and clears the entered digits. A cooldown
// throttles repeat requests.
func (f *RegisterFlow) Resend() error {
	if err := f.require(StepAwaitingCode); err != nil {
		return err
	}
	defer f.done()

	if !f.resend.Allow() {
		return ErrResendCooldown
	}

	err := f.api.ResendCode(f.ctx, f.Email())
	if f.ctx.Err() != nil {
		return f.ctx.Err()
	}
	if err != nil {
		return err
	}

	f.grid.Clear()
	return nil
}

// Abandon cancels the flow's context. In-flight responses are discarded and
// any later operation fails with context.Canceled.
func (f *RegisterFlow) Abandon() {
	f.cancel()
}

// require checks the step and claims the busy flag in one critical section.
// The caller must release it with done once the round trip finishes.
func (f *RegisterFlow) require(step RegisterStep) error {
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

func (f *RegisterFlow) done() {
	f.mu.Lock()
	f.busy = false
	f.mu.Unlock()
}
