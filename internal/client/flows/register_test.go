package flows

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/forkahq/forka-cli/internal/client/api"
	"github.com/forkahq/forka-cli/internal/client/models"
	"github.com/forkahq/forka-cli/internal/logging"
)

type fakeRegisterAPI struct {
	registerErr error
	verifyErr   error
	resendErr   error

	registerCalls int
	verifyCalls   int
	resendCalls   int

	lastRegister api.RegisterRequest
	lastEmail    string
	lastCode     string

	creds *api.Credentials
}

func (f *fakeRegisterAPI) Register(_ context.Context, req api.RegisterRequest) error {
	f.registerCalls++
	f.lastRegister = req
	return f.registerErr
}

func (f *fakeRegisterAPI) VerifyEmail(_ context.Context, email, code string) (*api.Credentials, error) {
	f.verifyCalls++
	f.lastEmail = email
	f.lastCode = code
	if f.verifyErr != nil {
		return nil, f.verifyErr
	}
	return f.creds, nil
}

func (f *fakeRegisterAPI) ResendCode(_ context.Context, email string) error {
	f.resendCalls++
	f.lastEmail = email
	return f.resendErr
}

type fakeSessions struct {
	user   *models.User
	tokens models.TokenPair
	err    error
	calls  int
}

func (f *fakeSessions) SetSession(_ context.Context, user *models.User, tokens models.TokenPair) error {
	f.calls++
	if f.err != nil {
		return f.err
	}
	f.user = user
	f.tokens = tokens
	return nil
}

func testLogger() logging.Logger {
	return logging.NewTextLogger(io.Discard, slog.LevelDebug)
}

func validRegistration() Registration {
	return Registration{
		Username:  "alice",
		Email:     "alice@example.com",
		Password:  "Sup3rSecret!",
		Password2: "Sup3rSecret!",
		Bio:       "hi",
	}
}

func TestRegisterFlowHappyPath(t *testing.T) {
	creds := &api.Credentials{
		User:   models.User{ID: 1, Username: "alice", Email: "alice@example.com"},
		Tokens: models.TokenPair{Access: "acc", Refresh: "ref"},
	}
	client := &fakeRegisterAPI{creds: creds}
	sessions := &fakeSessions{}
	f := NewRegisterFlow(context.Background(), client, sessions, testLogger())

	require.Equal(t, StepCollectingDetails, f.Step())

	require.NoError(t, f.Submit(validRegistration()))
	require.Equal(t, StepAwaitingCode, f.Step())
	require.Equal(t, "alice@example.com", f.Email())
	require.Equal(t, "alice", client.lastRegister.Username)

	f.Grid().SetCode("123456")
	require.NoError(t, f.VerifyCode())
	require.Equal(t, StepVerified, f.Step())
	require.Equal(t, "123456", client.lastCode)
	require.Equal(t, "alice@example.com", client.lastEmail)
	require.Equal(t, 1, sessions.calls)
	require.Equal(t, "alice", sessions.user.Username)
	require.Equal(t, "acc", sessions.tokens.Access)
}

func TestRegisterFlowValidationBlocksNetwork(t *testing.T) {
	client := &fakeRegisterAPI{}
	f := NewRegisterFlow(context.Background(), client, &fakeSessions{}, testLogger())

	r := validRegistration()
	r.Password2 = "other"
	err := f.Submit(r)

	var errs FieldErrors
	require.ErrorAs(t, err, &errs)
	require.Contains(t, errs, "password2")
	require.Zero(t, client.registerCalls)
	require.Equal(t, StepCollectingDetails, f.Step())
}

func TestRegisterFlowSubmitFailureKeepsStep(t *testing.T) {
	client := &fakeRegisterAPI{registerErr: &api.Error{Status: 400, Message: "username already taken"}}
	f := NewRegisterFlow(context.Background(), client, &fakeSessions{}, testLogger())

	err := f.Submit(validRegistration())
	require.Error(t, err)
	require.Equal(t, StepCollectingDetails, f.Step())

	// The user fixes the input and tries again.
	client.registerErr = nil
	require.NoError(t, f.Submit(validRegistration()))
	require.Equal(t, StepAwaitingCode, f.Step())
}

func TestRegisterFlowVerifyFailureKeepsDigits(t *testing.T) {
	client := &fakeRegisterAPI{
		verifyErr: &api.Error{Status: 400, Message: "invalid code"},
		creds: &api.Credentials{
			User:   models.User{Username: "alice"},
			Tokens: models.TokenPair{Access: "acc", Refresh: "ref"},
		},
	}
	sessions := &fakeSessions{}
	f := NewRegisterFlow(context.Background(), client, sessions, testLogger())
	require.NoError(t, f.Submit(validRegistration()))

	f.Grid().SetCode("000000")
	require.Error(t, f.VerifyCode())
	require.Equal(t, StepAwaitingCode, f.Step())
	require.Zero(t, sessions.calls)

	// Digits stay on screen for correction.
	code, ok := f.Grid().Code()
	require.True(t, ok)
	require.Equal(t, "000000", code)

	client.verifyErr = nil
	f.Grid().SetCode("123456")
	require.NoError(t, f.VerifyCode())
	require.Equal(t, StepVerified, f.Step())
}

func TestRegisterFlowIncompleteCode(t *testing.T) {
	client := &fakeRegisterAPI{}
	f := NewRegisterFlow(context.Background(), client, &fakeSessions{}, testLogger())
	require.NoError(t, f.Submit(validRegistration()))

	f.Grid().SetCode("123")
	require.ErrorIs(t, f.VerifyCode(), ErrIncompleteCode)
	require.Zero(t, client.verifyCalls)
}

func TestRegisterFlowResendClearsDigitsAndThrottles(t *testing.T) {
	client := &fakeRegisterAPI{}
	f := NewRegisterFlow(context.Background(), client, &fakeSessions{}, testLogger())
	require.NoError(t, f.Submit(validRegistration()))

	f.Grid().SetCode("123456")
	require.NoError(t, f.Resend())
	require.Equal(t, 1, client.resendCalls)
	_, ok := f.Grid().Code()
	require.False(t, ok)

	// The cooldown has not elapsed yet.
	require.ErrorIs(t, f.Resend(), ErrResendCooldown)
	require.Equal(t, 1, client.resendCalls)
}

func TestRegisterFlowStepGuards(t *testing.T) {
	f := NewRegisterFlow(context.Background(), &fakeRegisterAPI{}, &fakeSessions{}, testLogger())

	f.Grid().SetCode("123456")
	require.ErrorIs(t, f.VerifyCode(), ErrInvalidStep)
	require.ErrorIs(t, f.Resend(), ErrInvalidStep)
}

func TestRegisterFlowResumeVerification(t *testing.T) {
	client := &fakeRegisterAPI{creds: &api.Credentials{
		User:   models.User{Username: "alice"},
		Tokens: models.TokenPair{Access: "acc", Refresh: "ref"},
	}}
	sessions := &fakeSessions{}
	f := NewRegisterFlow(context.Background(), client, sessions, testLogger())

	require.NoError(t, f.ResumeVerification("alice@example.com"))
	require.Equal(t, StepAwaitingCode, f.Step())
	require.Zero(t, client.registerCalls)

	f.Grid().SetCode("123456")
	require.NoError(t, f.VerifyCode())
	require.Equal(t, "alice@example.com", client.lastEmail)
	require.Equal(t, 1, sessions.calls)

	// Resuming is only valid before any details were submitted.
	require.ErrorIs(t, f.ResumeVerification("other@example.com"), ErrInvalidStep)
}

func TestRegisterFlowAbandonCancelsContext(t *testing.T) {
	client := &fakeRegisterAPI{}
	f := NewRegisterFlow(context.Background(), client, &fakeSessions{}, testLogger())
	require.NoError(t, f.Submit(validRegistration()))

	f.Abandon()
	f.Grid().SetCode("123456")
	require.ErrorIs(t, f.VerifyCode(), context.Canceled)
	require.Equal(t, StepAwaitingCode, f.Step())
}
