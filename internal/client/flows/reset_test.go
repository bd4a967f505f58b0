package flows

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/forkahq/forka-cli/internal/client/api"
)

type fakeResetAPI struct {
	forgotErr error
	verifyErr error
	resetErr  error

	forgotCalls int
	verifyCalls int
	resetCalls  int

	lastEmail     string
	lastCode      string
	lastPassword  string
	lastPassword2 string
}

func (f *fakeResetAPI) ForgotPassword(_ context.Context, email string) error {
	f.forgotCalls++
	f.lastEmail = email
	return f.forgotErr
}

func (f *fakeResetAPI) VerifyResetCode(_ context.Context, email, code string) error {
	f.verifyCalls++
	f.lastEmail = email
	f.lastCode = code
	return f.verifyErr
}

func (f *fakeResetAPI) ResetPassword(_ context.Context, email, code, p1, p2 string) error {
	f.resetCalls++
	f.lastEmail = email
	f.lastCode = code
	f.lastPassword = p1
	f.lastPassword2 = p2
	return f.resetErr
}

func TestResetFlowHappyPath(t *testing.T) {
	client := &fakeResetAPI{}
	f := NewResetFlow(context.Background(), client, testLogger())

	require.Equal(t, StepCollectEmail, f.Step())
	require.NoError(t, f.SubmitEmail("bob@example.com"))
	require.Equal(t, StepEnterCode, f.Step())

	f.Grid().SetCode("654321")
	require.NoError(t, f.VerifyCode())
	require.Equal(t, StepSetPassword, f.Step())

	require.NoError(t, f.SubmitPassword("N3wPassw0rd!", "N3wPassw0rd!"))
	require.Equal(t, StepResetDone, f.Step())

	// The commit reuses the verified code.
	require.Equal(t, "bob@example.com", client.lastEmail)
	require.Equal(t, "654321", client.lastCode)
	require.Equal(t, "N3wPassw0rd!", client.lastPassword)
	require.Equal(t, "N3wPassw0rd!", client.lastPassword2)
}

func TestResetFlowRejectsMalformedEmail(t *testing.T) {
	client := &fakeResetAPI{}
	f := NewResetFlow(context.Background(), client, testLogger())

	err := f.SubmitEmail("not-an-email")
	var errs FieldErrors
	require.ErrorAs(t, err, &errs)
	require.Contains(t, errs, "email")
	require.Zero(t, client.forgotCalls)
	require.Equal(t, StepCollectEmail, f.Step())
}

func TestResetFlowBadCodeKeepsStep(t *testing.T) {
	client := &fakeResetAPI{verifyErr: &api.Error{Status: 400, Message: "invalid or expired code"}}
	f := NewResetFlow(context.Background(), client, testLogger())
	require.NoError(t, f.SubmitEmail("bob@example.com"))

	f.Grid().SetCode("000000")
	require.Error(t, f.VerifyCode())
	require.Equal(t, StepEnterCode, f.Step())

	client.verifyErr = nil
	f.Grid().SetCode("654321")
	require.NoError(t, f.VerifyCode())
	require.Equal(t, StepSetPassword, f.Step())
}

func TestResetFlowWeakPasswordGate(t *testing.T) {
	client := &fakeResetAPI{}
	f := NewResetFlow(context.Background(), client, testLogger())
	require.NoError(t, f.SubmitEmail("bob@example.com"))
	f.Grid().SetCode("654321")
	require.NoError(t, f.VerifyCode())

	// Score 2 (length + lowercase) is below the gate.
	err := f.SubmitPassword("weakpassword", "weakpassword")
	var errs FieldErrors
	require.ErrorAs(t, err, &errs)
	require.Contains(t, errs, "new_password")
	require.Zero(t, client.resetCalls)

	err = f.SubmitPassword("N3wPassw0rd!", "different")
	require.ErrorAs(t, err, &errs)
	require.Contains(t, errs, "new_password2")
	require.Zero(t, client.resetCalls)
}

func TestResetFlowResendClearsDigitsAndThrottles(t *testing.T) {
	client := &fakeResetAPI{}
	f := NewResetFlow(context.Background(), client, testLogger())
	require.NoError(t, f.SubmitEmail("bob@example.com"))
	require.Equal(t, 1, client.forgotCalls)

	f.Grid().SetCode("111111")
	require.NoError(t, f.Resend())
	require.Equal(t, 2, client.forgotCalls)
	_, ok := f.Grid().Code()
	require.False(t, ok)

	require.ErrorIs(t, f.Resend(), ErrResendCooldown)
	require.Equal(t, 2, client.forgotCalls)
}

func TestResetFlowStepGuards(t *testing.T) {
	f := NewResetFlow(context.Background(), &fakeResetAPI{}, testLogger())

	f.Grid().SetCode("654321")
	require.ErrorIs(t, f.VerifyCode(), ErrInvalidStep)
	require.ErrorIs(t, f.SubmitPassword("N3wPassw0rd!", "N3wPassw0rd!"), ErrInvalidStep)
	require.ErrorIs(t, f.Resend(), ErrInvalidStep)
}

func TestResetFlowAbandon(t *testing.T) {
	client := &fakeResetAPI{}
	f := NewResetFlow(context.Background(), client, testLogger())
	require.NoError(t, f.SubmitEmail("bob@example.com"))

	f.Abandon()
	f.Grid().SetCode("654321")
	require.ErrorIs(t, f.VerifyCode(), context.Canceled)
}
