package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/forkahq/forka-cli/internal/client/flows"
)

// Register drives the registration flow: collect details, submit, then loop
// on the emailed 6-digit code until verified or abandoned.
func (a *App) Register(ctx context.Context) error {
	flow := flows.NewRegisterFlow(ctx, a.api, a.store, a.logger)

	for flow.Step() == flows.StepCollectingDetails {
		r, err := a.collectRegistration()
		if err != nil {
			return err
		}
		if r == nil {
			fmt.Fprintln(a.out, "Registration cancelled.")
			flow.Abandon()
			return nil
		}

		err = flow.Submit(*r)
		if err == nil {
			break
		}
		var ferrs flows.FieldErrors
		if errors.As(err, &ferrs) {
			for field, msg := range ferrs {
				fmt.Fprintf(a.out, "  %s: %s\n", field, msg)
			}
			continue
		}
		fmt.Fprintln(a.out, "Registration failed:", errText(err))
	}

	return a.runVerification(flow)
}

// collectRegistration prompts for the registration fields. A nil result with
// nil error means the user bailed out with an empty username.
func (a *App) collectRegistration() (*flows.Registration, error) {
	username, err := getSimpleText(a.reader, "Username (empty to cancel)", a.out)
	if err != nil {
		return nil, err
	}
	if username == "" {
		return nil, nil
	}
	email, err := getSimpleText(a.reader, "Email", a.out)
	if err != nil {
		return nil, err
	}

	password, err := getPassword(a.out, "Password: ")
	if err != nil {
		return nil, err
	}
	defer wipe(password)
	fmt.Fprintf(a.out, "Password strength: %s\n", flows.Label(flows.Score(string(password))))

	confirm, err := getPassword(a.out, "Confirm password: ")
	if err != nil {
		return nil, err
	}
	defer wipe(confirm)

	bio, err := getSimpleText(a.reader, "Bio (optional)", a.out)
	if err != nil {
		return nil, err
	}

	return &flows.Registration{
		Username:  username,
		Email:     email,
		Password:  string(password),
		Password2: string(confirm),
		Bio:       bio,
	}, nil
}

// verifyEmail runs code verification for an account registered earlier but
// never verified.
func (a *App) verifyEmail(ctx context.Context, email string) error {
	if email == "" {
		var err error
		email, err = getSimpleText(a.reader, "Email to verify", a.out)
		if err != nil {
			return err
		}
	}

	flow := flows.NewRegisterFlow(ctx, a.api, a.store, a.logger)
	if err := flow.ResumeVerification(email); err != nil {
		return err
	}
	if err := flow.Resend(); err != nil {
		fmt.Fprintln(a.out, "Could not send a code:", errText(err))
	}
	return a.runVerification(flow)
}

// runVerification loops on the awaiting-code step: enter digits, resend, or
// cancel. It finishes with an established session or an abandoned flow.
func (a *App) runVerification(flow *flows.RegisterFlow) error {
	fmt.Fprintf(a.out, "A 6-digit code was sent to %s.\n", flow.Email())

	for flow.Step() == flows.StepAwaitingCode {
		line, err := getSimpleText(a.reader, "Enter code ('resend' for a new one, 'cancel' to abort)", a.out)
		if err != nil {
			flow.Abandon()
			return err
		}

		switch line {
		case "cancel":
			flow.Abandon()
			fmt.Fprintln(a.out, "Verification cancelled. You can finish it later from 'login'.")
			return nil

		case "resend":
			switch err := flow.Resend(); {
			case errors.Is(err, flows.ErrResendCooldown):
				fmt.Fprintln(a.out, "Please wait before requesting another code.")
			case err != nil:
				fmt.Fprintln(a.out, "Resend failed:", errText(err))
			default:
				fmt.Fprintln(a.out, "A new code is on its way.")
			}

		default:
			flow.Grid().SetCode(line)
			switch err := flow.VerifyCode(); {
			case errors.Is(err, flows.ErrIncompleteCode):
				fmt.Fprintln(a.out, "The code has 6 digits.")
			case err != nil:
				fmt.Fprintln(a.out, "Verification failed:", errText(err))
			}
		}
	}

	if flow.Step() == flows.StepVerified {
		fmt.Fprintf(a.out, "Email verified. You are now logged in as %s.\n", a.store.User().Username)
	}
	return nil
}
