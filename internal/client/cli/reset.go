package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/forkahq/forka-cli/internal/client/flows"
)

// ResetPassword drives the password-reset flow: email, emailed code, then a
// new password that has to clear the strength gate.
func (a *App) ResetPassword(ctx context.Context) error {
	flow := flows.NewResetFlow(ctx, a.api, a.logger)

	for flow.Step() == flows.StepCollectEmail {
		email, err := getSimpleText(a.reader, "Account email (empty to cancel)", a.out)
		if err != nil {
			return err
		}
		if email == "" {
			flow.Abandon()
			fmt.Fprintln(a.out, "Password reset cancelled.")
			return nil
		}
		if err := flow.SubmitEmail(email); err != nil {
			fmt.Fprintln(a.out, "Error:", errText(err))
		}
	}

	fmt.Fprintf(a.out, "If %s is registered, a 6-digit code was sent to it.\n", flow.Email())

	for flow.Step() == flows.StepEnterCode {
		line, err := getSimpleText(a.reader, "Enter code ('resend' for a new one, 'cancel' to abort)", a.out)
		if err != nil {
			flow.Abandon()
			return err
		}

		switch line {
		case "cancel":
			flow.Abandon()
			fmt.Fprintln(a.out, "Password reset cancelled.")
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

	for flow.Step() == flows.StepSetPassword {
		password, err := getPassword(a.out, "New password: ")
		if err != nil {
			flow.Abandon()
			return err
		}
		fmt.Fprintf(a.out, "Password strength: %s\n", flows.Label(flows.Score(string(password))))

		confirm, err := getPassword(a.out, "Confirm new password: ")
		if err != nil {
			wipe(password)
			flow.Abandon()
			return err
		}

		err = flow.SubmitPassword(string(password), string(confirm))
		wipe(password)
		wipe(confirm)

		var ferrs flows.FieldErrors
		switch {
		case errors.As(err, &ferrs):
			for field, msg := range ferrs {
				fmt.Fprintf(a.out, "  %s: %s\n", field, msg)
			}
		case err != nil:
			fmt.Fprintln(a.out, "Reset failed:", errText(err))
		}
	}

	if flow.Step() == flows.StepResetDone {
		fmt.Fprintln(a.out, "Password changed. You can log in with it now.")
	}
	return nil
}
