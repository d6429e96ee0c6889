package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"time"

	"portfolio-backend/pkg/contactclient"
	"portfolio-backend/pkg/contactform"
	"portfolio-backend/pkg/notify"
	"portfolio-backend/pkg/validation"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "contact",
	Short:         "Command line client for the portfolio contact form",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var sendCmd = &cobra.Command{
	Use:   "send",
	Short: "Validate and submit a contact message",
	RunE:  runSend,
}

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check a single form field the way the page does",
	RunE:  runValidate,
}

var (
	baseURL  string
	endpoint string
	timeout  time.Duration

	name    string
	address string
	message string

	field string
	value string
)

func init() {
	sendCmd.Flags().StringVar(&baseURL, "url", "http://localhost:8080", "base URL of the portfolio backend")
	sendCmd.Flags().StringVar(&endpoint, "endpoint", contactclient.DefaultEndpoint, "contact endpoint path")
	sendCmd.Flags().DurationVar(&timeout, "timeout", contactclient.DefaultTimeout, "request timeout")
	sendCmd.Flags().StringVar(&name, "name", "", "your name")
	sendCmd.Flags().StringVar(&address, "email", "", "your email address")
	sendCmd.Flags().StringVar(&message, "message", "", "message text")

	validateCmd.Flags().StringVar(&field, "field", "", "field to check: name, email or message")
	validateCmd.Flags().StringVar(&value, "value", "", "field value")
	_ = validateCmd.MarkFlagRequired("field")

	rootCmd.AddCommand(sendCmd)
	rootCmd.AddCommand(validateCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// terminalControl stands in for the submit button.
type terminalControl struct {
	w io.Writer
}

func (c terminalControl) SetBusy(busy bool) {
	if busy {
		fmt.Fprintln(c.w, "Sending...")
	}
}

func runSend(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	out := cmd.OutOrStdout()
	client := contactclient.New(baseURL,
		contactclient.WithEndpoint(endpoint),
		contactclient.WithTimeout(timeout),
	)
	form := contactform.New(client, notify.New(notify.NewWriterDisplay(out)), terminalControl{w: cmd.ErrOrStderr()})

	res, err := form.Submit(ctx, contactclient.Submission{Name: name, Email: address, Message: message})
	if errors.Is(err, contactform.ErrInvalid) {
		for _, kind := range []validation.FieldKind{validation.FieldName, validation.FieldEmail, validation.FieldMessage} {
			if msg, ok := form.FieldError(kind); ok {
				fmt.Fprintf(out, "  %s: %s\n", kind, msg)
			}
		}
		return err
	}
	if err != nil {
		return err
	}

	if res.MessageID != "" {
		fmt.Fprintf(out, "Message ID: %s\n", res.MessageID)
	}
	return nil
}

func runValidate(cmd *cobra.Command, args []string) error {
	kind := validation.FieldKind(strings.ToLower(field))
	switch kind {
	case validation.FieldName, validation.FieldEmail, validation.FieldMessage:
	default:
		return fmt.Errorf("unknown field %q: want name, email or message", field)
	}

	res := validation.ValidateField(kind, value)
	if !res.Valid {
		return fmt.Errorf("%s (%s)", res.Message, res.Reason)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s is valid\n", kind)
	return nil
}
