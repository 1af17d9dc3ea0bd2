package main

import (
	"errors"
	"fmt"
	"net/url"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"folio.dev/internal/services"
)

var contactFields struct {
	name, email, subject, message string
}

var contactCmd = &cobra.Command{
	Use:   "contact",
	Short: "Submit the contact form to the backend",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := setup()
		if err != nil {
			return err
		}
		defer logger.Sync() //nolint:errcheck

		pages, err := services.NewPageService(cfg, logger)
		if err != nil {
			return fmt.Errorf("creating page service: %w", err)
		}
		p, err := pages.Bind()
		if err != nil {
			return err
		}
		if p.Contact == nil {
			return errors.New("page shell has no contact form")
		}

		res, _ := p.Submit(cmd.Context(), url.Values{
			"name":    {contactFields.name},
			"email":   {contactFields.email},
			"subject": {contactFields.subject},
			"message": {contactFields.message},
		})
		if !res.OK {
			color.Red("✗ %s", res.Message)
			return errors.New("contact submission failed")
		}
		color.Green("✓ %s", res.Message)
		return nil
	},
}

func init() {
	f := contactCmd.Flags()
	f.StringVar(&contactFields.name, "name", "", "sender name")
	f.StringVar(&contactFields.email, "email", "", "sender email")
	f.StringVar(&contactFields.subject, "subject", "", "message subject")
	f.StringVar(&contactFields.message, "message", "", "message body")
	_ = contactCmd.MarkFlagRequired("email")
	_ = contactCmd.MarkFlagRequired("message")
	rootCmd.AddCommand(contactCmd)
}
