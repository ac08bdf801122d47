package event

import (
	"context"
)

type EmailSender interface {
	Send(ctx context.Context, recipient, subject, htmlBody string) error
}

type LedgerAPI interface {
	AppendRow(ctx context.Context, sheetName string, row []string) error
}

type Handler struct {
	emailSender EmailSender
	ledgerAPI   LedgerAPI
}

func NewHandler(
	emailSender EmailSender,
	ledgerAPI LedgerAPI,
) Handler {
	if emailSender == nil {
		panic("missing emailSender")
	}
	if ledgerAPI == nil {
		panic("missing ledgerAPI")
	}

	return Handler{
		emailSender: emailSender,
		ledgerAPI:   ledgerAPI,
	}
}
