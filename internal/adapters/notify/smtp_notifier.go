// Package notify delivers invoice notifications to customers.
package notify

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"mime"
	"net"
	"net/smtp"
	"strconv"
	"strings"
	"time"

	"github.com/SscSPs/pos_ledger/internal/core/ports/services"
	"github.com/SscSPs/pos_ledger/internal/middleware"
)

// SMTPConfig holds outgoing mail settings.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

type sendMailFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// SMTPNotifier e-mails the receipt to customers that have an address on file.
type SMTPNotifier struct {
	cfg      SMTPConfig
	sendMail sendMailFunc
}

// NewSMTPNotifier creates a notifier that sends through cfg.
func NewSMTPNotifier(cfg SMTPConfig) *SMTPNotifier {
	return &SMTPNotifier{cfg: cfg, sendMail: smtp.SendMail}
}

func (n *SMTPNotifier) NotifyInvoice(ctx context.Context, doc services.InvoiceDocument, artifact *services.Artifact, location string) error {
	logger := middleware.GetLoggerFromCtx(ctx)
	if doc.Customer == nil || doc.Customer.Email == "" {
		logger.Debug("Skipping invoice e-mail, no customer address", slog.String("invoice_no", doc.Invoice.InvoiceNo))
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := n.buildMessage(doc, artifact, location)
	addr := net.JoinHostPort(n.cfg.Host, strconv.Itoa(n.cfg.Port))

	var auth smtp.Auth
	if n.cfg.Username != "" {
		auth = smtp.PlainAuth("", n.cfg.Username, n.cfg.Password, n.cfg.Host)
	}
	if err := n.sendMail(addr, auth, n.cfg.From, []string{doc.Customer.Email}, msg); err != nil {
		return fmt.Errorf("failed to send invoice %s to %s: %w", doc.Invoice.InvoiceNo, doc.Customer.Email, err)
	}

	logger.Info("Invoice e-mail sent", slog.String("invoice_no", doc.Invoice.InvoiceNo), slog.String("customer_id", doc.Customer.CustomerID))
	return nil
}

func (n *SMTPNotifier) buildMessage(doc services.InvoiceDocument, artifact *services.Artifact, location string) []byte {
	var buf bytes.Buffer
	subject := mime.QEncoding.Encode("utf-8", "Your receipt "+doc.Invoice.InvoiceNo)

	fmt.Fprintf(&buf, "From: %s\r\n", n.cfg.From)
	fmt.Fprintf(&buf, "To: %s\r\n", doc.Customer.Email)
	fmt.Fprintf(&buf, "Subject: %s\r\n", subject)
	fmt.Fprintf(&buf, "Date: %s\r\n", time.Now().Format(time.RFC1123Z))
	buf.WriteString("MIME-Version: 1.0\r\n")

	if artifact != nil && strings.HasPrefix(artifact.ContentType, "text/html") {
		fmt.Fprintf(&buf, "Content-Type: %s\r\n\r\n", artifact.ContentType)
		buf.Write(artifact.Body)
		if location != "" {
			fmt.Fprintf(&buf, "\r\n<p><a href=\"%s\">View online</a></p>\r\n", location)
		}
		return buf.Bytes()
	}

	buf.WriteString("Content-Type: text/plain; charset=utf-8\r\n\r\n")
	fmt.Fprintf(&buf, "Thank you for your purchase. Invoice %s, total %s, paid %s.\r\n",
		doc.Invoice.InvoiceNo, doc.Invoice.TotalAmount.StringFixed(2), doc.Invoice.PaidAmount.StringFixed(2))
	if location != "" {
		fmt.Fprintf(&buf, "Receipt: %s\r\n", location)
	}
	return buf.Bytes()
}

var _ services.Notifier = (*SMTPNotifier)(nil)
