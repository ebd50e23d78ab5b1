package export

import (
	"context"
	"errors"
	"testing"

	"agri_holding/internal/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/gomail.v2"
)

func TestMailer_Send(t *testing.T) {
	m := NewMailer(MailConfig{Host: "smtp.example.com", Port: 587, From: "records@muheesi.local"})
	var sent *gomail.Message
	m.send = func(msg *gomail.Message) error {
		sent = msg
		return nil
	}

	dl := Download{Filename: "farm-records-2025-06-15.csv", MIMEType: FormatCSV.MIMEType(), Rows: 2, Body: []byte("a,b\n")}
	require.NoError(t, m.Send(context.Background(), []string{"manager@muheesi.co.ug"}, "Farm Records", dl))
	require.NotNil(t, sent)
	assert.Equal(t, []string{"manager@muheesi.co.ug"}, sent.GetHeader("To"))
	assert.Equal(t, []string{"Farm Records"}, sent.GetHeader("Subject"))
}

func TestMailer_Errors(t *testing.T) {
	dl := Download{Filename: "x.csv", Body: []byte("x")}

	assert.ErrorIs(t, NewMailer(MailConfig{}).Send(context.Background(), []string{"a@b.co"}, "s", dl), common.ErrMailNotConfigured)
	assert.False(t, (*Mailer)(nil).Enabled())

	m := NewMailer(MailConfig{Host: "smtp.example.com"})
	m.send = func(*gomail.Message) error { return errors.New("535 auth failed") }

	assert.ErrorIs(t, m.Send(context.Background(), nil, "s", dl), common.ErrRequiredField)
	assert.ErrorIs(t, m.Send(context.Background(), []string{"nope"}, "s", dl), common.ErrInvalidEmail)
	assert.ErrorIs(t, m.Send(context.Background(), []string{"a@b.co"}, "s", Download{}), common.ErrNothingToExport)
	assert.ErrorIs(t, m.Send(context.Background(), []string{"a@b.co"}, "s", dl), common.ErrMailFailed)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	block := make(chan struct{})
	defer close(block)
	m.send = func(*gomail.Message) error { <-block; return nil }
	assert.ErrorIs(t, m.Send(ctx, []string{"a@b.co"}, "s", dl), context.Canceled)
}
