package contact

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"songdeming.dev/portfolio-web/internal/i18n"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func validForm() Form {
	return Form{Name: " Ada ", Email: "ada@example.com", Message: "Hello there"}
}

func TestValidate(t *testing.T) {
	require.NoError(t, validForm().Validate())

	tests := map[string]struct {
		form   Form
		fields []string
	}{
		"empty":         {form: Form{}, fields: []string{"name", "email", "message"}},
		"blank":         {form: Form{Name: "  ", Email: "a@b.co", Message: "\n"}, fields: []string{"name", "message"}},
		"bad email":     {form: Form{Name: "a", Email: "not-an-email", Message: "m"}, fields: []string{"email"}},
		"display name":  {form: Form{Name: "a", Email: "Ada <ada@example.com>", Message: "m"}, fields: []string{"email"}},
		"no tld":        {form: Form{Name: "a", Email: "ada@localhost", Message: "m"}, fields: []string{"email"}},
		"long":          {form: Form{Name: "a", Email: "a@b.co", Message: strings.Repeat("字", maxMessageRunes+1)}, fields: []string{"message"}},
		"trimmed email": {form: Form{Name: "a", Email: " a@b.co ", Message: "m"}},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			err := tc.form.Validate()
			if len(tc.fields) == 0 {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, ErrInvalid)
			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
			got := make([]string, 0, len(verr.Fields))
			for _, f := range verr.Fields {
				got = append(got, f.Field)
			}
			require.Equal(t, tc.fields, got)
		})
	}
}

func TestValidationErrorFor(t *testing.T) {
	err := Form{Name: "a", Email: "x", Message: "m"}.Validate()
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))

	msg, ok := verr.For("email")
	require.True(t, ok)
	require.Equal(t, "请输入有效的邮箱地址。", msg.Pick(i18n.Chinese))
	_, ok = verr.For("name")
	require.False(t, ok)

	var nilErr *ValidationError
	_, ok = nilErr.For("name")
	require.False(t, ok)
}

func TestSubmitReturnsOneNotificationAndResetsForm(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	fire := make(chan time.Time, 1)
	var waited time.Duration
	svc := NewService(ServiceDeps{
		Delay:       time.Second,
		Logger:      zap.New(core),
		IDGenerator: func() string { return "01TEST" },
		After: func(d time.Duration) <-chan time.Time {
			waited = d
			fire <- time.Now()
			return fire
		},
	})

	receipt, err := svc.Submit(context.Background(), validForm())
	require.NoError(t, err)
	require.Equal(t, time.Second, waited)
	require.Equal(t, "01TEST", receipt.ID)
	require.Equal(t, "Message sent!", receipt.Notification.Title.Pick(i18n.English))
	require.Equal(t, "消息已发送！", receipt.Notification.Title.Pick(i18n.Chinese))
	require.Equal(t, "感谢您的联系。我会尽快回复您。", receipt.Notification.Description.Pick(i18n.Chinese))
	require.True(t, receipt.Form.Empty())
	require.Equal(t, Form{}, receipt.Form)

	entries := logs.FilterMessage("contact form submitted").All()
	require.Len(t, entries, 1)
	require.Equal(t, "01TEST", entries[0].ContextMap()["submission_id"])
}

func TestSubmitUsesULIDByDefault(t *testing.T) {
	svc := NewService(ServiceDeps{})
	receipt, err := svc.Submit(context.Background(), validForm())
	require.NoError(t, err)
	_, err = ulid.ParseStrict(receipt.ID)
	require.NoError(t, err)
}

func TestSubmitRealDelay(t *testing.T) {
	svc := NewService(ServiceDeps{Delay: 20 * time.Millisecond})
	start := time.Now()
	_, err := svc.Submit(context.Background(), validForm())
	require.NoError(t, err)
	require.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)
}

func TestSubmitCancelled(t *testing.T) {
	svc := NewService(ServiceDeps{Delay: time.Hour})
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		_, err := svc.Submit(ctx, validForm())
		done <- err
	}()
	cancel()
	select {
	case err := <-done:
		require.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("submit did not observe cancellation")
	}

	ctx, cancel = context.WithCancel(context.Background())
	cancel()
	_, err := NewService(ServiceDeps{}).Submit(ctx, validForm())
	require.ErrorIs(t, err, context.Canceled)
}

func TestSubmitRejectsInvalidWithoutWaiting(t *testing.T) {
	svc := NewService(ServiceDeps{
		Delay: time.Hour,
		After: func(time.Duration) <-chan time.Time {
			t.Fatal("invalid form must not wait")
			return nil
		},
	})
	_, err := svc.Submit(context.Background(), Form{})
	require.ErrorIs(t, err, ErrInvalid)
}
