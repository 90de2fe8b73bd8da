package fault

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type statusError struct{ code int }

func (e statusError) Error() string { return http.StatusText(e.code) }

type failingFormatter struct{ panic bool }

func (f failingFormatter) Format(Request, Resolution) (string, []byte, error) {
	if f.panic {
		panic("formatter exploded")
	}
	return "", nil, errors.New("cannot render")
}

func newTestTranslator(t *testing.T, opts TranslatorOptions) (*Translator, *logtest.Hook) {
	t.Helper()
	logger, hook := logtest.NewNullLogger()
	opts.Logger = logger
	tr, err := NewTranslator(opts)
	require.NoError(t, err)
	return tr, hook
}

func TestNewTranslatorRequiresLogger(t *testing.T) {
	_, err := NewTranslator(TranslatorOptions{})
	assert.Error(t, err)
}

func TestResolveOrder(t *testing.T) {
	tr, _ := newTestTranslator(t, TranslatorOptions{
		StatusResolver: func(err error) (int, bool) {
			var se statusError
			if errors.As(err, &se) {
				return se.code, true
			}
			return 0, false
		},
	})

	cases := []struct {
		name   string
		err    error
		status int
		kind   string
	}{
		{"fault declares status", PaymentRequired(), http.StatusPaymentRequired, "PaymentRequired"},
		{"wrapped fault", fmt.Errorf("handler: %w", Forbidden()), http.StatusForbidden, "Forbidden"},
		{"framework status", statusError{code: http.StatusNotFound}, http.StatusNotFound, "fault.statusError"},
		{"generic invalid argument", fmt.Errorf("%w: page < 0", ErrInvalidArgument), http.StatusNotAcceptable, "InvalidArgument"},
		{"generic invalid state", fmt.Errorf("%w: shelf sealed", ErrInvalidState), http.StatusNotAcceptable, "InvalidState"},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, "*errors.errorString"},
		{"nil", nil, http.StatusInternalServerError, "*errors.errorString"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res := tr.Resolve(tc.err)
			assert.Equal(t, tc.status, res.Status)
			assert.Equal(t, tc.kind, res.Kind)
		})
	}
}

func TestTranslatePaymentRequiredFixedBody(t *testing.T) {
	tr, _ := newTestTranslator(t, TranslatorOptions{})

	resp := tr.Translate(Request{Method: http.MethodGet, Path: "/exceptions/payRequired"}, PaymentRequired())

	assert.Equal(t, http.StatusPaymentRequired, resp.Status)
	assert.Equal(t, PaymentRequiredBody, string(resp.Body))
	assert.Contains(t, resp.ContentType, MediaTypePlain)
}

func TestTranslateDiagnosticBody(t *testing.T) {
	tr, _ := newTestTranslator(t, TranslatorOptions{})

	resp := tr.Translate(Request{Path: "/moreExceptions/illegalArg"}, Newf(KindInvalidArgument, "bad isbn"))

	assert.Equal(t, http.StatusNotAcceptable, resp.Status)
	assert.Equal(t,
		"Exception occurred: InvalidArgument\nException msg: bad isbn\nRequest description: uri=/moreExceptions/illegalArg",
		string(resp.Body))
}

func TestTranslateProblemDetails(t *testing.T) {
	tr, _ := newTestTranslator(t, TranslatorOptions{ProblemBaseURL: "https://bookcase.dev/problems/"})

	resp := tr.Translate(Request{Path: "/exceptions/payRequired", RequestID: "req-1", Problem: true}, PaymentRequired())

	assert.Equal(t, http.StatusPaymentRequired, resp.Status)
	assert.Contains(t, resp.ContentType, MediaTypeProblem)

	var p ProblemDetail
	require.NoError(t, json.Unmarshal(resp.Body, &p))
	assert.Equal(t, "https://bookcase.dev/problems/payment-required", p.Type)
	assert.Equal(t, "Payment Required", p.Title)
	assert.Equal(t, http.StatusPaymentRequired, p.Status)
	assert.Equal(t, PaymentRequiredBody, p.Detail)
	assert.Equal(t, "/exceptions/payRequired", p.Instance)
	assert.Equal(t, "PaymentRequired", p.Kind)
	assert.Equal(t, "req-1", p.RequestID)
}

func TestProblemTypeDefaultsToAboutBlank(t *testing.T) {
	_, body, err := ProblemFormatter{}.Format(Request{Path: "/x"}, Resolution{Status: 500, Kind: "*fiber.Error"})
	require.NoError(t, err)

	var p ProblemDetail
	require.NoError(t, json.Unmarshal(body, &p))
	assert.Equal(t, "about:blank", p.Type)
	assert.Equal(t, "fiber-error", slug("*fiber.Error"))
}

func TestTranslateDegradesWhenFormatterFails(t *testing.T) {
	for _, panics := range []bool{false, true} {
		tr, hook := newTestTranslator(t, TranslatorOptions{Plain: failingFormatter{panic: panics}})

		var resp Response
		require.NotPanics(t, func() {
			resp = tr.Translate(Request{Path: "/exceptions/forbidden"}, Forbidden())
		})
		assert.Equal(t, http.StatusForbidden, resp.Status)
		assert.Empty(t, resp.Body)
		assert.Empty(t, resp.ContentType)
		assert.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
	}
}

func TestTranslateLogsEveryFault(t *testing.T) {
	tr, hook := newTestTranslator(t, TranslatorOptions{})

	tr.Translate(Request{Method: http.MethodGet, Path: "/a", RequestID: "r1"}, Forbidden())
	tr.Translate(Request{Method: http.MethodPut, Path: "/b", RequestID: "r2"}, errors.New("kaput"))

	entries := hook.AllEntries()
	require.Len(t, entries, 2)

	assert.Equal(t, logrus.WarnLevel, entries[0].Level)
	assert.Equal(t, "Forbidden", entries[0].Data["kind"])
	assert.Equal(t, "*fault.Fault", entries[0].Data["origin"])
	assert.Equal(t, "Forbidden API", entries[0].Message)

	assert.Equal(t, logrus.ErrorLevel, entries[1].Level)
	assert.Equal(t, "*errors.errorString", entries[1].Data["origin"])
	assert.Equal(t, http.StatusInternalServerError, entries[1].Data["status"])
	assert.Equal(t, "kaput", entries[1].Message)
	assert.Equal(t, "r2", entries[1].Data["request_id"])
}
