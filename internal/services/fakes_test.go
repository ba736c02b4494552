package services

import (
	"bytes"
	"context"
	"errors"
	"io"
	"sync"
	"testing"

	"github.com/go-pdf/fpdf"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// ==========================
// Mock Text Generator
// ==========================

type MockGenerator struct {
	mock.Mock
}

func (m *MockGenerator) GenerateText(ctx context.Context, prompt string) (string, error) {
	args := m.Called(ctx, prompt)
	return args.String(0), args.Error(1)
}

// ==========================
// Recording Mail Transport
// ==========================

type sentMail struct {
	From string
	To   []string
	Raw  string
}

type fakeTransport struct {
	mu    sync.Mutex
	err   error
	calls []sentMail
}

func (f *fakeTransport) SendMail(from string, to []string, r io.Reader) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, readErr := io.ReadAll(r)
	if readErr != nil {
		return readErr
	}
	f.calls = append(f.calls, sentMail{From: from, To: to, Raw: string(data)})
	return f.err
}

func (f *fakeTransport) sentTo(addr string) []sentMail {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []sentMail
	for _, call := range f.calls {
		for _, to := range call.To {
			if to == addr {
				out = append(out, call)
			}
		}
	}
	return out
}

var errSMTPDown = errors.New("535 authentication failed")

// ==========================
// PDF Fixtures
// ==========================

// buildPDF renders one page per entry; an empty entry produces a page with no text.
func buildPDF(t *testing.T, pages ...string) []byte {
	t.Helper()

	doc := fpdf.New("P", "mm", "A4", "")
	doc.SetFont("Helvetica", "", 12)
	for _, text := range pages {
		doc.AddPage()
		if text != "" {
			doc.Cell(40, 10, text)
		}
	}

	var buf bytes.Buffer
	require.NoError(t, doc.Output(&buf))
	return buf.Bytes()
}
