package cli

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/gophdrop/internal/client/config"
	pb "github.com/dmitrijs2005/gophdrop/internal/proto"
)

// fakeClient records calls and returns preset results.
type fakeClient struct {
	pingErr error

	regEmail, regUser string
	regPass           []byte
	regErr            error

	loginEmail string
	loginPass  []byte
	loginErr   error

	logoutCalled bool
	logoutErr    error

	upName, upVisibility string
	upContent            []byte
	upIfAbsent           bool
	upErr                error

	files   []pb.FileEntry
	listErr error
	query   string

	deleted   string
	deleteErr error

	download    pb.FileEntry
	downloadRaw []byte
	downloadErr error

	closed bool
}

func (f *fakeClient) Close() error {
	f.closed = true
	return nil
}
func (f *fakeClient) Ping(ctx context.Context) error { return f.pingErr }
func (f *fakeClient) Register(_ context.Context, email, username string, password []byte) error {
	f.regEmail, f.regUser, f.regPass = email, username, append([]byte(nil), password...)
	return f.regErr
}
func (f *fakeClient) Login(_ context.Context, email string, password []byte) error {
	f.loginEmail, f.loginPass = email, append([]byte(nil), password...)
	return f.loginErr
}
func (f *fakeClient) Logout(context.Context) error {
	f.logoutCalled = true
	return f.logoutErr
}
func (f *fakeClient) Upload(_ context.Context, name, visibility string, content []byte, ifAbsent bool) (string, error) {
	f.upName, f.upVisibility, f.upContent, f.upIfAbsent = name, visibility, content, ifAbsent
	if f.upErr != nil {
		return "", f.upErr
	}
	return "File uploaded!", nil
}
func (f *fakeClient) List(context.Context) ([]pb.FileEntry, error) { return f.files, f.listErr }
func (f *fakeClient) Search(_ context.Context, q string) ([]pb.FileEntry, error) {
	f.query = q
	return f.files, f.listErr
}
func (f *fakeClient) Delete(_ context.Context, name string) (string, error) {
	f.deleted = name
	if f.deleteErr != nil {
		return "", f.deleteErr
	}
	return "File deleted", nil
}
func (f *fakeClient) Download(context.Context, string) (pb.FileEntry, []byte, error) {
	return f.download, f.downloadRaw, f.downloadErr
}

func newTestApp(t *testing.T, fc *fakeClient, input string) (*App, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	cfg := &config.Config{OnlineCheckInterval: time.Hour, RequestTimeout: time.Second}
	return newApp(cfg, fc, strings.NewReader(input), &out), &out
}

func stubInputs(t *testing.T, answers []string, password []byte) {
	t.Helper()
	origST, origGP := getSimpleText, getPassword
	i := 0
	getSimpleText = func(_ *bufio.Reader, _ string, _ io.Writer) (string, error) {
		if i >= len(answers) {
			return "", io.EOF
		}
		i++
		return answers[i-1], nil
	}
	getPassword = func(_ io.Writer) ([]byte, error) { return append([]byte(nil), password...), nil }
	t.Cleanup(func() {
		getSimpleText = origST
		getPassword = origGP
	})
}
