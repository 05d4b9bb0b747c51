package uploads

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memStorage struct {
	saved map[string]string
	err   error
}

func (m *memStorage) Save(_ context.Context, name string, r io.Reader) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	b, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	if m.saved == nil {
		m.saved = map[string]string{}
	}
	m.saved[name] = string(b)
	return "uploads/" + name, nil
}

func TestSanitizeName(t *testing.T) {
	cases := map[string]string{
		"dish.jpg":               "dish.jpg",
		"../../etc/passwd":       "passwd",
		`C:\Users\ana\photo.png`: "photo.png",
		" spaced name.gif ":      "spaced name.gif",
		"dir/":                   "dir",
	}
	for in, want := range cases {
		got, err := SanitizeName(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	for _, bad := range []string{"", "   ", ".", "..", "/", "../", ".upload-123"} {
		_, err := SanitizeName(bad)
		assert.ErrorIs(t, err, ErrInvalidName, "%q", bad)
	}
}

func TestService_Save(t *testing.T) {
	st := &memStorage{}
	svc := NewService(st, Options{})

	f, err := svc.Save(context.Background(), "../x/dish.jpg", strings.NewReader("img"))
	require.NoError(t, err)
	assert.Equal(t, StoredFile{Filename: "dish.jpg", Path: "uploads/dish.jpg"}, f)
	assert.Equal(t, "img", st.saved["dish.jpg"])
}

func TestService_Save_UniqueNames(t *testing.T) {
	st := &memStorage{}
	svc := NewService(st, Options{UniqueNames: true})
	svc.newID = func() string { return "abc" }

	f, err := svc.Save(context.Background(), "dish.jpg", strings.NewReader("img"))
	require.NoError(t, err)
	assert.Equal(t, "abc_dish.jpg", f.Filename)
	assert.Equal(t, "uploads/abc_dish.jpg", f.Path)
}

func TestService_Save_Errors(t *testing.T) {
	svc := NewService(&memStorage{}, Options{})
	_, err := svc.Save(context.Background(), "..", strings.NewReader(""))
	assert.ErrorIs(t, err, ErrInvalidName)

	boom := errors.New("disk full")
	svc = NewService(&memStorage{err: boom}, Options{})
	_, err = svc.Save(context.Background(), "a.png", strings.NewReader(""))
	assert.ErrorIs(t, err, boom)
}
