package pdf

import (
	"errors"
	"testing"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const certMarker = "HETI TELJESÍTÉSI IGAZOLÁS"

func newTestService() *Service {
	return NewService(Options{MaxFileSize: 10 * 1024 * 1024})
}

func TestService_ExtractText_FirstHalf(t *testing.T) {
	path := writePDF(t, t.TempDir(), "doc.pdf", "Page one", "Page two", "Page three", "Page four")

	text, err := newTestService().ExtractText(path)
	require.NoError(t, err)

	assert.Contains(t, text, "Page one")
	assert.Contains(t, text, "Page two")
	assert.NotContains(t, text, "Page three")
	assert.NotContains(t, text, "Page four")
}

func TestService_ExtractText_SinglePage(t *testing.T) {
	path := writePDF(t, t.TempDir(), "doc.pdf", "Only page")

	text, err := newTestService().ExtractText(path)
	require.NoError(t, err)
	assert.Contains(t, text, "Only page")
}

func TestService_ExtractText_Invalid(t *testing.T) {
	_, err := newTestService().ExtractText("/non/existent/file.pdf")
	require.Error(t, err)

	var opErr *OpError
	require.True(t, errors.As(err, &opErr))
	assert.Equal(t, "extract", opErr.Op)
}

func TestService_StripPages(t *testing.T) {
	svc := newTestService()
	path := writePDF(t, t.TempDir(), "doc.pdf", "Timesheet", certMarkerLiteral, "Attachment")

	result, err := svc.StripPages(path, certMarker)
	require.NoError(t, err)
	assert.True(t, result.Removed())
	assert.Equal(t, []int{2}, result.RemovedPages)
	assert.Equal(t, 2, result.PageCount)

	count, err := svc.editor.PageCount(path)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	pages, _, err := svc.reader.PagesContaining(path, certMarker)
	require.NoError(t, err)
	assert.Empty(t, pages)
}

func TestService_StripPages_NoMarker(t *testing.T) {
	path := writePDF(t, t.TempDir(), "doc.pdf", "Timesheet", "Attachment")

	result, err := newTestService().StripPages(path, certMarker)
	require.NoError(t, err)
	assert.False(t, result.Removed())
	assert.Equal(t, 2, result.PageCount)
}

func TestService_StripPages_AllPages(t *testing.T) {
	path := writePDF(t, t.TempDir(), "doc.pdf", certMarkerLiteral)

	_, err := newTestService().StripPages(path, certMarker)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "all 1 pages")
}

func TestService_Unlock_Plain(t *testing.T) {
	svc := newTestService()
	path := writePDF(t, t.TempDir(), "doc.pdf", "Timesheet", "Attachment")

	result, err := svc.Unlock(path)
	require.NoError(t, err)
	assert.False(t, result.Encrypted)
	assert.Empty(t, result.Restrictions)

	count, err := svc.editor.PageCount(path)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	text, err := svc.ExtractText(path)
	require.NoError(t, err)
	assert.Contains(t, text, "Timesheet")
}

func encryptFixture(t *testing.T, path string, conf *model.Configuration) {
	t.Helper()
	if err := api.EncryptFile(path, "", conf); err != nil {
		t.Skipf("cannot create encrypted fixture: %v", err)
	}
}

func assertUnlocked(t *testing.T, svc *Service, path string) {
	t.Helper()

	ctx, err := api.ReadContextFile(path)
	require.NoError(t, err)
	assert.Nil(t, ctx.Encrypt)

	text, err := svc.ExtractText(path)
	require.NoError(t, err)
	assert.Contains(t, text, "Timesheet")
}

func TestService_Unlock_Encrypted(t *testing.T) {
	path := writePDF(t, t.TempDir(), "locked.pdf", "Timesheet", "Attachment")
	encryptFixture(t, path, model.NewAESConfiguration("", "owner", 256))

	svc := NewService(Options{MaxFileSize: 10 * 1024 * 1024, OwnerPassword: "owner"})
	result, err := svc.Unlock(path)
	require.NoError(t, err)
	assert.True(t, result.Encrypted)

	assertUnlocked(t, svc, path)
}

func TestService_Unlock_PermissionsOnly(t *testing.T) {
	path := writePDF(t, t.TempDir(), "restricted.pdf", "Timesheet", "Attachment")
	conf := model.NewAESConfiguration("", "unknown owner", 256)
	conf.Permissions = model.PermissionsNone
	encryptFixture(t, path, conf)

	svc := newTestService()
	result, err := svc.Unlock(path)
	require.NoError(t, err)
	assert.True(t, result.Encrypted)
	assert.Equal(t, []string{
		"print", "modify", "copy", "annotate", "fill_forms", "extract", "assemble", "print_high_quality",
	}, result.Restrictions)

	assertUnlocked(t, svc, path)
}

func TestService_Unlock_UserPassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
	}{
		{name: "owner password", password: "owner"},
		{name: "user password", password: "user"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writePDF(t, t.TempDir(), "protected.pdf", "Timesheet", "Attachment")
			encryptFixture(t, path, model.NewAESConfiguration("user", "owner", 256))

			svc := NewService(Options{
				MaxFileSize:   10 * 1024 * 1024,
				UserPassword:  tt.password,
				OwnerPassword: tt.password,
			})
			result, err := svc.Unlock(path)
			require.NoError(t, err)
			assert.True(t, result.Encrypted)

			assertUnlocked(t, svc, path)
		})
	}
}

func TestService_Unlock_WrongPassword(t *testing.T) {
	path := writePDF(t, t.TempDir(), "protected.pdf", "Timesheet")
	encryptFixture(t, path, model.NewAESConfiguration("user", "owner", 256))

	for _, opts := range []Options{
		{MaxFileSize: 1024 * 1024},
		{MaxFileSize: 1024 * 1024, UserPassword: "guess", OwnerPassword: "guess"},
	} {
		_, err := NewService(opts).Unlock(path)
		require.Error(t, err)

		var opErr *OpError
		require.True(t, errors.As(err, &opErr))
		assert.Equal(t, "unlock", opErr.Op)
	}
}

func TestService_Unlock_Invalid(t *testing.T) {
	_, err := newTestService().Unlock("/non/existent/file.pdf")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "file does not exist")
}
