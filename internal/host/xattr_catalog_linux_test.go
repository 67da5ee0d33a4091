package host

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"

	"github.com/deploymenttheory/go-applefile/internal/types"
)

func TestXattrCatalog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc")
	require.NoError(t, os.WriteFile(path, []byte("data"), 0o644))

	if err := unix.Setxattr(path, "user.xattr-test", []byte{1}, 0); err != nil {
		if errors.Is(err, unix.ENOTSUP) || errors.Is(err, unix.EPERM) {
			t.Skipf("user extended attributes unavailable: %v", err)
		}
		require.NoError(t, err)
	}

	catalog, err := NewXattrCatalog()
	require.NoError(t, err)
	ref := types.FileRef(path)

	info, err := catalog.GetMetadata(ref)
	require.NoError(t, err)
	assert.Equal(t, [types.FInfoSize]byte{}, info.FinderInfo)

	copy(info.FinderInfo[:], "APPLMACS")
	info.CreateDate = 100
	info.ModifyDate = 3029616000
	info.BackupDate = 7
	require.NoError(t, catalog.SetMetadata(ref, info))

	got, err := catalog.GetMetadata(ref)
	require.NoError(t, err)
	assert.Equal(t, info, got)

	require.True(t, catalog.SupportsComments(ref))
	require.NoError(t, catalog.SetComment(ref, []byte{'r', 0x8E, 's'}))

	raw, err := getxattr(path, "user."+commentAttr)
	require.NoError(t, err)
	assert.Equal(t, "rés", string(raw))

	comment, err := catalog.Comment(ref)
	require.NoError(t, err)
	assert.Equal(t, []byte{'r', 0x8E, 's'}, comment)
}

func TestXattrCatalogMissingFile(t *testing.T) {
	catalog, err := NewXattrCatalog()
	require.NoError(t, err)

	_, err = catalog.GetMetadata(types.FileRef(filepath.Join(t.TempDir(), "missing")))
	assert.Error(t, err)
}
