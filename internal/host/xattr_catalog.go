//go:build linux || darwin

package host

import (
	"encoding/binary"
	"errors"
	"fmt"
	"os"

	"golang.org/x/sys/unix"

	"github.com/deploymenttheory/go-applefile/internal/types"
)

// Attribute names, before the platform prefix is applied
const (
	finderInfoAttr = "com.apple.FinderInfo"
	datesAttr      = "org.applefile.dates"
	commentAttr    = "org.applefile.comment"
)

// XattrCatalog stores catalog records in extended attributes.
// Finder info uses the same attribute and layout as macOS.
type XattrCatalog struct {
	prefix string
}

// NewXattrCatalog creates an XattrCatalog for this platform
func NewXattrCatalog() (*XattrCatalog, error) {
	return &XattrCatalog{prefix: xattrPrefix}, nil
}

func (c *XattrCatalog) attr(name string) string {
	return c.prefix + name
}

// GetMetadata reads Finder info and dates from the file's attributes.
// Dates that were never stored fall back to the file's modification time.
func (c *XattrCatalog) GetMetadata(ref types.FileRef) (*types.CatalogInfo, error) {
	path := string(ref)
	fi, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat %s: %w", path, err)
	}

	info := &types.CatalogInfo{
		CreateDate: types.MacSeconds(fi.ModTime()),
		ModifyDate: types.MacSeconds(fi.ModTime()),
	}

	finder, err := getxattr(path, c.attr(finderInfoAttr))
	if err != nil {
		return nil, err
	}
	if len(finder) == types.ASFinderInfoSize {
		copy(info.FinderInfo[:], finder[:types.FInfoSize])
		copy(info.ExtendedFinderInfo[:], finder[types.FInfoSize:])
	}

	dates, err := getxattr(path, c.attr(datesAttr))
	if err != nil {
		return nil, err
	}
	if len(dates) == 12 {
		info.CreateDate = binary.BigEndian.Uint32(dates[0:4])
		info.ModifyDate = binary.BigEndian.Uint32(dates[4:8])
		info.BackupDate = binary.BigEndian.Uint32(dates[8:12])
	}

	return info, nil
}

// SetMetadata writes Finder info and dates, and applies the modification date to the file
func (c *XattrCatalog) SetMetadata(ref types.FileRef, info *types.CatalogInfo) error {
	path := string(ref)

	finder := make([]byte, 0, types.ASFinderInfoSize)
	finder = append(finder, info.FinderInfo[:]...)
	finder = append(finder, info.ExtendedFinderInfo[:]...)
	if err := unix.Setxattr(path, c.attr(finderInfoAttr), finder, 0); err != nil {
		return fmt.Errorf("failed to set finder info on %s: %w", path, err)
	}

	dates := make([]byte, 12)
	binary.BigEndian.PutUint32(dates[0:4], info.CreateDate)
	binary.BigEndian.PutUint32(dates[4:8], info.ModifyDate)
	binary.BigEndian.PutUint32(dates[8:12], info.BackupDate)
	if err := unix.Setxattr(path, c.attr(datesAttr), dates, 0); err != nil {
		return fmt.Errorf("failed to set dates on %s: %w", path, err)
	}

	mtime := types.MacTime(info.ModifyDate)
	if err := os.Chtimes(path, mtime, mtime); err != nil {
		return fmt.Errorf("failed to set modification date on %s: %w", path, err)
	}
	return nil
}

// SupportsComments checks whether the file system holding ref accepts the comment attribute
func (c *XattrCatalog) SupportsComments(ref types.FileRef) bool {
	_, err := unix.Getxattr(string(ref), c.attr(commentAttr), nil)
	return err == nil || errors.Is(err, errNoAttr)
}

// SetComment stores the comment as UTF-8
func (c *XattrCatalog) SetComment(ref types.FileRef, comment []byte) error {
	if err := unix.Setxattr(string(ref), c.attr(commentAttr), []byte(DecodeComment(comment)), 0); err != nil {
		return fmt.Errorf("failed to set comment on %s: %w", ref, err)
	}
	return nil
}

// Comment returns the stored comment re-encoded as Mac OS Roman
func (c *XattrCatalog) Comment(ref types.FileRef) ([]byte, error) {
	raw, err := getxattr(string(ref), c.attr(commentAttr))
	if err != nil || raw == nil {
		return nil, err
	}
	return EncodeComment(string(raw)), nil
}

// getxattr returns the attribute value, or nil when the attribute is not set
func getxattr(path, name string) ([]byte, error) {
	size, err := unix.Getxattr(path, name, nil)
	if err != nil {
		if errors.Is(err, errNoAttr) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read %s on %s: %w", name, path, err)
	}

	buf := make([]byte, size)
	n, err := unix.Getxattr(path, name, buf)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s on %s: %w", name, path, err)
	}
	return buf[:n], nil
}
