package host

import (
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/deploymenttheory/go-applefile/internal/types"
)

// SidecarSuffix is appended to a file's path to name its metadata record
const SidecarSuffix = ".finderinfo.yaml"

// sidecarRecord is the YAML form of the catalog record
type sidecarRecord struct {
	Type               string    `yaml:"type,omitempty"`
	Creator            string    `yaml:"creator,omitempty"`
	FinderInfo         string    `yaml:"finder_info"`
	ExtendedFinderInfo string    `yaml:"extended_finder_info"`
	Created            time.Time `yaml:"created"`
	Modified           time.Time `yaml:"modified"`
	BackedUp           time.Time `yaml:"backed_up"`
	Comment            string    `yaml:"comment,omitempty"`
}

// SidecarCatalog stores catalog records as YAML files next to the data fork.
// It works on any host, including those without extended attributes.
type SidecarCatalog struct {
	fs afero.Fs
}

// NewSidecarCatalog creates a SidecarCatalog on fs
func NewSidecarCatalog(fs afero.Fs) *SidecarCatalog {
	return &SidecarCatalog{fs: fs}
}

// SidecarPath returns the path of the record for ref
func (c *SidecarCatalog) SidecarPath(ref types.FileRef) string {
	return string(ref) + SidecarSuffix
}

// GetMetadata returns the stored record, or one derived from the file itself when none is stored
func (c *SidecarCatalog) GetMetadata(ref types.FileRef) (*types.CatalogInfo, error) {
	rec, err := c.readRecord(ref)
	if err != nil {
		return nil, err
	}
	if rec != nil {
		return rec.catalogInfo()
	}

	info := &types.CatalogInfo{}
	if fi, err := c.fs.Stat(string(ref)); err == nil {
		info.ModifyDate = types.MacSeconds(fi.ModTime())
		info.CreateDate = info.ModifyDate
	}
	return info, nil
}

// SetMetadata stores the record and applies the modification date to the file
func (c *SidecarCatalog) SetMetadata(ref types.FileRef, info *types.CatalogInfo) error {
	rec, err := c.readRecord(ref)
	if err != nil {
		return err
	}

	next := newSidecarRecord(info)
	if rec != nil {
		next.Comment = rec.Comment
	}
	if err := c.writeRecord(ref, next); err != nil {
		return err
	}

	if _, err := c.fs.Stat(string(ref)); err == nil {
		mtime := types.MacTime(info.ModifyDate)
		if err := c.fs.Chtimes(string(ref), mtime, mtime); err != nil {
			return fmt.Errorf("failed to set modification date: %w", err)
		}
	}
	return nil
}

// SupportsComments always reports true
func (c *SidecarCatalog) SupportsComments(ref types.FileRef) bool {
	return true
}

// SetComment stores the comment, decoded from Mac OS Roman, in the record
func (c *SidecarCatalog) SetComment(ref types.FileRef, comment []byte) error {
	rec, err := c.readRecord(ref)
	if err != nil {
		return err
	}
	if rec == nil {
		rec = newSidecarRecord(&types.CatalogInfo{})
	}
	rec.Comment = DecodeComment(comment)
	return c.writeRecord(ref, rec)
}

// Comment returns the stored comment re-encoded as Mac OS Roman
func (c *SidecarCatalog) Comment(ref types.FileRef) ([]byte, error) {
	rec, err := c.readRecord(ref)
	if err != nil || rec == nil {
		return nil, err
	}
	return EncodeComment(rec.Comment), nil
}

func (c *SidecarCatalog) readRecord(ref types.FileRef) (*sidecarRecord, error) {
	data, err := afero.ReadFile(c.fs, c.SidecarPath(ref))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read metadata record: %w", err)
	}

	var rec sidecarRecord
	if err := yaml.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("failed to parse metadata record: %w", err)
	}
	return &rec, nil
}

func (c *SidecarCatalog) writeRecord(ref types.FileRef, rec *sidecarRecord) error {
	data, err := yaml.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to encode metadata record: %w", err)
	}
	if err := afero.WriteFile(c.fs, c.SidecarPath(ref), data, 0o644); err != nil {
		return fmt.Errorf("failed to write metadata record: %w", err)
	}
	return nil
}

func newSidecarRecord(info *types.CatalogInfo) *sidecarRecord {
	return &sidecarRecord{
		Type:               strings.TrimRight(string(info.FinderInfo[0:4]), "\x00"),
		Creator:            strings.TrimRight(string(info.FinderInfo[4:8]), "\x00"),
		FinderInfo:         hex.EncodeToString(info.FinderInfo[:]),
		ExtendedFinderInfo: hex.EncodeToString(info.ExtendedFinderInfo[:]),
		Created:            types.MacTime(info.CreateDate),
		Modified:           types.MacTime(info.ModifyDate),
		BackedUp:           types.MacTime(info.BackupDate),
	}
}

func (r *sidecarRecord) catalogInfo() (*types.CatalogInfo, error) {
	info := &types.CatalogInfo{
		CreateDate: types.MacSeconds(r.Created),
		ModifyDate: types.MacSeconds(r.Modified),
		BackupDate: types.MacSeconds(r.BackedUp),
	}
	if err := decodeHexInto(info.FinderInfo[:], r.FinderInfo); err != nil {
		return nil, fmt.Errorf("invalid finder_info: %w", err)
	}
	if err := decodeHexInto(info.ExtendedFinderInfo[:], r.ExtendedFinderInfo); err != nil {
		return nil, fmt.Errorf("invalid extended_finder_info: %w", err)
	}
	return info, nil
}

func decodeHexInto(dst []byte, s string) error {
	if s == "" {
		return nil
	}
	raw, err := hex.DecodeString(s)
	if err != nil {
		return err
	}
	if len(raw) != len(dst) {
		return fmt.Errorf("expected %d bytes, got %d", len(dst), len(raw))
	}
	copy(dst, raw)
	return nil
}
