package types

import "time"

// AppleSingle and AppleDouble
// Both layouts start with the same fixed header followed by a table of entry descriptors.
// An AppleSingle file carries every part of the original file, including the data fork.
// An AppleDouble file carries everything except the data fork, which follows the last entry.

// AppleSingleMagic identifies an AppleSingle container.
const AppleSingleMagic uint32 = 0x00051600

// AppleDoubleMagic identifies an AppleDouble container.
const AppleDoubleMagic uint32 = 0x00051607

// AppleFileVersion is the only container version the decoder accepts (version 2).
const AppleFileVersion uint32 = 0x00020000

const (
	// ASHeaderSize is the size of the fixed header in bytes (magic, version, filler, entry count).
	ASHeaderSize = 26

	// ASFillerSize is the size of the zero filler inside the header.
	ASFillerSize = 16

	// ASEntrySize is the size of one entry descriptor in bytes.
	ASEntrySize = 12

	// ASFileDatesSize is the size of the file dates record.
	ASFileDatesSize = 16

	// FInfoSize is the size of the classic Finder info record.
	FInfoSize = 16

	// FXInfoSize is the size of the extended Finder info record.
	FXInfoSize = 16

	// ASFinderInfoSize is the declared length a Finder info entry must have to be applied.
	ASFinderInfoSize = FInfoSize + FXInfoSize

	// MaxCommentSize caps the comment at the size of a Pascal string.
	MaxCommentSize = 255
)

// ASHeaderT is the fixed header at the start of every container.
type ASHeaderT struct {
	// The magic number. Either AppleSingleMagic or AppleDoubleMagic.
	Magic uint32

	// The format version. Must be AppleFileVersion.
	Version uint32

	// Reserved. Every byte must be zero.
	Filler [ASFillerSize]byte

	// The number of entry descriptors that follow the header.
	NumEntries uint16
}

// ASEntryIDT identifies the kind of part an entry describes.
type ASEntryIDT uint32

const (
	// ASEntryDataFork is the data fork.
	ASEntryDataFork ASEntryIDT = 1

	// ASEntryResourceFork is the resource fork.
	ASEntryResourceFork ASEntryIDT = 2

	// ASEntryRealName is the file's name as created on the originating host.
	ASEntryRealName ASEntryIDT = 3

	// ASEntryComment is the standard Macintosh comment.
	ASEntryComment ASEntryIDT = 4

	// ASEntryIconBW is the standard black and white icon.
	ASEntryIconBW ASEntryIDT = 5

	// ASEntryIconColor is the color icon.
	ASEntryIconColor ASEntryIDT = 6

	// ASEntryFileInfoV1 is the obsolete version 1 file info record.
	ASEntryFileInfoV1 ASEntryIDT = 7

	// ASEntryFileDates holds creation, modification, backup, and access dates.
	ASEntryFileDates ASEntryIDT = 8

	// ASEntryFinderInfo holds the Finder info followed by the extended Finder info.
	ASEntryFinderInfo ASEntryIDT = 9

	// ASEntryMacFileInfo holds the Macintosh file attributes (locked, protected).
	ASEntryMacFileInfo ASEntryIDT = 10

	// ASEntryProDOSFileInfo holds ProDOS file information.
	ASEntryProDOSFileInfo ASEntryIDT = 11

	// ASEntryMSDOSFileInfo holds MS-DOS file information.
	ASEntryMSDOSFileInfo ASEntryIDT = 12

	// ASEntryShortName is the AFP short name.
	ASEntryShortName ASEntryIDT = 13

	// ASEntryAFPFileInfo holds AFP file information.
	ASEntryAFPFileInfo ASEntryIDT = 14

	// ASEntryDirectoryID is the AFP directory ID.
	ASEntryDirectoryID ASEntryIDT = 15
)

var entryIDNames = map[ASEntryIDT]string{
	ASEntryDataFork:       "data fork",
	ASEntryResourceFork:   "resource fork",
	ASEntryRealName:       "real name",
	ASEntryComment:        "comment",
	ASEntryIconBW:         "b&w icon",
	ASEntryIconColor:      "color icon",
	ASEntryFileInfoV1:     "file info (v1)",
	ASEntryFileDates:      "file dates",
	ASEntryFinderInfo:     "finder info",
	ASEntryMacFileInfo:    "macintosh file info",
	ASEntryProDOSFileInfo: "prodos file info",
	ASEntryMSDOSFileInfo:  "ms-dos file info",
	ASEntryShortName:      "afp short name",
	ASEntryAFPFileInfo:    "afp file info",
	ASEntryDirectoryID:    "afp directory id",
}

// String returns a human readable name for the entry id
func (id ASEntryIDT) String() string {
	if name, ok := entryIDNames[id]; ok {
		return name
	}
	return "unknown"
}

// ASEntryT is one entry descriptor from the entry table.
type ASEntryT struct {
	// The kind of part.
	EntryID ASEntryIDT

	// The absolute position of the part within the container, header included.
	Offset uint32

	// The length of the part in bytes. Zero length entries are never matched.
	Length uint32
}

// End returns the offset immediately following the part.
// The sum is computed in 64 bits so that it cannot wrap.
func (e ASEntryT) End() uint64 {
	return uint64(e.Offset) + uint64(e.Length)
}

// ASFileDatesT is the file dates record.
// Each value is a signed number of seconds relative to 2000-01-01 00:00:00 GMT.
type ASFileDatesT struct {
	Create int32
	Modify int32
	Backup int32
	Access int32
}

// FInfoT is the classic Finder info record.
type FInfoT struct {
	// The file type code.
	FdType [4]byte

	// The creator code.
	FdCreator [4]byte

	// The Finder flags.
	FdFlags uint16

	// The icon position within its window (v, h).
	FdLocation [2]int16

	// The window that contains the file.
	FdFldr int16
}

// FXInfoT is the extended Finder info record. It is carried as opaque bytes.
type FXInfoT [FXInfoSize]byte

// FinderFlagsImportMask keeps only the Finder flags that may be imported from a container.
// The low bits (on desktop, color label, reserved) are maintained by the Finder itself.
const FinderFlagsImportMask uint16 = 0xfc00

// ConvertTime converts a container date into a host catalog date: host = container - ConvertTime,
// computed modulo 2^32. Subtracting it is the same as adding the 1904 to 2000 epoch difference.
const ConvertTime uint32 = 1265437696

// MacEpoch is the origin of host catalog dates (1904-01-01 00:00:00).
var MacEpoch = time.Date(1904, time.January, 1, 0, 0, 0, 0, time.UTC)

// AppleFileEpoch is the origin of container dates (2000-01-01 00:00:00 GMT).
var AppleFileEpoch = time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)

// FileRef names the target file on the host.
type FileRef string

// CatalogInfo is the subset of the host catalog record the decoder reads and writes.
type CatalogInfo struct {
	// Finder info bytes exactly as they appear in the container.
	FinderInfo [FInfoSize]byte

	// Extended Finder info bytes exactly as they appear in the container.
	ExtendedFinderInfo FXInfoT

	// Catalog dates, in unsigned seconds since MacEpoch.
	CreateDate uint32
	ModifyDate uint32
	BackupDate uint32
}

// MacTime converts a host catalog date into a time.Time.
func MacTime(secs uint32) time.Time {
	return MacEpoch.Add(time.Duration(secs) * time.Second)
}

// MacSeconds converts a time.Time into a host catalog date, clamping to the representable range.
func MacSeconds(t time.Time) uint32 {
	d := t.Unix() - MacEpoch.Unix()
	if d < 0 {
		return 0
	}
	if d > 0xffffffff {
		return 0xffffffff
	}
	return uint32(d)
}

// AppleFileTime converts a container date into a time.Time.
func AppleFileTime(secs int32) time.Time {
	return AppleFileEpoch.Add(time.Duration(secs) * time.Second)
}
